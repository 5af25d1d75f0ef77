package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/flowmock/internal/model"
)

const xcomBase = tiBase + "/extract/xcomEntries"

func setupTask(t *testing.T, srv *Server) {
	t.Helper()
	setupRun(t, srv)
	createTIHelper(t, srv, "extract")
}

func TestCreateXComEntry(t *testing.T) {
	srv := newTestServer(t)
	setupTask(t, srv)

	t.Run("path keys override payload", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{
			"key":    "rows",
			"value":  42,
			"dag_id": "hijack",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var x model.XCom
		decode(t, rec, &x)
		assert.Equal(t, "rows", x.Key)
		assert.Equal(t, "etl", x.DAGID)
		assert.Equal(t, "r1", x.RunID)
		assert.Equal(t, "extract", x.TaskID)
		assert.Equal(t, float64(42), x.Value)
		assert.False(t, x.Timestamp.IsZero())
	})

	t.Run("arbitrary json values accepted", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{
			"key":   "payload",
			"value": map[string]any{"rows": []int{1, 2, 3}},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var x model.XCom
		decode(t, rec, &x)
		assert.IsType(t, map[string]any{}, x.Value)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{"value": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("same key is an upsert", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{"key": "rows", "value": 99})
		require.Equal(t, http.StatusOK, rec.Code)

		var coll model.XComCollection
		decode(t, doJSON(t, srv, http.MethodGet, xcomBase+"?key=rows", nil), &coll)
		assert.Equal(t, 1, coll.TotalEntries)
		require.Len(t, coll.XComEntries, 1)
		assert.Equal(t, float64(99), coll.XComEntries[0].Value)
	})
}

func TestGetXComEntry(t *testing.T) {
	srv := newTestServer(t)
	setupTask(t, srv)
	rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{"key": "rows", "value": 42})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, xcomBase+"/rows", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var x model.XCom
	decode(t, rec, &x)
	assert.Equal(t, float64(42), x.Value)

	rec = doJSON(t, srv, http.MethodGet, xcomBase+"/absent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "XCom entry not found")
}

func TestListXComEntries(t *testing.T) {
	srv := newTestServer(t)
	setupTask(t, srv)

	for _, key := range []string{"rows", "count", "status"} {
		rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{"key": key, "value": 1})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("all entries for the task", func(t *testing.T) {
		var coll model.XComCollection
		decode(t, doJSON(t, srv, http.MethodGet, xcomBase, nil), &coll)
		assert.Equal(t, 3, coll.TotalEntries)
	})

	t.Run("key query narrows", func(t *testing.T) {
		var coll model.XComCollection
		decode(t, doJSON(t, srv, http.MethodGet, xcomBase+"?key=rows", nil), &coll)
		assert.Equal(t, 1, coll.TotalEntries)
	})

	t.Run("order by key", func(t *testing.T) {
		var coll model.XComCollection
		decode(t, doJSON(t, srv, http.MethodGet, xcomBase+"?order_by=key", nil), &coll)
		require.Len(t, coll.XComEntries, 3)
		assert.Equal(t, "count", coll.XComEntries[0].Key)
		assert.Equal(t, "status", coll.XComEntries[2].Key)
	})

	t.Run("other runs are excluded", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/v1/dags/etl/dagRuns", map[string]any{"run_id": "r2"})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(t, srv, http.MethodPost, "/api/v1/dags/etl/dagRuns/r2/taskInstances", map[string]any{"task_id": "extract"})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(t, srv, http.MethodPost, "/api/v1/dags/etl/dagRuns/r2/taskInstances/extract/xcomEntries", map[string]any{"key": "rows", "value": 2})
		require.Equal(t, http.StatusOK, rec.Code)

		var coll model.XComCollection
		decode(t, doJSON(t, srv, http.MethodGet, xcomBase, nil), &coll)
		assert.Equal(t, 3, coll.TotalEntries)
	})
}

func TestDeleteXComEntry(t *testing.T) {
	srv := newTestServer(t)
	setupTask(t, srv)
	rec := doJSON(t, srv, http.MethodPost, xcomBase, map[string]any{"key": "rows", "value": 42})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, xcomBase+"/rows", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, xcomBase+"/rows", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
