package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/flowmock/internal/model"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	t.Run("zero limit returns everything", func(t *testing.T) {
		assert.Len(t, paginate(items, ListOptions{}), 10)
	})

	t.Run("limit caps the page", func(t *testing.T) {
		page := paginate(items, ListOptions{Limit: 3})
		assert.Equal(t, []int{0, 1, 2}, page)
	})

	t.Run("offset shifts the window", func(t *testing.T) {
		page := paginate(items, ListOptions{Limit: 3, Offset: 4})
		assert.Equal(t, []int{4, 5, 6}, page)
	})

	t.Run("offset past the end yields empty", func(t *testing.T) {
		page := paginate(items, ListOptions{Limit: 3, Offset: 100})
		assert.Empty(t, page)
	})

	t.Run("limit past the end truncates", func(t *testing.T) {
		page := paginate(items, ListOptions{Limit: 100, Offset: 8})
		assert.Equal(t, []int{8, 9}, page)
	})

	t.Run("pages tile the collection without gaps", func(t *testing.T) {
		var seen []int
		for off := 0; off < len(items); off += 3 {
			seen = append(seen, paginate(items, ListOptions{Limit: 3, Offset: off})...)
		}
		assert.Equal(t, items, seen)
	})
}

func TestOrderBy(t *testing.T) {
	mk := func(states ...string) []model.DAGRun {
		runs := make([]model.DAGRun, len(states))
		for i, st := range states {
			runs[i] = model.DAGRun{RunID: fmt.Sprintf("r%d", i), State: st}
		}
		return runs
	}

	t.Run("ascending by field", func(t *testing.T) {
		runs := mk("running", "failed", "success")
		orderBy(runs, "state", DAGRunFields)
		assert.Equal(t, "failed", runs[0].State)
		assert.Equal(t, "success", runs[2].State)
	})

	t.Run("dash prefix reverses", func(t *testing.T) {
		runs := mk("running", "failed", "success")
		orderBy(runs, "-state", DAGRunFields)
		assert.Equal(t, "success", runs[0].State)
		assert.Equal(t, "failed", runs[2].State)
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		runs := mk("queued", "queued", "queued")
		orderBy(runs, "state", DAGRunFields)
		assert.Equal(t, "r0", runs[0].RunID)
		assert.Equal(t, "r2", runs[2].RunID)
	})

	t.Run("unknown field leaves order untouched", func(t *testing.T) {
		runs := mk("running", "failed")
		orderBy(runs, "nonsense", DAGRunFields)
		assert.Equal(t, "running", runs[0].State)
	})

	t.Run("empty spec is a no-op", func(t *testing.T) {
		runs := mk("running", "failed")
		orderBy(runs, "", DAGRunFields)
		assert.Equal(t, "running", runs[0].State)
	})
}

func TestOrderByTimeField(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	runs := []model.DAGRun{
		{RunID: "a", ExecutionDate: base.Add(2 * time.Hour)},
		{RunID: "b", ExecutionDate: base},
		{RunID: "c", ExecutionDate: base.Add(time.Hour)},
	}
	orderBy(runs, "execution_date", DAGRunFields)
	require.Len(t, runs, 3)
	assert.Equal(t, "b", runs[0].RunID)
	assert.Equal(t, "c", runs[1].RunID)
	assert.Equal(t, "a", runs[2].RunID)
}

func TestCompareValues(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Minute)
	f1, f2 := 1.5, 2.5

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"strings", "a", "b", -1},
		{"ints", 3, 1, 2},
		{"floats", 2.0, 1.0, 1},
		{"bools", false, true, -1},
		{"times", now, later, -1},
		{"time pointers", &now, &later, -1},
		{"nil time pointer sorts first", (*time.Time)(nil), &now, -1},
		{"both nil equal", (*time.Time)(nil), (*time.Time)(nil), 0},
		{"float pointers", &f1, &f2, -1},
		{"nil float pointer sorts first", (*float64)(nil), &f1, -1},
		{"mismatched types equal", "a", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareValues(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestFieldSetHas(t *testing.T) {
	assert.True(t, DAGFields.Has("dag_id"))
	assert.True(t, DAGFields.Has("-dag_id"))
	assert.False(t, DAGFields.Has("bogus"))
	assert.True(t, PoolFields.Has("open_slots"))
	assert.True(t, TaskInstanceFields.Has("-duration"))
}
