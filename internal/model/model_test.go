package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDAGDefaults(t *testing.T) {
	d := NewDAG()

	assert.False(t, d.IsPaused)
	assert.True(t, d.IsActive)
	assert.Equal(t, "/tmp/dag.py", d.Fileloc)
	assert.NotNil(t, d.Owners)
	assert.NotNil(t, d.Tags)
	assert.WithinDuration(t, time.Now().UTC(), d.LastParsedTime, time.Second)
}

func TestNewDAGRunDefaults(t *testing.T) {
	r := NewDAGRun()

	assert.Equal(t, StateRunning, r.State)
	assert.False(t, r.ExternalTrigger)
	assert.NotNil(t, r.Conf)
	assert.WithinDuration(t, time.Now().UTC(), r.ExecutionDate, time.Second)
}

func TestNewTaskInstanceDefaults(t *testing.T) {
	ti := NewTaskInstance()

	assert.Equal(t, StateNone, ti.State)
	assert.Equal(t, 1, ti.TryNumber)
	assert.Equal(t, "default_pool", ti.Pool)
	assert.Equal(t, "default", ti.Queue)
	assert.Equal(t, 1, ti.PriorityWeight)
	assert.Equal(t, "PythonOperator", ti.Operator)
	assert.Nil(t, ti.StartDate)
	assert.Nil(t, ti.Duration)
}

// Handlers decode request bodies over a defaulted struct, so absent
// fields must keep their defaults and present fields must win.
func TestDecodeOverDefaults(t *testing.T) {
	t.Run("absent fields keep defaults", func(t *testing.T) {
		ti := NewTaskInstance()
		require.NoError(t, json.Unmarshal([]byte(`{"task_id": "extract"}`), &ti))

		assert.Equal(t, "extract", ti.TaskID)
		assert.Equal(t, "default_pool", ti.Pool)
		assert.Equal(t, 1, ti.TryNumber)
	})

	t.Run("present fields override", func(t *testing.T) {
		ti := NewTaskInstance()
		require.NoError(t, json.Unmarshal([]byte(`{"task_id": "extract", "pool": "heavy", "try_number": 4}`), &ti))

		assert.Equal(t, "heavy", ti.Pool)
		assert.Equal(t, 4, ti.TryNumber)
	})

	t.Run("dag run state override", func(t *testing.T) {
		r := NewDAGRun()
		require.NoError(t, json.Unmarshal([]byte(`{"state": "queued"}`), &r))
		assert.Equal(t, StateQueued, r.State)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StateSuccess))
	assert.True(t, IsTerminal(StateFailed))
	assert.True(t, IsTerminal(StateSkipped))
	assert.False(t, IsTerminal(StateRunning))
	assert.False(t, IsTerminal(StateQueued))
	assert.False(t, IsTerminal(StateNone))
	assert.False(t, IsTerminal(StateUpstreamFailed))
}

func TestKnownStatesCoversConstants(t *testing.T) {
	for _, st := range []string{StateNone, StateQueued, StateRunning, StateSuccess, StateFailed, StateSkipped, StateUpstreamFailed} {
		_, ok := KnownStates[st]
		assert.True(t, ok, st)
	}
	_, ok := KnownStates["restarting"]
	assert.False(t, ok)
}

func TestPoolRecalc(t *testing.T) {
	p := Pool{Slots: 10, OccupiedSlots: 3}
	p.Recalc()
	assert.Equal(t, 7, p.OpenSlots)

	p.OccupiedSlots = 12
	p.Recalc()
	assert.Equal(t, -2, p.OpenSlots)
}

func TestConnectionSchemaWireName(t *testing.T) {
	schema := "airflow"
	c := Connection{ConnID: "pg", ConnType: "postgres", Schema: &schema}

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"connection_schema":"airflow"`)
	assert.NotContains(t, string(raw), `"schema"`)
}
