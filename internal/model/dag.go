package model

import "time"

// Tag is a label attached to a DAG.
type Tag struct {
	Name string `json:"name"`
}

// DAG is a workflow definition record.
type DAG struct {
	DAGID            string         `json:"dag_id"`
	IsPaused         bool           `json:"is_paused"`
	IsActive         bool           `json:"is_active"`
	LastParsedTime   time.Time      `json:"last_parsed_time"`
	LastPickled      time.Time      `json:"last_pickled"`
	LastExpired      time.Time      `json:"last_expired"`
	SchedulerLock    *bool          `json:"scheduler_lock"`
	PickleID         *string        `json:"pickle_id"`
	Fileloc          string         `json:"fileloc"`
	Owners           []string       `json:"owners"`
	Description      *string        `json:"description"`
	ScheduleInterval map[string]any `json:"schedule_interval"`
	Tags             []Tag          `json:"tags"`
}

// NewDAG returns a DAG with default field values.
func NewDAG() DAG {
	now := time.Now().UTC()
	return DAG{
		IsPaused:       false,
		IsActive:       true,
		LastParsedTime: now,
		LastPickled:    now,
		LastExpired:    now,
		Fileloc:        "/tmp/dag.py",
		Owners:         []string{},
		Tags:           []Tag{},
	}
}

// DAGCollection is a paginated list of DAGs.
type DAGCollection struct {
	DAGs         []DAG `json:"dags"`
	TotalEntries int   `json:"total_entries"`
}

// DAGRun is one execution attempt of a DAG.
type DAGRun struct {
	DAGID           string         `json:"dag_id"`
	RunID           string         `json:"run_id"`
	ExecutionDate   time.Time      `json:"execution_date"`
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	State           string         `json:"state"`
	ExternalTrigger bool           `json:"external_trigger"`
	Conf            map[string]any `json:"conf"`
}

// NewDAGRun returns a DAGRun with default field values.
func NewDAGRun() DAGRun {
	return DAGRun{
		ExecutionDate: time.Now().UTC(),
		State:         StateRunning,
		Conf:          map[string]any{},
	}
}

// DAGRunCollection is a paginated list of DAG runs.
type DAGRunCollection struct {
	DAGRuns      []DAGRun `json:"dag_runs"`
	TotalEntries int      `json:"total_entries"`
}
