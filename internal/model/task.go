package model

import "time"

// Task instance states. A task starts at StateNone, moves to queued or
// running, and ends in one of the terminal states. Clear returns it to
// StateNone.
const (
	StateNone           = "none"
	StateQueued         = "queued"
	StateRunning        = "running"
	StateSuccess        = "success"
	StateFailed         = "failed"
	StateSkipped        = "skipped"
	StateUpstreamFailed = "upstream_failed"
)

// KnownStates is the set of states accepted by state-set requests.
var KnownStates = map[string]struct{}{
	StateNone:           {},
	StateQueued:         {},
	StateRunning:        {},
	StateSuccess:        {},
	StateFailed:         {},
	StateSkipped:        {},
	StateUpstreamFailed: {},
}

// IsTerminal reports whether a state ends a task attempt. Setting a
// terminal state stamps end_date and computes duration.
func IsTerminal(state string) bool {
	return state == StateSuccess || state == StateFailed || state == StateSkipped
}

// TaskInstance is one task's execution record within a DAG run.
type TaskInstance struct {
	TaskID         string         `json:"task_id"`
	DAGID          string         `json:"dag_id"`
	RunID          string         `json:"run_id"`
	State          string         `json:"state"`
	TryNumber      int            `json:"try_number"`
	MaxTries       int            `json:"max_tries"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	Duration       *float64       `json:"duration"`
	Pool           string         `json:"pool"`
	Queue          string         `json:"queue"`
	PriorityWeight int            `json:"priority_weight"`
	Operator       string         `json:"operator"`
	QueuedWhen     *time.Time     `json:"queued_when"`
	QueuedByJobID  *string        `json:"queued_by_job_id"`
	PID            *int           `json:"pid"`
	ExecutorConfig map[string]any `json:"executor_config"`
	SLAMiss        *time.Time     `json:"sla_miss"`
	RenderedFields map[string]any `json:"rendered_fields"`
}

// NewTaskInstance returns a TaskInstance with default field values.
func NewTaskInstance() TaskInstance {
	return TaskInstance{
		State:          StateNone,
		TryNumber:      1,
		Pool:           "default_pool",
		Queue:          "default",
		PriorityWeight: 1,
		Operator:       "PythonOperator",
		ExecutorConfig: map[string]any{},
		RenderedFields: map[string]any{},
	}
}

// TaskInstanceCollection is a paginated list of task instances.
type TaskInstanceCollection struct {
	TaskInstances []TaskInstance `json:"task_instances"`
	TotalEntries  int            `json:"total_entries"`
}

// TaskInstanceActionResponse reports the outcome of a state-set or clear.
type TaskInstanceActionResponse struct {
	TaskID  string `json:"task_id"`
	DAGID   string `json:"dag_id"`
	RunID   string `json:"run_id"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// TaskLog is one log entry for a task attempt.
type TaskLog struct {
	TryNumber int       `json:"try_number"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTaskLog returns a TaskLog stamped with the current time.
func NewTaskLog() TaskLog {
	return TaskLog{Timestamp: time.Now().UTC()}
}

// ClearRequest is the body of a clear-task-instance call.
type ClearRequest struct {
	DryRun           bool       `json:"dry_run"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	OnlyFailed       bool       `json:"only_failed"`
	OnlyRunning      bool       `json:"only_running"`
	IncludeSubdags   bool       `json:"include_subdags"`
	IncludeParentdag bool       `json:"include_parentdag"`
	ResetDAGRuns     bool       `json:"reset_dag_runs"`
}
