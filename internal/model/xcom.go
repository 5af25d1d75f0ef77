package model

import "time"

// XCom is a small value passed between tasks, addressed by
// (dag_id, task_id, key, run_id).
type XCom struct {
	Key           string    `json:"key"`
	Value         any       `json:"value"`
	Timestamp     time.Time `json:"timestamp"`
	ExecutionDate time.Time `json:"execution_date"`
	TaskID        string    `json:"task_id"`
	DAGID         string    `json:"dag_id"`
	RunID         string    `json:"run_id"`
	Description   *string   `json:"description"`
}

// NewXCom returns an XCom stamped with the current time.
func NewXCom() XCom {
	now := time.Now().UTC()
	return XCom{
		Timestamp:     now,
		ExecutionDate: now,
	}
}

// XComCollection is a paginated list of XCom entries.
type XComCollection struct {
	XComEntries  []XCom `json:"xcom_entries"`
	TotalEntries int    `json:"total_entries"`
}
