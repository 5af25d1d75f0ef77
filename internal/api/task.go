package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listTaskInstances handles GET .../dagRuns/:run_id/taskInstances.
func (s *Server) listTaskInstances(c echo.Context) error {
	opts, err := listOptions(c, store.TaskInstanceFields)
	if err != nil {
		return err
	}
	tis, total := s.store().ListTaskInstances(c.Param("dag_id"), c.Param("run_id"), opts)
	return c.JSON(http.StatusOK, model.TaskInstanceCollection{TaskInstances: tis, TotalEntries: total})
}

// createTaskInstance handles POST .../dagRuns/:run_id/taskInstances.
// The parent run must already exist; the upsert itself is idempotent.
func (s *Server) createTaskInstance(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	if _, ok := s.store().GetDAGRun(dagID, runID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG run not found")
	}

	t := model.NewTaskInstance()
	if err := c.Bind(&t); err != nil {
		s.logger.Warn("invalid task instance payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if t.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}
	t.DAGID = dagID
	t.RunID = runID

	s.store().PutTaskInstance(t)
	return c.JSON(http.StatusOK, t)
}

// getTaskInstance handles GET .../taskInstances/:task_id.
func (s *Server) getTaskInstance(c echo.Context) error {
	t, ok := s.store().GetTaskInstance(c.Param("dag_id"), c.Param("run_id"), c.Param("task_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task instance not found")
	}
	return c.JSON(http.StatusOK, t)
}

// SetStateRequest is the body of a setTaskInstanceState call.
type SetStateRequest struct {
	State string `json:"state"`
}

// setTaskInstanceState handles POST .../taskInstances/:task_id/setTaskInstanceState.
//
// Setting "running" stamps start_date and clears end_date. Setting a
// terminal state stamps end_date (and start_date when absent) and
// derives duration in seconds. Other known states change only the state
// field.
func (s *Server) setTaskInstanceState(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	taskID := c.Param("task_id")

	var req SetStateRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid state payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, ok := model.KnownStates[req.State]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown state %q", req.State))
	}

	t, ok := s.store().GetTaskInstance(dagID, runID, taskID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task instance not found")
	}

	now := time.Now().UTC()
	t.State = req.State
	switch {
	case req.State == model.StateRunning:
		t.StartDate = &now
		t.EndDate = nil
		t.Duration = nil
	case model.IsTerminal(req.State):
		if t.StartDate == nil {
			t.StartDate = &now
		}
		t.EndDate = &now
		duration := t.EndDate.Sub(*t.StartDate).Seconds()
		t.Duration = &duration
	}
	s.store().PutTaskInstance(t)

	return c.JSON(http.StatusOK, model.TaskInstanceActionResponse{
		TaskID:  taskID,
		DAGID:   dagID,
		RunID:   runID,
		State:   t.State,
		Message: fmt.Sprintf("Task instance state set to %s", t.State),
	})
}

// clearTaskInstance handles POST .../taskInstances/:task_id/clearTaskInstance.
//
// The clear applies only when the request is not a dry run and the
// instance passes the only_failed/only_running filters; a skipped clear
// is a no-op response, not an error.
func (s *Server) clearTaskInstance(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	taskID := c.Param("task_id")

	t, ok := s.store().GetTaskInstance(dagID, runID, taskID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task instance not found")
	}

	var req model.ClearRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid clear payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	shouldClear := true
	if req.OnlyFailed && t.State != model.StateFailed {
		shouldClear = false
	}
	if req.OnlyRunning && t.State != model.StateRunning {
		shouldClear = false
	}

	var message string
	if shouldClear && !req.DryRun {
		t, _ = s.store().ClearTaskInstance(dagID, runID, taskID)
		message = "Task instance cleared"
	} else {
		message = "Task instance not cleared (dry run or filter conditions not met)"
	}

	return c.JSON(http.StatusOK, model.TaskInstanceActionResponse{
		TaskID:  taskID,
		DAGID:   dagID,
		RunID:   runID,
		State:   t.State,
		Message: message,
	})
}

// tryNumberParam parses the :try_number path parameter.
func tryNumberParam(c echo.Context) (int, error) {
	raw := c.Param("try_number")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("try_number must be a positive integer, got %q", raw))
	}
	return n, nil
}

// getTaskLog handles GET .../taskInstances/:task_id/logs/:try_number.
// A missing log entry is synthesized and stored so repeated reads see
// the same record.
func (s *Server) getTaskLog(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	taskID := c.Param("task_id")
	tryNumber, err := tryNumberParam(c)
	if err != nil {
		return err
	}

	l, ok := s.store().GetTaskLog(dagID, runID, taskID, tryNumber)
	if !ok {
		l = model.TaskLog{
			TryNumber: tryNumber,
			Content:   fmt.Sprintf("No logs found for task %s (try %d)", taskID, tryNumber),
			Timestamp: time.Now().UTC(),
		}
		s.store().PutTaskLog(dagID, runID, taskID, tryNumber, l)
	}
	return c.JSON(http.StatusOK, l)
}

// createTaskLog handles POST .../taskInstances/:task_id/logs/:try_number.
// The parent task instance must exist.
func (s *Server) createTaskLog(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	taskID := c.Param("task_id")
	tryNumber, err := tryNumberParam(c)
	if err != nil {
		return err
	}

	if _, ok := s.store().GetTaskInstance(dagID, runID, taskID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task instance not found")
	}

	l := model.NewTaskLog()
	if err := c.Bind(&l); err != nil {
		s.logger.Warn("invalid task log payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	l.TryNumber = tryNumber
	s.store().PutTaskLog(dagID, runID, taskID, tryNumber, l)
	return c.JSON(http.StatusOK, l)
}
