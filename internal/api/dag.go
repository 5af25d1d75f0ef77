package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listDAGs handles GET /api/v1/dags.
func (s *Server) listDAGs(c echo.Context) error {
	opts, err := listOptions(c, store.DAGFields)
	if err != nil {
		return err
	}
	dags, total := s.store().ListDAGs(opts)
	return c.JSON(http.StatusOK, model.DAGCollection{DAGs: dags, TotalEntries: total})
}

// createDAG handles POST /api/v1/dags. DAGs are mock fixtures rather
// than user resources, so creation is an idempotent upsert.
func (s *Server) createDAG(c echo.Context) error {
	d := model.NewDAG()
	if err := c.Bind(&d); err != nil {
		s.logger.Warn("invalid dag payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if d.DAGID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "dag_id is required")
	}
	s.store().PutDAG(d)
	return c.JSON(http.StatusOK, d)
}

// getDAG handles GET /api/v1/dags/:dag_id.
func (s *Server) getDAG(c echo.Context) error {
	d, ok := s.store().GetDAG(c.Param("dag_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG not found")
	}
	return c.JSON(http.StatusOK, d)
}

// updateDAG handles PATCH /api/v1/dags/:dag_id. The path id always wins
// over the payload.
func (s *Server) updateDAG(c echo.Context) error {
	dagID := c.Param("dag_id")
	if _, ok := s.store().GetDAG(dagID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG not found")
	}
	d := model.NewDAG()
	if err := c.Bind(&d); err != nil {
		s.logger.Warn("invalid dag payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d.DAGID = dagID
	s.store().PutDAG(d)
	return c.JSON(http.StatusOK, d)
}

// deleteDAG handles DELETE /api/v1/dags/:dag_id.
func (s *Server) deleteDAG(c echo.Context) error {
	if !s.store().DeleteDAG(c.Param("dag_id")) {
		return echo.NewHTTPError(http.StatusNotFound, "DAG not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// listDAGRuns handles GET /api/v1/dags/:dag_id/dagRuns. A DAG with no
// runs yields an empty collection, not a 404.
func (s *Server) listDAGRuns(c echo.Context) error {
	opts, err := listOptions(c, store.DAGRunFields)
	if err != nil {
		return err
	}
	runs, total := s.store().ListDAGRuns(c.Param("dag_id"), opts)
	return c.JSON(http.StatusOK, model.DAGRunCollection{DAGRuns: runs, TotalEntries: total})
}

// createDAGRun handles POST /api/v1/dags/:dag_id/dagRuns. The run's DAG
// must already exist. A missing run_id is synthesized as
// manual__<UTC timestamp>; missing execution and start dates default to
// now.
func (s *Server) createDAGRun(c echo.Context) error {
	dagID := c.Param("dag_id")
	if _, ok := s.store().GetDAG(dagID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG not found")
	}

	r := model.NewDAGRun()
	if err := c.Bind(&r); err != nil {
		s.logger.Warn("invalid dag run payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	now := time.Now().UTC()
	r.DAGID = dagID
	if r.RunID == "" {
		r.RunID = fmt.Sprintf("manual__%s", now.Format("2006-01-02T15:04:05"))
	}
	if r.ExecutionDate.IsZero() {
		r.ExecutionDate = now
	}
	if r.StartDate == nil {
		r.StartDate = &now
	}

	s.store().PutDAGRun(r)
	return c.JSON(http.StatusOK, r)
}

// getDAGRun handles GET /api/v1/dags/:dag_id/dagRuns/:run_id.
func (s *Server) getDAGRun(c echo.Context) error {
	r, ok := s.store().GetDAGRun(c.Param("dag_id"), c.Param("run_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG run not found")
	}
	return c.JSON(http.StatusOK, r)
}

// updateDAGRun handles PATCH /api/v1/dags/:dag_id/dagRuns/:run_id. Path
// keys are preserved regardless of the payload.
func (s *Server) updateDAGRun(c echo.Context) error {
	dagID := c.Param("dag_id")
	runID := c.Param("run_id")
	if _, ok := s.store().GetDAGRun(dagID, runID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "DAG run not found")
	}

	r := model.NewDAGRun()
	if err := c.Bind(&r); err != nil {
		s.logger.Warn("invalid dag run payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r.DAGID = dagID
	r.RunID = runID
	s.store().PutDAGRun(r)
	return c.JSON(http.StatusOK, r)
}

// deleteDAGRun handles DELETE /api/v1/dags/:dag_id/dagRuns/:run_id.
func (s *Server) deleteDAGRun(c echo.Context) error {
	if !s.store().DeleteDAGRun(c.Param("dag_id"), c.Param("run_id")) {
		return echo.NewHTTPError(http.StatusNotFound, "DAG run not found")
	}
	return c.NoContent(http.StatusNoContent)
}
