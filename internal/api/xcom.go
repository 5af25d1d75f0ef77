package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listXComEntries handles GET .../taskInstances/:task_id/xcomEntries.
// The optional `key` query parameter narrows to one key's entries.
func (s *Server) listXComEntries(c echo.Context) error {
	opts, err := listOptions(c, store.XComFields)
	if err != nil {
		return err
	}
	filter := store.XComFilter{
		DAGID:  c.Param("dag_id"),
		RunID:  c.Param("run_id"),
		TaskID: c.Param("task_id"),
		Key:    c.QueryParam("key"),
	}
	entries, total := s.store().ListXComs(filter, opts)
	return c.JSON(http.StatusOK, model.XComCollection{XComEntries: entries, TotalEntries: total})
}

// getXComEntry handles GET .../taskInstances/:task_id/xcomEntries/:key.
func (s *Server) getXComEntry(c echo.Context) error {
	x, ok := s.store().GetXCom(c.Param("dag_id"), c.Param("task_id"), c.Param("key"), c.Param("run_id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "XCom entry not found")
	}
	return c.JSON(http.StatusOK, x)
}

// createXComEntry handles POST .../taskInstances/:task_id/xcomEntries.
// Path keys overwrite whatever the payload carried.
func (s *Server) createXComEntry(c echo.Context) error {
	x := model.NewXCom()
	if err := c.Bind(&x); err != nil {
		s.logger.Warn("invalid xcom payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if x.Key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key is required")
	}
	x.DAGID = c.Param("dag_id")
	x.RunID = c.Param("run_id")
	x.TaskID = c.Param("task_id")

	s.store().PutXCom(x)
	return c.JSON(http.StatusOK, x)
}

// deleteXComEntry handles DELETE .../taskInstances/:task_id/xcomEntries/:key.
func (s *Server) deleteXComEntry(c echo.Context) error {
	if !s.store().DeleteXCom(c.Param("dag_id"), c.Param("task_id"), c.Param("key"), c.Param("run_id")) {
		return echo.NewHTTPError(http.StatusNotFound, "XCom entry not found")
	}
	return c.NoContent(http.StatusNoContent)
}
