package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listConnections handles GET /api/v1/connections.
func (s *Server) listConnections(c echo.Context) error {
	opts, err := listOptions(c, store.ConnectionFields)
	if err != nil {
		return err
	}
	conns, total := s.store().ListConnections(opts)
	return c.JSON(http.StatusOK, model.ConnectionCollection{Connections: conns, TotalEntries: total})
}

// getConnection handles GET /api/v1/connections/:conn_id.
func (s *Server) getConnection(c echo.Context) error {
	connID := c.Param("conn_id")
	conn, ok := s.store().GetConnection(connID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Connection %s not found", connID))
	}
	return c.JSON(http.StatusOK, conn)
}

// createConnection handles POST /api/v1/connections. Connections are
// independently keyed, so an existing conn_id is a conflict.
func (s *Server) createConnection(c echo.Context) error {
	var conn model.Connection
	if err := c.Bind(&conn); err != nil {
		s.logger.Warn("invalid connection payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if conn.ConnID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "conn_id is required")
	}
	if _, ok := s.store().GetConnection(conn.ConnID); ok {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("Connection %s already exists", conn.ConnID))
	}
	s.store().PutConnection(conn)
	return c.JSON(http.StatusOK, conn)
}

// updateConnection handles PATCH /api/v1/connections/:conn_id.
func (s *Server) updateConnection(c echo.Context) error {
	connID := c.Param("conn_id")
	if _, ok := s.store().GetConnection(connID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Connection %s not found", connID))
	}
	var conn model.Connection
	if err := c.Bind(&conn); err != nil {
		s.logger.Warn("invalid connection payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	conn.ConnID = connID
	s.store().PutConnection(conn)
	return c.JSON(http.StatusOK, conn)
}

// deleteConnection handles DELETE /api/v1/connections/:conn_id.
func (s *Server) deleteConnection(c echo.Context) error {
	connID := c.Param("conn_id")
	if !s.store().DeleteConnection(connID) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Connection %s not found", connID))
	}
	return c.NoContent(http.StatusNoContent)
}

// listVariables handles GET /api/v1/variables.
func (s *Server) listVariables(c echo.Context) error {
	opts, err := listOptions(c, store.VariableFields)
	if err != nil {
		return err
	}
	vars, total := s.store().ListVariables(opts)
	return c.JSON(http.StatusOK, model.VariableCollection{Variables: vars, TotalEntries: total})
}

// getVariable handles GET /api/v1/variables/:key.
func (s *Server) getVariable(c echo.Context) error {
	key := c.Param("key")
	v, ok := s.store().GetVariable(key)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Variable %s not found", key))
	}
	return c.JSON(http.StatusOK, v)
}

// createVariable handles POST /api/v1/variables.
func (s *Server) createVariable(c echo.Context) error {
	var v model.Variable
	if err := c.Bind(&v); err != nil {
		s.logger.Warn("invalid variable payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if v.Key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key is required")
	}
	if _, ok := s.store().GetVariable(v.Key); ok {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("Variable %s already exists", v.Key))
	}
	s.store().PutVariable(v)
	return c.JSON(http.StatusOK, v)
}

// updateVariable handles PATCH /api/v1/variables/:key.
func (s *Server) updateVariable(c echo.Context) error {
	key := c.Param("key")
	if _, ok := s.store().GetVariable(key); !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Variable %s not found", key))
	}
	var v model.Variable
	if err := c.Bind(&v); err != nil {
		s.logger.Warn("invalid variable payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	v.Key = key
	s.store().PutVariable(v)
	return c.JSON(http.StatusOK, v)
}

// deleteVariable handles DELETE /api/v1/variables/:key.
func (s *Server) deleteVariable(c echo.Context) error {
	key := c.Param("key")
	if !s.store().DeleteVariable(key) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Variable %s not found", key))
	}
	return c.NoContent(http.StatusNoContent)
}
