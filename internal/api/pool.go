package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listPools handles GET /api/v1/pools.
func (s *Server) listPools(c echo.Context) error {
	opts, err := listOptions(c, store.PoolFields)
	if err != nil {
		return err
	}
	pools, total := s.store().ListPools(opts)
	return c.JSON(http.StatusOK, model.PoolCollection{Pools: pools, TotalEntries: total})
}

// getPool handles GET /api/v1/pools/:pool_name.
func (s *Server) getPool(c echo.Context) error {
	name := c.Param("pool_name")
	p, ok := s.store().GetPool(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Pool %s not found", name))
	}
	return c.JSON(http.StatusOK, p)
}

// createPool handles POST /api/v1/pools.
func (s *Server) createPool(c echo.Context) error {
	var p model.Pool
	if err := c.Bind(&p); err != nil {
		s.logger.Warn("invalid pool payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if p.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if _, ok := s.store().GetPool(p.Name); ok {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("Pool %s already exists", p.Name))
	}
	s.store().PutPool(p)
	p, _ = s.store().GetPool(p.Name)
	return c.JSON(http.StatusOK, p)
}

// updatePool handles PATCH /api/v1/pools/:pool_name.
func (s *Server) updatePool(c echo.Context) error {
	name := c.Param("pool_name")
	if _, ok := s.store().GetPool(name); !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Pool %s not found", name))
	}
	var p model.Pool
	if err := c.Bind(&p); err != nil {
		s.logger.Warn("invalid pool payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p.Name = name
	s.store().PutPool(p)
	p, _ = s.store().GetPool(name)
	return c.JSON(http.StatusOK, p)
}

// deletePool handles DELETE /api/v1/pools/:pool_name.
func (s *Server) deletePool(c echo.Context) error {
	name := c.Param("pool_name")
	if !s.store().DeletePool(name) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Pool %s not found", name))
	}
	return c.NoContent(http.StatusNoContent)
}

// SlotsRequest is the body of a pool slot update. Omitted fields keep
// their prior values.
type SlotsRequest struct {
	OccupiedSlots *int `json:"occupied_slots"`
	QueuedSlots   *int `json:"queued_slots"`
	RunningSlots  *int `json:"running_slots"`
}

// updatePoolSlots handles PATCH /api/v1/pools/:pool_name/slots.
// open_slots is re-derived from the resulting occupied count.
func (s *Server) updatePoolSlots(c echo.Context) error {
	name := c.Param("pool_name")

	var req SlotsRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid slots payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, ok := s.store().UpdatePoolSlots(name, req.OccupiedSlots, req.QueuedSlots, req.RunningSlots)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Pool %s not found", name))
	}
	return c.JSON(http.StatusOK, p)
}
