package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/model"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// listProviders handles GET /api/v1/providers.
func (s *Server) listProviders(c echo.Context) error {
	opts, err := listOptions(c, store.ProviderFields)
	if err != nil {
		return err
	}
	providers, total := s.store().ListProviders(opts)
	return c.JSON(http.StatusOK, model.ProviderCollection{Providers: providers, TotalEntries: total})
}

// getProvider handles GET /api/v1/providers/:provider_name.
func (s *Server) getProvider(c echo.Context) error {
	name := c.Param("provider_name")
	p, ok := s.store().GetProvider(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Provider %s not found", name))
	}
	return c.JSON(http.StatusOK, p)
}

// createProvider handles POST /api/v1/providers.
func (s *Server) createProvider(c echo.Context) error {
	p := model.NewProvider()
	if err := c.Bind(&p); err != nil {
		s.logger.Warn("invalid provider payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if p.PackageName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "package_name is required")
	}
	if _, ok := s.store().GetProvider(p.PackageName); ok {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("Provider %s already exists", p.PackageName))
	}
	s.store().PutProvider(p)
	return c.JSON(http.StatusOK, p)
}

// updateProvider handles PATCH /api/v1/providers/:provider_name.
func (s *Server) updateProvider(c echo.Context) error {
	name := c.Param("provider_name")
	if _, ok := s.store().GetProvider(name); !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Provider %s not found", name))
	}
	p := model.NewProvider()
	if err := c.Bind(&p); err != nil {
		s.logger.Warn("invalid provider payload", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p.PackageName = name
	s.store().PutProvider(p)
	return c.JSON(http.StatusOK, p)
}

// deleteProvider handles DELETE /api/v1/providers/:provider_name.
func (s *Server) deleteProvider(c echo.Context) error {
	name := c.Param("provider_name")
	if !s.store().DeleteProvider(name) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Provider %s not found", name))
	}
	return c.NoContent(http.StatusNoContent)
}

// getProviderHooks handles GET /api/v1/providers/:provider_name/hooks.
func (s *Server) getProviderHooks(c echo.Context) error {
	name := c.Param("provider_name")
	p, ok := s.store().GetProvider(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Provider %s not found", name))
	}
	return c.JSON(http.StatusOK, p.Hooks)
}
