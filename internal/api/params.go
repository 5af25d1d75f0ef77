package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/flowmock/internal/store"
)

const (
	defaultLimit  = 100
	defaultOffset = 0
)

// listOptions parses the shared list query parameters: limit (>=1,
// default 100), offset (>=0, default 0), order_by (validated against the
// kind's orderable fields), state, and execution_date_gte/lte. Malformed
// values become 400s before the store is touched.
func listOptions[T any](c echo.Context, fields store.FieldSet[T]) (store.ListOptions, error) {
	opts := store.ListOptions{
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}

	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("limit must be a positive integer, got %q", raw))
		}
		opts.Limit = n
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("offset must be a non-negative integer, got %q", raw))
		}
		opts.Offset = n
	}
	if orderBy := c.QueryParam("order_by"); orderBy != "" {
		if !fields.Has(orderBy) {
			return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot order by unknown field %q", orderBy))
		}
		opts.OrderBy = orderBy
	}
	opts.State = c.QueryParam("state")

	var err error
	if opts.ExecutionDateGTE, err = timeParam(c, "execution_date_gte"); err != nil {
		return opts, err
	}
	if opts.ExecutionDateLTE, err = timeParam(c, "execution_date_lte"); err != nil {
		return opts, err
	}

	return opts, nil
}

// timeParam parses an optional RFC 3339 query parameter.
func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an RFC 3339 timestamp, got %q", name, raw))
	}
	return &t, nil
}
