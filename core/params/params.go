package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 20
	maxPageSize       = 100
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	return &QueryParams{
		PageNumber: IntQuery(c, "page", defaultPageNumber, 1, 0),
		PageSize:   IntQuery(c, "limit", defaultPageSize, 1, maxPageSize),
		Search:     c.QueryParam("search"),
	}
}

// IntQuery parses an integer query param. Missing or malformed values give def;
// values are clamped to [min, max] (max <= 0 means unbounded).
func IntQuery(c echo.Context, name string, def, min, max int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < min {
		v = min
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}
