package controllers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/search"
)

// Search resolves a query to the page that shows it. Unmatched queries get
// a 404 carrying the generic search page path.
// GET /api/v1/search/:query
func (ctl *Controller) Search(c echo.Context) error {
	query := c.Param("query")
	if unescaped, err := url.PathUnescape(query); err == nil {
		query = unescaped
	}

	route := ctl.Router.Route(c.Request().Context(), query)
	ctl.Metrics.RecordSearch(route)
	if route == nil {
		logger.Log.Debug().Str("query", query).Msg("Search query matched no route")
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"status":  http.StatusNotFound,
			"message": "No match for query",
			"data":    map[string]string{"path": search.Fallback(query)},
		})
	}
	return success(c, "Search query resolved", route)
}
