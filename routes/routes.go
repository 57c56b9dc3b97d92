package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/controllers"
	"github.com/xrpscan/explorer/metrics"
	"github.com/xrpscan/explorer/socketio"
)

// Add registers the API, the Socket.IO endpoint and the operational routes.
func Add(e *echo.Echo, ctl *controllers.Controller, hub *socketio.Hub, gatherer prometheus.Gatherer) {
	e.Use(recordRequests(ctl.Metrics))

	v1 := e.Group("/api/v1")
	v1.GET("/ledgers/:index", ctl.GetLedger)
	v1.GET("/transactions/:hash", ctl.GetTransaction)
	v1.GET("/search/:query", ctl.Search)
	v1.GET("/nft/:id", ctl.GetNFToken)
	v1.GET("/stats/breakdown", ctl.GetBreakdown)
	v1.GET("/validators", ctl.GetValidators)

	if hub != nil {
		e.Any("/socket.io/", echo.WrapHandler(http.HandlerFunc(hub.HandleSocketIO)))
		e.Any("/socket.io/*", echo.WrapHandler(http.HandlerFunc(hub.HandleSocketIO)))
	}

	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	e.GET("/health", func(c echo.Context) error {
		clients := 0
		if hub != nil {
			clients = hub.ClientCount()
		}
		node := "ok"
		if err := connections.CheckXRPLRPCConnectionHealth(); err != nil {
			node = "unavailable"
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":           "ok",
			"service":          "explorer",
			"node":             node,
			"socketio_clients": clients,
		})
	})
}

// recordRequests observes every request under its route pattern.
func recordRequests(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			m.RecordHTTPRequest(c.Path(), c.Request().Method, status, time.Since(start).Seconds())
			return err
		}
	}
}
