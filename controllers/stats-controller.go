package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/logger"
)

type BreakdownResponse struct {
	Total      int                     `json:"total"`
	Categories []classify.CategoryStat `json:"categories"`
}

// GetBreakdown returns the category breakdown of the live transaction window
// GET /api/v1/stats/breakdown
func (ctl *Controller) GetBreakdown(c echo.Context) error {
	if ctl.Feed == nil {
		return failure(c, http.StatusServiceUnavailable, "Live feed is not running")
	}
	stats := ctl.Feed.Breakdown()
	total := 0
	for _, s := range stats {
		total += s.Count
	}
	return success(c, "Breakdown computed successfully", BreakdownResponse{Total: total, Categories: stats})
}

// GetValidators returns the validator list and the configured publisher's
// UNL count
// GET /api/v1/validators
func (ctl *Controller) GetValidators(c echo.Context) error {
	if ctl.Validators == nil {
		return failure(c, http.StatusServiceUnavailable, "Validator history service is not configured")
	}
	list, err := ctl.Validators.Validators(c.Request().Context())
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to fetch validators")
		return failure(c, http.StatusBadGateway, "Validator history service request failed")
	}
	return success(c, "Validators fetched successfully", list)
}
