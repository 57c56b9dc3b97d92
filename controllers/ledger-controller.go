package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
)

// GetLedger returns the summary of a ledger
// GET /api/v1/ledgers/:index
func (ctl *Controller) GetLedger(c echo.Context) error {
	index, err := strconv.ParseUint(c.Param("index"), 10, 32)
	if err != nil || index == 0 {
		return failure(c, http.StatusBadRequest, "Ledger index must be a positive integer")
	}
	ledgerIndex := uint32(index)
	ctx := c.Request().Context()
	startTime := time.Now()

	raw, err := ctl.cached(ctx, connections.LedgerKey(ledgerIndex), func() (map[string]interface{}, error) {
		return ctl.Node.FetchLedger(ctx, ledgerIndex)
	}, isValidated)
	if err != nil {
		logger.Log.Warn().Uint32("ledger_index", ledgerIndex).Err(err).Msg("Failed to fetch ledger")
		return nodeFailure(c, err, "Ledger not found")
	}

	ledger := ctl.Summarizer.SummarizeLedger(ctx, raw)
	ctl.Metrics.RecordLedger("api", ledger, time.Since(startTime).Seconds())
	return success(c, "Ledger summarized successfully", ledger)
}
