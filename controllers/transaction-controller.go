package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/summary"
)

var hashRegex = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)

type TransactionResponse struct {
	Transaction summary.Transaction `json:"transaction"`
	Simple      []summary.Row       `json:"simple"`
	Detailed    []summary.Row       `json:"detailed"`
}

// GetTransaction returns the summary of a transaction with both row views
// GET /api/v1/transactions/:hash
func (ctl *Controller) GetTransaction(c echo.Context) error {
	hash := strings.ToUpper(c.Param("hash"))
	if !hashRegex.MatchString(hash) {
		return failure(c, http.StatusBadRequest, "Transaction hash must be 64 hex characters")
	}
	ctx := c.Request().Context()

	raw, err := ctl.cached(ctx, connections.TransactionKey(hash), func() (map[string]interface{}, error) {
		return ctl.Node.FetchTransaction(ctx, hash)
	}, isValidated)
	if err != nil {
		logger.Log.Warn().Str("hash", hash).Err(err).Msg("Failed to fetch transaction")
		return nodeFailure(c, err, "Transaction not found")
	}

	tx := ctl.Summarizer.SummarizeMap(ctx, raw)
	ctl.Metrics.RecordTransaction(tx)
	return success(c, "Transaction summarized successfully", TransactionResponse{
		Transaction: tx,
		Simple:      tx.Simple(),
		Detailed:    tx.Detailed(),
	})
}
