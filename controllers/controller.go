package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/metrics"
	"github.com/xrpscan/explorer/search"
	"github.com/xrpscan/explorer/summary"
)

// Node is satisfied by *connections.Node.
type Node interface {
	FetchLedger(ctx context.Context, ledgerIndex uint32) (map[string]interface{}, error)
	FetchTransaction(ctx context.Context, hash string) (map[string]interface{}, error)
}

// Cache is satisfied by *connections.Cache.
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// ValidatorSource is satisfied by *connections.VHSClient.
type ValidatorSource interface {
	Validators(ctx context.Context) (*connections.ValidatorList, error)
}

// Breakdowner is satisfied by *producers.Feed.
type Breakdowner interface {
	Breakdown() []classify.CategoryStat
}

// Controller serves the explorer API. Cache, Validators, Feed and Metrics
// are optional.
type Controller struct {
	Node       Node
	Summarizer *summary.Summarizer
	Router     *search.Router
	Cache      Cache
	Validators ValidatorSource
	Feed       Breakdowner
	Metrics    *metrics.Metrics
}

func success(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": message,
		"data":    data,
	})
}

func failure(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

// nodeFailure maps a node error to 404, 504 or 502.
func nodeFailure(c echo.Context, err error, notFound string) error {
	if errors.Is(err, connections.ErrNotFound) {
		return failure(c, http.StatusNotFound, notFound)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failure(c, http.StatusGatewayTimeout, "Node request timed out")
	}
	return failure(c, http.StatusBadGateway, "Node request failed")
}

// cached returns the raw node result stored under key, calling fetch and
// caching its result on a miss. Results are cached only when validated
// reports true for them.
func (ctl *Controller) cached(ctx context.Context, key string, fetch func() (map[string]interface{}, error), validated func(map[string]interface{}) bool) (map[string]interface{}, error) {
	if ctl.Cache != nil {
		var raw map[string]interface{}
		err := ctl.Cache.Get(ctx, key, &raw)
		if err == nil && raw != nil {
			return raw, nil
		}
		if err != nil && !errors.Is(err, connections.ErrCacheMiss) {
			logger.Log.Warn().Str("key", key).Err(err).Msg("Cache read failed")
		}
	}

	raw, err := fetch()
	if err != nil {
		return nil, err
	}
	if ctl.Cache != nil && validated(raw) {
		if err := ctl.Cache.Set(ctx, key, raw); err != nil {
			logger.Log.Warn().Str("key", key).Err(err).Msg("Cache write failed")
		}
	}
	return raw, nil
}

func isValidated(raw map[string]interface{}) bool {
	validated, _ := raw["validated"].(bool)
	return validated
}
