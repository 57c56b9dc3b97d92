package connections

import (
	"context"
	"time"

	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/xrpl-go"
)

/*
* Only the ledger stream is subscribed. Transactions are fetched with the
* `ledger` command once a ledger closes so that every summary is built from
* the node's native transaction format, metadata included.
 */
var subscribedStreams = []string{xrpl.StreamTypeLedger}

// SubscribeStreams retries until the node acknowledges the subscription.
func SubscribeStreams() {
	backoff := initialBackoff
	for {
		client := GetXrplClient()
		if client == nil {
			logger.Log.Warn().Dur("retry_in", backoff).Msg("XRPL client not initialized; waiting before subscribing")
		} else {
			response, err := client.Subscribe(subscribedStreams)
			if err != nil {
				logger.Log.Warn().Dur("retry_in", backoff).Err(err).Msg("xrpl.Subscribe failed")
			} else if status, ok := response["status"].(string); ok && status == "error" {
				logger.Log.Warn().Dur("retry_in", backoff).Any("error", response["error"]).Any("error_message", response["error_message"]).Msg("xrpl.Subscribe returned error")
			} else {
				logger.Log.Info().Any("status", response["status"]).Any("id", response["id"]).Msg("xrpl.Subscribe successful")
				return
			}
		}
		time.Sleep(backoff)
		backoff = nextBackoff(backoff)
	}
}

// UnsubscribeStreams gives up after 5 seconds so shutdown cannot hang.
func UnsubscribeStreams() {
	client := GetXrplClient()
	if client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	var response map[string]interface{}
	var err error
	go func() {
		defer close(done)
		response, err = client.Unsubscribe(subscribedStreams)
	}()

	select {
	case <-done:
		if err != nil {
			logger.Log.Error().Err(err).Msg("xrpl.Unsubscribe")
		} else {
			logger.Log.Debug().Any("status", response["status"]).Msg("xrpl.Unsubscribe")
		}
	case <-ctx.Done():
		logger.Log.Warn().Msg("xrpl.Unsubscribe timed out after 5 seconds")
	}
}
