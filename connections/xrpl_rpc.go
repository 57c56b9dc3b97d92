package connections

import (
	"fmt"
	"strings"
	"time"

	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/xrpl-go"
)

// NewXrplRPCClient connects the client that serves ledger and tx lookups, so
// heavy requests do not contend with the streaming client. The full-history
// node is used when one is configured.
func NewXrplRPCClient() {
	url := config.EnvXrplWebsocketFullHistoryURL()
	if url == "" {
		url = config.EnvXrplWebsocketURL()
	}
	NewXrplRPCClientWithURL(url)
}

func NewXrplRPCClientWithURL(URL string) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		logger.Log.Info().Str("url", URL).Int("attempt", attempt).Msg("Connecting XRPL RPC client")

		client := xrpl.NewClient(xrpl.ClientConfig{URL: URL})
		setXrplRPCClient(client)
		err := safePing(client, URL)
		if err == nil {
			logger.Log.Info().Str("url", URL).Int("attempt", attempt).Msg("Connected XRPL RPC client")
			return
		}

		if isIPLimitError(err) {
			logger.Log.Warn().Str("url", URL).Int("attempt", attempt).Err(err).Msg("IP limit reached, waiting 5 minutes")
			time.Sleep(5 * time.Minute)
			backoff = initialBackoff
			continue
		}

		logger.Log.Warn().Str("url", URL).Int("attempt", attempt).Dur("retry_in", backoff).Err(err).Msg("XRPL RPC connect failed")
		time.Sleep(backoff)
		backoff = nextBackoff(backoff)
	}
}

// GetXRPLRequestClient returns the client preferred for RPC requests.
func GetXRPLRequestClient() *xrpl.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	if xrplRPCClient != nil {
		return xrplRPCClient
	}
	return xrplClient
}

// CheckXRPLRPCConnectionHealth pings the request client.
func CheckXRPLRPCConnectionHealth() error {
	client := GetXRPLRequestClient()
	if client == nil {
		return fmt.Errorf("XRPL RPC client is not initialized")
	}
	if err := safePing(client, "health_check"); err != nil {
		logger.Log.Warn().Err(err).Msg("XRPL RPC client health check failed")
		return err
	}
	return nil
}

func isIPLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "close 1008") ||
		strings.Contains(errStr, "policy violation") ||
		strings.Contains(errStr, "IP limit reached")
}
