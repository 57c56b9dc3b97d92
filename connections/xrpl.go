package connections

import (
	"fmt"
	"sync"
	"time"

	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/xrpl-go"
)

// The streaming client is replaced on reconnect while producers read it, so
// both clients are only reached through the getters below.
var (
	clientMu      sync.RWMutex
	xrplClient    *xrpl.Client
	xrplRPCClient *xrpl.Client
)

// GetXrplClient returns the client carrying the ledger stream subscription.
func GetXrplClient() *xrpl.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return xrplClient
}

// swapXrplClient installs client and returns the one it replaced.
func swapXrplClient(client *xrpl.Client) *xrpl.Client {
	clientMu.Lock()
	defer clientMu.Unlock()
	old := xrplClient
	xrplClient = client
	return old
}

func setXrplRPCClient(client *xrpl.Client) {
	clientMu.Lock()
	defer clientMu.Unlock()
	xrplRPCClient = client
}

func NewXrplClient() {
	NewXrplClientWithURL(config.EnvXrplWebsocketURL())
}

// NewXrplClientWithURL blocks until a client connected to URL answers a ping.
func NewXrplClientWithURL(URL string) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		logger.Log.Info().Str("url", URL).Int("attempt", attempt).Msg("Connecting XRPL stream client")

		client := xrpl.NewClient(xrpl.ClientConfig{URL: URL})
		if old := swapXrplClient(client); old != nil {
			go func() {
				if err := old.Close(); err != nil {
					logger.Log.Debug().Err(err).Msg("Error closing previous XRPL stream client")
				}
			}()
		}

		err := safePing(client, URL)
		if err == nil {
			logger.Log.Info().Str("url", URL).Int("attempt", attempt).Msg("Connected XRPL stream client")
			return
		}

		logger.Log.Warn().Str("url", URL).Int("attempt", attempt).Dur("retry_in", backoff).Err(err).Msg("XRPL stream connect failed")
		time.Sleep(backoff)
		backoff = nextBackoff(backoff)
	}
}

// safePing pings client, turning a panic from a half-open connection into
// an error.
func safePing(client *xrpl.Client, payload string) (err error) {
	if client == nil {
		return fmt.Errorf("xrpl client is nil")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during ping: %v", r)
		}
	}()
	return client.Ping([]byte(payload))
}
