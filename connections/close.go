package connections

import (
	"context"
	"sync"
	"time"

	"github.com/xrpscan/explorer/logger"
)

// closeWithTimeout runs closeFn and gives up after 3 seconds.
func closeWithTimeout(name string, closeFn func() error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- closeFn()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Log.Error().Err(err).Str("connection", name).Msg("Error closing connection")
		} else {
			logger.Log.Info().Str("connection", name).Msg("Closed connection")
		}
	case <-ctx.Done():
		logger.Log.Warn().Str("connection", name).Msg("Timeout closing connection after 3 seconds")
	}
}

func CloseXrplClient() {
	closeWithTimeout("XRPL client", func() error {
		if client := GetXrplClient(); client != nil {
			return client.Close()
		}
		return nil
	})
}

func CloseXrplRPCClient() {
	closeWithTimeout("XRPL RPC client", func() error {
		clientMu.RLock()
		client := xrplRPCClient
		clientMu.RUnlock()
		if client != nil {
			return client.Close()
		}
		return nil
	})
}

func CloseWriter() {
	closeWithTimeout("Kafka writer", func() error {
		if KafkaWriter != nil {
			return KafkaWriter.Close()
		}
		return nil
	})
}

func CloseRedis() {
	closeWithTimeout("Redis", func() error {
		if RedisClient != nil {
			return RedisClient.Close()
		}
		return nil
	})
}

// CloseAll unsubscribes from streams and closes every connection in
// parallel, waiting at most 15 seconds.
func CloseAll() {
	logger.Log.Info().Msg("Closing all connections")
	UnsubscribeStreams()

	var wg sync.WaitGroup
	for _, closeFn := range []func(){CloseXrplClient, CloseXrplRPCClient, CloseWriter, CloseRedis} {
		wg.Add(1)
		go func(fn func()) {
			defer wg.Done()
			fn()
		}(closeFn)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Log.Info().Msg("All connections closed")
	case <-time.After(15 * time.Second):
		logger.Log.Warn().Msg("Timeout waiting for all connections to close")
	}
}
