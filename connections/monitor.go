package connections

import (
	"context"
	"time"

	"github.com/xrpscan/explorer/logger"
)

// MonitorXRPLConnection pings the streaming client every 30 seconds and
// reconnects and resubscribes when the ping fails. It returns when ctx is
// done.
func MonitorXRPLConnection(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		client := GetXrplClient()
		if client == nil {
			continue
		}
		if err := safePing(client, "ping"); err != nil {
			logger.Log.Warn().Err(err).Msg("XRPL ping failed; reconnecting and resubscribing")
			NewXrplClient()
			SubscribeStreams()
		}
	}
}
