package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/controllers"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/memo"
	"github.com/xrpscan/explorer/metrics"
	"github.com/xrpscan/explorer/producers"
	"github.com/xrpscan/explorer/routes"
	"github.com/xrpscan/explorer/search"
	"github.com/xrpscan/explorer/socketio"
	"github.com/xrpscan/explorer/summary"
)

func main() {
	configFile := flag.String("config", ".env", "Environment config file")
	flag.Parse()

	config.EnvLoad(*configFile)
	logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Explorer stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	connections.NewXrplClient()
	connections.NewXrplRPCClient()
	connections.NewWriter()
	if err := connections.NewRedisClient(); err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable; summary cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	network := codec.NewNetwork(config.EnvDisplayCurrency(), config.EnvNativeCurrencyCodes())
	summarizer := summary.NewSummarizer(network, memo.NewDecoder(memo.DefaultRegistry))
	node := connections.DefaultNode()
	cache := connections.NewCache(connections.RedisClient, "explorer", config.EnvCacheTTL())
	feed := producers.NewFeed()
	hub := socketio.GetHub()

	p := &producers.Processor{
		Node:       node,
		Summarizer: summarizer,
		Feed:       feed,
		Hub:        hub,
		Cache:      cache,
		Metrics:    m,
	}
	if connections.KafkaWriter != nil {
		p.Writer = connections.KafkaWriter
	}

	ctl := &controllers.Controller{
		Node:       node,
		Summarizer: summarizer,
		Router:     search.NewRouter(node),
		Cache:      cache,
		Feed:       feed,
		Metrics:    m,
	}
	if url := config.EnvDataURL(); url != "" {
		ctl.Validators = connections.NewVHSClient(url, config.EnvNetwork(), config.EnvUNLPublisher(), config.EnvRequestTimeout())
	}

	go connections.SubscribeStreams()
	go connections.MonitorXRPLConnection(ctx)
	go producers.RunProducers(ctx, p)

	e := echo.New()
	e.HideBanner = true
	routes.Add(e, ctl, hub, registry)

	serverAddress := fmt.Sprintf("%s:%s", config.EnvServerHost(), config.EnvServerPort())
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("address", serverAddress).Msg("Explorer API listening")
		if err := e.Start(serverAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Log.Info().Msg("Shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to shut down HTTP server")
	}
	p.Wait()
	connections.CloseAll()
	return serveErr
}
