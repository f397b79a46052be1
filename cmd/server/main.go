package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/arhyth/corebank"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()
	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	cfg, err := corebank.LoadConfig(cfgfl)
	cfgfl.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}

	var repo corebank.Repository
	if cfg.Database.Memory {
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		repo = corebank.NewMemoryStore()
	} else {
		pgendpt, err := corebank.NewPostgresEndpoint(cfg.Database.ConnectionString, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("error starting database")
		}
		defer pgendpt.Close()
		repo = pgendpt
	}

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		logger.Fatal().Err(err).Int64("node_id", cfg.NodeID).Msg("error creating ID node")
	}

	svc, err := corebank.NewService(repo, node, cfg.Policy, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting service")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	wrapped := corebank.Chain(svc,
		corebank.NewInstrumentingMiddleware(corebank.NewMetrics("corebank", reg)),
		corebank.NewLimitMiddleware(corebank.NewServiceLimits(cfg.Limits)),
		corebank.NewCircuitBreakMiddleware(corebank.NewServiceBreaker(cfg.Limits, &logger)),
		corebank.NewValidationMiddleware(repo),
	)

	mux := chi.NewMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Mount("/", corebank.NewHTTPHandler(wrapped, &logger))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Err(err).Msg("shutdown failed")
	}
}
