// Package main is the entry point for the portfolio analytics engine.
// It wires the item store, the stat analyzers, the recommendation rule
// engine and the report formatter behind an HTTP API, following
// constructor-injection throughout: there is no ambient global state, and
// all mutation is serialized through the store's single-writer lock.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Triple-dylan/realglobal-engine/internal/config"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/diversification"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/portfolio"
	portfoliohandlers "github.com/Triple-dylan/realglobal-engine/internal/modules/portfolio/handlers"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/recommendations"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/reports"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/risk"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/stats"
	"github.com/Triple-dylan/realglobal-engine/internal/server"
	"github.com/Triple-dylan/realglobal-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting portfolio analytics engine")

	store := portfolio.NewStore(log)
	service := portfolio.NewService(
		store,
		stats.NewCalculator(log),
		diversification.NewAnalyzer(log),
		risk.NewAnalyzer(log),
		recommendations.NewEngine(log),
		reports.NewFormatter(log),
		log,
	)

	srv := server.New(server.Config{
		Log:              log,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		PortfolioHandler: portfoliohandlers.NewHandler(service, log),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}

	log.Info().Msg("Stopped")
}
