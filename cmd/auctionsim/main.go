package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Surajr36/cricket-auction-simulator/internal/auctioneer"
	"github.com/Surajr36/cricket-auction-simulator/internal/autopilot"
	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/config"
	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
	"github.com/Surajr36/cricket-auction-simulator/internal/health"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
	"github.com/Surajr36/cricket-auction-simulator/internal/telemetry"
	"github.com/Surajr36/cricket-auction-simulator/internal/ticker"

	// Register store drivers so they are available via store.Open.
	_ "github.com/Surajr36/cricket-auction-simulator/internal/store/memstore"
	_ "github.com/Surajr36/cricket-auction-simulator/internal/store/postgres"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		slog.Error("fatal error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup telemetry.
	tp, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		slog.Warn("telemetry setup failed, continuing without OTEL export", slog.Any("error", err))
		tp = telemetry.NewNopProvider()
	}
	defer func() {
		if shutdownErr := tp.Shutdown(context.Background()); shutdownErr != nil {
			slog.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	logger := tp.Logger
	clk := clock.Real{}

	// Load the player and team catalog.
	cat, err := catalog.Load(cfg.Catalog.PlayersFile, cfg.Catalog.TeamsFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.InfoContext(ctx, "catalog loaded",
		slog.Int("players", len(cat.Players())),
		slog.Int("teams", len(cat.Teams())),
	)

	// Open store using the configured driver (sqlx or memory).
	repos, err := store.Open(ctx, cfg.Database, clk)
	if err != nil {
		return fmt.Errorf("opening store (driver=%s): %w", cfg.Database.Driver, err)
	}
	if repos.Closer != nil {
		defer repos.Closer.Close()
	}

	logger.InfoContext(ctx, "store opened", slog.String("driver", cfg.Database.Driver))

	// Build the auction machinery.
	machine := engine.NewMachine(cat, logger)
	coord := auctioneer.New(machine, cat, cfg.Squad, repos, logger, tp.TracerProvider)

	// Setup health checks and the state snapshot endpoint.
	checkers := []health.Checker{}
	if repos.Ping != nil {
		checkers = append(checkers, health.Checker{Name: "database", Check: repos.Ping})
	}
	healthHandler := health.NewHandler(clk, coord, checkers...)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler.LivenessHandler())
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler())
	mux.HandleFunc("/auction", healthHandler.SnapshotHandler())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "starting http server", slog.Int("port", cfg.Server.Port))
		if listenErr := httpServer.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			logger.ErrorContext(ctx, "http server error", slog.Any("error", listenErr))
		}
	}()

	// Start the countdown driver.
	go ticker.New(coord, cfg.Auction.TickInterval, logger).Run(ctx)

	healthHandler.SetReady(true)
	logger.InfoContext(ctx, "auctionsim is running", slog.String("version", version))

	if cfg.Simulation.Autopilot {
		// Run one full scripted auction and then wait for shutdown.
		pilot := autopilot.New(coord, cat, cfg.Squad, cfg.Auction.TickInterval/4, logger)
		if pilotErr := pilot.Run(ctx); pilotErr != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "autopilot run failed", slog.Any("error", pilotErr))
		}
	} else {
		// Without the autopilot the process serves state over HTTP. An
		// unfinished auction in the store is resumed from its event log;
		// otherwise a fresh one is opened.
		inProgress, listErr := repos.Auctions.ListInProgress(ctx)
		if listErr != nil {
			return fmt.Errorf("listing auctions: %w", listErr)
		}
		if len(inProgress) > 0 {
			if _, resumeErr := coord.Resume(ctx, inProgress[0].ID); resumeErr != nil {
				return fmt.Errorf("resuming auction %s: %w", inProgress[0].ID, resumeErr)
			}
			logger.InfoContext(ctx, "resumed auction", slog.String("auction_id", inProgress[0].ID))
		} else if _, startErr := coord.StartAuction(ctx); startErr != nil {
			return fmt.Errorf("starting auction: %w", startErr)
		}
	}

	<-ctx.Done()
	logger.Info("shutting down...")
	healthHandler.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}
