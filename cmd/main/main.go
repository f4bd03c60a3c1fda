package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign-pulse/src/auth"
	"campaign-pulse/src/config"
	"campaign-pulse/src/livemetrics"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/mockdata"
	"campaign-pulse/src/scheduler"
	"campaign-pulse/src/server"
	"campaign-pulse/src/storage"
	"campaign-pulse/src/subscription"
	"campaign-pulse/src/telemetry"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. User store
	store, err := storage.NewUserStore(config.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := store.Initialize(ctx); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer store.Close()

	// 2. Live metrics and subscriptions
	tel := telemetry.NewMetrics()
	seed := config.RealTime.Seed
	metrics := livemetrics.NewLiveMetrics(mockdata.InitialSnapshot(), livemetrics.NewRandomSource(seed))
	registry := subscription.NewRegistry()

	// 3. HTTP + WebSocket server
	authService := auth.NewService(config.Auth, store)
	srv := server.NewDashboardServer(config.MConfig, appLogger.Named("Server"), metrics, authService, registry, tel)

	// 4. Broadcast scheduler, with its own random stream
	schedulerSeed := seed
	if schedulerSeed != 0 {
		schedulerSeed++
	}
	sched := scheduler.NewBroadcastScheduler(
		metrics,
		srv.Hub,
		livemetrics.NewRandomSource(schedulerSeed),
		scheduler.IntervalsFromConfig(config.RealTime),
		appLogger.Named("Scheduler"),
		tel,
	)
	srv.Alerts = sched.History

	// 5. Start everything
	control := startServers(ctx, srv, sched, metrics, registry, tel, config, appLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	control.Stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown: %v", err)
	}
}
