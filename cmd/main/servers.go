package main

import (
	"context"

	"campaign-pulse/src/config"
	pb "campaign-pulse/src/grpc_control"
	"campaign-pulse/src/livemetrics"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/scheduler"
	"campaign-pulse/src/server"
	"campaign-pulse/src/subscription"
	"campaign-pulse/src/telemetry"
)

// -----------------------------------------------------------------------------

// startServers orchestrates the startup of all server components
func startServers(
	ctx context.Context,
	srv *server.DashboardServer,
	sched *scheduler.BroadcastScheduler,
	metrics *livemetrics.LiveMetrics,
	registry *subscription.Registry,
	tel *telemetry.Metrics,
	config *config.Config,
	appLogger *logger.Logger,
) *pb.Server {

	// 1. HTTP API and WebSocket hub
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	// 2. Broadcast timers
	go sched.Run(ctx)

	// 3. gRPC Control Server
	grpcLogger := appLogger.Named("ControlService")
	control := pb.NewServer(pb.NewControlService(metrics, registry, tel, grpcLogger), grpcLogger)
	go func() {
		if err := control.ListenAndServe(config.GrpcHost, config.GrpcPort); err != nil {
			appLogger.Critical("failed to serve gRPC: %v", err)
		}
	}()

	return control
}
