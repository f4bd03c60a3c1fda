package grpc_control

import (
	"fmt"
	"net"

	"campaign-pulse/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps a grpc.Server carrying the control service and the health service.
type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	Logger *logger.Logger
}

// NewServer registers svc and marks it SERVING.
func NewServer(svc DashboardControlServer, log *logger.Logger, opts ...grpc.ServerOption) *Server {
	s := &Server{
		GRPC:   grpc.NewServer(opts...),
		Health: health.NewServer(),
		Logger: log,
	}

	RegisterDashboardControlServer(s.GRPC, svc)
	healthpb.RegisterHealthServer(s.GRPC, s.Health)
	s.Health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	s.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s
}

// -----------------------------------------------------------------------------

// ListenAndServe blocks serving on host:port until Stop.
func (s *Server) ListenAndServe(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.Logger.Info("gRPC control listening on %s", addr)
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	if err := s.GRPC.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop flips health to NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}
