package grpc_control

import (
	"context"
	"encoding/json"
	"time"

	"campaign-pulse/src/interfaces"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"
	"campaign-pulse/src/subscription"
	"campaign-pulse/src/telemetry"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ControlService implements DashboardControlServer on top of the live metrics
// and the subscription registry.
type ControlService struct {
	Metrics   interfaces.IMetricSource
	Registry  *subscription.Registry
	Telemetry *telemetry.Metrics
	Logger    *logger.Logger

	startedAt time.Time
}

// NewControlService creates a new instance of ControlService
func NewControlService(
	metrics interfaces.IMetricSource,
	registry *subscription.Registry,
	tel *telemetry.Metrics,
	log *logger.Logger,
) *ControlService {
	return &ControlService{
		Metrics:   metrics,
		Registry:  registry,
		Telemetry: tel,
		Logger:    log,
		startedAt: time.Now(),
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return snapshotStruct(s.Metrics.Snapshot())
}

// -----------------------------------------------------------------------------

// ForceTick applies one mutation regardless of connection state. Nothing is pushed.
func (s *ControlService) ForceTick(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot := s.Metrics.Tick()
	s.Telemetry.IncMutation()
	s.Logger.Info("gRPC: ForceTick -> users=%d revenue=%.2f", snapshot.ActiveUsers, snapshot.TotalRevenue)
	return snapshotStruct(snapshot)
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	streams := make(map[string]interface{})
	for stream, n := range s.Registry.StreamCounts() {
		streams[stream] = n
	}

	result, err := structpb.NewStruct(map[string]interface{}{
		"connections":   s.Registry.Count(),
		"streams":       streams,
		"uptimeSeconds": int64(time.Since(s.startedAt).Seconds()),
		"lastUpdated":   s.Metrics.Snapshot().LastUpdated.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode status: %v", err)
	}
	return result, nil
}

// -----------------------------------------------------------------------------

// snapshotStruct converts a snapshot through its JSON form, so field names match the websocket payload.
func snapshotStruct(snapshot models.MMetricSnapshot) (*structpb.Struct, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode snapshot: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, status.Errorf(codes.Internal, "encode snapshot: %v", err)
	}
	result, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode snapshot: %v", err)
	}
	return result, nil
}
