package grpc_control

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"campaign-pulse/src/livemetrics"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/mockdata"
	"campaign-pulse/src/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func startControl(t *testing.T) (*DashboardControlClient, *grpc.ClientConn, *livemetrics.LiveMetrics, *subscription.Registry) {
	t.Helper()

	lm := livemetrics.NewLiveMetrics(mockdata.InitialSnapshot(), livemetrics.NewRandomSource(3))
	registry := subscription.NewRegistry()
	log := logger.NewLoggerWithWriter(io.Discard, "ERROR", "control")

	srv := NewServer(NewControlService(lm, registry, nil, log), log)
	lis := bufconn.Listen(bufSize)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewDashboardControlClient(conn), conn, lm, registry
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGetSnapshotDoesNotMutate(t *testing.T) {
	client, _, lm, _ := startControl(t)

	snap, err := client.GetSnapshot(testContext(t))
	require.NoError(t, err)
	assert.EqualValues(t, mockdata.InitialSnapshot().ActiveUsers, snap.Fields["activeUsers"].GetNumberValue())
	assert.Zero(t, lm.Ticks())
}

func TestForceTickMutatesOnce(t *testing.T) {
	client, _, lm, _ := startControl(t)

	snap, err := client.ForceTick(testContext(t))
	require.NoError(t, err)
	assert.EqualValues(t, 1, lm.Ticks())
	assert.EqualValues(t, lm.Snapshot().ActiveUsers, snap.Fields["activeUsers"].GetNumberValue())
}

func TestGetStatusReportsRegistry(t *testing.T) {
	client, _, _, registry := startControl(t)

	registry.Connect("c1")
	registry.Connect("c2")
	registry.Subscribe("c1", "metrics")

	st, err := client.GetStatus(testContext(t))
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Fields["connections"].GetNumberValue())
	assert.EqualValues(t, 1, st.Fields["streams"].GetStructValue().Fields["metrics"].GetNumberValue())
}

func TestHealthServing(t *testing.T) {
	_, conn, _, _ := startControl(t)

	resp, err := healthpb.NewHealthClient(conn).Check(testContext(t), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
