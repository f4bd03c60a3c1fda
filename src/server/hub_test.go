package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campaign-pulse/src/livemetrics"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/mockdata"
	"campaign-pulse/src/models"
	"campaign-pulse/src/scheduler"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readTimeout = 2 * time.Second

type wireEvent struct {
	Event     string          `json:"event"`
	Stream    string          `json:"stream"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// -----------------------------------------------------------------------------

func startWS(t *testing.T, f *fixture) string {
	t.Helper()
	ts := httptest.NewServer(f.server.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func send(t *testing.T, conn *websocket.Conn, command, stream string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(models.MClientCommand{Command: command, Stream: stream}))
}

// expectSilence asserts nothing arrives within d. The connection is unusable for reads afterwards.
func expectSilence(t *testing.T, conn *websocket.Conn, d time.Duration) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(d)))
	_, msg, err := conn.ReadMessage()
	assert.Error(t, err, "unexpected message: %s", msg)
}

func newTestScheduler(f *fixture) *scheduler.BroadcastScheduler {
	log := logger.NewLoggerWithWriter(io.Discard, "ERROR", "scheduler")
	return scheduler.NewBroadcastScheduler(
		f.metrics, f.server.Hub, livemetrics.NewRandomSource(7),
		scheduler.Intervals{Metrics: time.Hour, Campaigns: time.Hour, Alerts: time.Hour},
		log, nil,
	)
}

// -----------------------------------------------------------------------------

func TestConnectSendsInitialSnapshotOnce(t *testing.T) {
	f := newFixture(t, testConfig())
	conn := dial(t, startWS(t, f))

	ev := readEvent(t, conn)
	assert.Equal(t, models.EventInitialSnapshot, ev.Event)
	assert.Empty(t, ev.Stream)
	assert.NotZero(t, ev.Timestamp)

	var snap models.MMetricSnapshot
	require.NoError(t, json.Unmarshal(ev.Data, &snap))
	assert.Equal(t, mockdata.InitialSnapshot().ActiveUsers, snap.ActiveUsers)
	assert.Equal(t, 1, f.server.Hub.ConnectionCount())

	expectSilence(t, conn, 200*time.Millisecond)
}

func TestSubscriberGetsMetricsUpdateOthersGetLiveUpdate(t *testing.T) {
	f := newFixture(t, testConfig())
	url := startWS(t, f)
	sched := newTestScheduler(f)

	subscriber := dial(t, url)
	bystander := dial(t, url)
	readEvent(t, subscriber)
	readEvent(t, bystander)

	send(t, subscriber, models.CommandSubscribe, models.StreamMetrics)
	require.Eventually(t, func() bool {
		return len(f.registry.Subscribers(models.StreamMetrics)) == 1
	}, readTimeout, 10*time.Millisecond)

	require.True(t, sched.MetricsTick())

	ev := readEvent(t, subscriber)
	assert.Equal(t, models.EventMetricsUpdate, ev.Event)
	assert.Equal(t, models.StreamMetrics, ev.Stream)
	var snap models.MMetricSnapshot
	require.NoError(t, json.Unmarshal(ev.Data, &snap))
	assert.Equal(t, f.metrics.Snapshot().ActiveUsers, snap.ActiveUsers)

	assert.Equal(t, models.EventLiveUpdate, readEvent(t, subscriber).Event)

	ev = readEvent(t, bystander)
	assert.Equal(t, models.EventLiveUpdate, ev.Event)
	var live models.MLiveUpdate
	require.NoError(t, json.Unmarshal(ev.Data, &live))
	assert.Equal(t, snap.ActiveUsers, live.ActiveUsers)
}

func TestUnsubscribeStopsStreamEvents(t *testing.T) {
	f := newFixture(t, testConfig())
	sched := newTestScheduler(f)
	conn := dial(t, startWS(t, f))
	readEvent(t, conn)

	send(t, conn, models.CommandSubscribe, models.StreamMetrics)
	require.Eventually(t, func() bool {
		return len(f.registry.Subscribers(models.StreamMetrics)) == 1
	}, readTimeout, 10*time.Millisecond)

	send(t, conn, models.CommandUnsubscribe, models.StreamMetrics)
	require.Eventually(t, func() bool {
		return len(f.registry.Subscribers(models.StreamMetrics)) == 0
	}, readTimeout, 10*time.Millisecond)

	require.True(t, sched.MetricsTick())
	assert.Equal(t, models.EventLiveUpdate, readEvent(t, conn).Event)
	expectSilence(t, conn, 200*time.Millisecond)
}

func TestCampaignAndAnalyticsStreams(t *testing.T) {
	f := newFixture(t, testConfig())
	sched := newTestScheduler(f)
	conn := dial(t, startWS(t, f))
	readEvent(t, conn)

	send(t, conn, models.CommandSubscribe, models.StreamCampaigns)
	send(t, conn, models.CommandSubscribe, models.StreamAnalytics)
	require.Eventually(t, func() bool {
		return len(f.registry.Streams(f.registry.Connections()[0])) == 2
	}, readTimeout, 10*time.Millisecond)

	require.True(t, sched.CampaignTick())

	ev := readEvent(t, conn)
	assert.Equal(t, models.EventCampaignsUpdate, ev.Event)
	var delta models.MCampaignDelta
	require.NoError(t, json.Unmarshal(ev.Data, &delta))
	assert.Equal(t, mockdata.DemoCampaignID, delta.CampaignID)

	assert.Equal(t, models.EventAnalyticsUpdate, readEvent(t, conn).Event)
}

func TestDisconnectReleasesConnection(t *testing.T) {
	f := newFixture(t, testConfig())
	sched := newTestScheduler(f)
	conn := dial(t, startWS(t, f))
	readEvent(t, conn)

	send(t, conn, models.CommandSubscribe, models.StreamMetrics)
	require.Eventually(t, func() bool {
		return len(f.registry.Subscribers(models.StreamMetrics)) == 1
	}, readTimeout, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return f.server.Hub.ConnectionCount() == 0
	}, readTimeout, 10*time.Millisecond)
	assert.Empty(t, f.registry.Subscribers(models.StreamMetrics))

	before := f.metrics.Snapshot()
	assert.False(t, sched.MetricsTick())
	assert.Equal(t, before, f.metrics.Snapshot())
}

func TestMalformedCommandClosesConnection(t *testing.T) {
	f := newFixture(t, testConfig())
	conn := dial(t, startWS(t, f))
	readEvent(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	require.Eventually(t, func() bool {
		return f.server.Hub.ConnectionCount() == 0
	}, readTimeout, 10*time.Millisecond)
}

func TestSubscribeToUnknownStreamIsHarmless(t *testing.T) {
	f := newFixture(t, testConfig())
	sched := newTestScheduler(f)
	conn := dial(t, startWS(t, f))
	readEvent(t, conn)

	send(t, conn, models.CommandSubscribe, "weather")
	send(t, conn, "reboot", models.StreamMetrics)
	require.Eventually(t, func() bool {
		return len(f.registry.Subscribers("weather")) == 1
	}, readTimeout, 10*time.Millisecond)

	require.True(t, sched.MetricsTick())
	assert.Equal(t, models.EventLiveUpdate, readEvent(t, conn).Event)
}
