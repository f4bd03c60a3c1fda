package scheduler

import (
	"context"
	"time"

	"campaign-pulse/src/interfaces"
	"campaign-pulse/src/livemetrics"
	"campaign-pulse/src/logger"
	"campaign-pulse/src/mockdata"
	"campaign-pulse/src/models"
	"campaign-pulse/src/telemetry"
	"campaign-pulse/src/utils"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Timer names (telemetry labels)
// -----------------------------------------------------------------------------

const (
	TimerMetrics   = "metrics"
	TimerCampaigns = "campaigns"
	TimerAlerts    = "alerts"
)

// maxAlertsPerTick bounds the synthetic alert batch; a tick emits 0..maxAlertsPerTick.
const maxAlertsPerTick = 2

// AlertHistorySize is how many emitted alerts are kept for the REST layer.
const AlertHistorySize = 50

// -----------------------------------------------------------------------------
// Intervals
// -----------------------------------------------------------------------------

type Intervals struct {
	Metrics   time.Duration
	Campaigns time.Duration
	Alerts    time.Duration
}

// IntervalsFromConfig converts the configured seconds into durations.
func IntervalsFromConfig(cfg models.MRealTimeConfig) Intervals {
	return Intervals{
		Metrics:   time.Duration(cfg.MetricsIntervalSeconds) * time.Second,
		Campaigns: time.Duration(cfg.CampaignIntervalSeconds) * time.Second,
		Alerts:    time.Duration(cfg.AlertIntervalSeconds) * time.Second,
	}
}

// -----------------------------------------------------------------------------
// BroadcastScheduler
// -----------------------------------------------------------------------------

// BroadcastScheduler drives the live feed. It is Idle while the gateway has no
// connections (every timer is a no-op, the snapshot is left untouched) and
// Active otherwise.
type BroadcastScheduler struct {
	Source    interfaces.IMetricSource
	Gateway   interfaces.IStreamGateway
	Logger    *logger.Logger
	Telemetry *telemetry.Metrics
	History   *utils.RingBuffer[models.MAlert]

	intervals Intervals
	rng       livemetrics.RandomSource
	alerts    []models.MAlertTemplate
	now       func() time.Time
}

// -----------------------------------------------------------------------------

func NewBroadcastScheduler(
	source interfaces.IMetricSource,
	gateway interfaces.IStreamGateway,
	rng livemetrics.RandomSource,
	intervals Intervals,
	log *logger.Logger,
	tel *telemetry.Metrics,
) *BroadcastScheduler {
	return &BroadcastScheduler{
		Source:    source,
		Gateway:   gateway,
		Logger:    log,
		Telemetry: tel,
		History:   utils.NewRingBuffer[models.MAlert](AlertHistorySize),
		intervals: intervals,
		rng:       rng,
		alerts:    mockdata.AlertTemplates(),
		now:       time.Now,
	}
}

// -----------------------------------------------------------------------------

// Active reports whether at least one client is connected.
func (s *BroadcastScheduler) Active() bool {
	return s.Gateway.ConnectionCount() > 0
}

// -----------------------------------------------------------------------------
// Run
// -----------------------------------------------------------------------------

// Run fires the three timers until ctx is cancelled. All ticks are handled on
// this goroutine, each one to completion before the next.
func (s *BroadcastScheduler) Run(ctx context.Context) {
	metricsTicker := time.NewTicker(s.intervals.Metrics)
	campaignTicker := time.NewTicker(s.intervals.Campaigns)
	alertTicker := time.NewTicker(s.intervals.Alerts)
	defer func() {
		metricsTicker.Stop()
		campaignTicker.Stop()
		alertTicker.Stop()
	}()

	s.Logger.Info("Broadcast scheduler started (metrics=%v campaigns=%v alerts=%v)",
		s.intervals.Metrics, s.intervals.Campaigns, s.intervals.Alerts)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("Broadcast scheduler stopped")
			return
		case <-metricsTicker.C:
			s.MetricsTick()
		case <-campaignTicker.C:
			s.CampaignTick()
		case <-alertTicker.C:
			s.AlertTick()
		}
	}
}

// -----------------------------------------------------------------------------
// Ticks
// -----------------------------------------------------------------------------

// MetricsTick mutates the snapshot and pushes it: the full snapshot to "metrics"
// subscribers, the reduced live update to everybody. Returns false when idle.
func (s *BroadcastScheduler) MetricsTick() bool {
	active := s.Active()
	s.Telemetry.IncTick(TimerMetrics, active)
	if !active {
		return false
	}

	// The mutation completes before any push, so every recipient sees the same snapshot
	snapshot := s.Source.Tick()
	s.Telemetry.IncMutation()

	s.Gateway.PushToStream(models.StreamMetrics, models.EventMetricsUpdate, snapshot)
	s.Gateway.PushToAll(models.EventLiveUpdate, models.MLiveUpdate{
		ActiveUsers: snapshot.ActiveUsers,
		Revenue:     snapshot.TotalRevenue,
		Conversions: snapshot.Conversions,
		Timestamp:   snapshot.LastUpdated,
	})

	s.Logger.Debug("Metrics tick: users=%d revenue=%.2f", snapshot.ActiveUsers, snapshot.TotalRevenue)
	return true
}

// -----------------------------------------------------------------------------

// CampaignTick pushes a synthetic performance delta for the demo campaign to
// "campaigns" subscribers and a jittered traffic breakdown to "analytics" subscribers.
func (s *BroadcastScheduler) CampaignTick() bool {
	active := s.Active()
	s.Telemetry.IncTick(TimerCampaigns, active)
	if !active {
		return false
	}

	delta := models.MCampaignDelta{
		CampaignID:  mockdata.DemoCampaignID,
		Impressions: 100 + s.rng.IntN(900),
		Clicks:      5 + s.rng.IntN(45),
		Conversions: s.rng.IntN(6),
		Timestamp:   s.now(),
	}
	s.Gateway.PushToStream(models.StreamCampaigns, models.EventCampaignsUpdate, delta)
	s.Gateway.PushToStream(models.StreamAnalytics, models.EventAnalyticsUpdate, s.jitterTraffic())
	return true
}

// jitterTraffic perturbs visitor counts by up to ±20 and recomputes the shares.
func (s *BroadcastScheduler) jitterTraffic() []models.MTrafficSource {
	sources := mockdata.TrafficSources()

	total := 0
	for i := range sources {
		sources[i].Visitors += s.rng.IntN(41) - 20
		total += sources[i].Visitors
	}
	for i := range sources {
		sources[i].Share = float64(sources[i].Visitors) / float64(total) * 100
	}
	return sources
}

// -----------------------------------------------------------------------------

// AlertTick pushes 0 to 2 alerts drawn from the template catalog to every connection.
func (s *BroadcastScheduler) AlertTick() bool {
	active := s.Active()
	s.Telemetry.IncTick(TimerAlerts, active)
	if !active {
		return false
	}

	count := s.rng.IntN(maxAlertsPerTick + 1)
	if count == 0 {
		return true
	}

	alerts := make([]models.MAlert, 0, count)
	for i := 0; i < count; i++ {
		tpl := s.alerts[s.rng.IntN(len(s.alerts))]
		alerts = append(alerts, models.MAlert{
			ID:        uuid.New().String(),
			Type:      tpl.Type,
			Severity:  tpl.Severity,
			Message:   tpl.Message,
			Timestamp: s.now(),
		})
	}

	s.History.Append(alerts...)
	s.Gateway.PushToAll(models.EventAlertsUpdate, alerts)
	return true
}
