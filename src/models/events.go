package models

import "time"

// -----------------------------------------------------------------------------
// Stream names
// -----------------------------------------------------------------------------

const (
	StreamMetrics   = "metrics"
	StreamCampaigns = "campaigns"
	StreamAnalytics = "analytics"
)

// -----------------------------------------------------------------------------
// Outbound event names
// -----------------------------------------------------------------------------

const (
	EventInitialSnapshot = "initial-snapshot"
	EventMetricsUpdate   = "metrics-update"
	EventLiveUpdate      = "live-update"
	EventCampaignsUpdate = "campaigns-update"
	EventAnalyticsUpdate = "analytics-update"
	EventAlertsUpdate    = "alerts-update"
)

// -----------------------------------------------------------------------------
// Inbound command names
// -----------------------------------------------------------------------------

const (
	CommandSubscribe   = "subscribe"
	CommandUnsubscribe = "unsubscribe"
)

// -----------------------------------------------------------------------------
// MEvent is the envelope written to websocket clients
// -----------------------------------------------------------------------------

type MEvent struct {
	Event     string      `json:"event"`
	Stream    string      `json:"stream,omitempty"` // empty for broadcast events
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// NewEvent stamps an envelope with the current time.
func NewEvent(stream, event string, data interface{}) *MEvent {
	return &MEvent{
		Event:     event,
		Stream:    stream,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// -----------------------------------------------------------------------------
// MClientCommand for client messages
// -----------------------------------------------------------------------------

type MClientCommand struct {
	Command string `json:"command"`
	Stream  string `json:"stream"`
}

// -----------------------------------------------------------------------------
// MSubscription is the token returned when a connection subscribes to a stream
// -----------------------------------------------------------------------------

type MSubscription struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connectionId"`
	Stream       string    `json:"stream"`
	CreatedAt    time.Time `json:"createdAt"`
}
