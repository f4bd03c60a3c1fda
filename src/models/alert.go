package models

import "time"

// MAlertTemplate is one entry of the synthetic alert catalog.
type MAlertTemplate struct {
	Type     string
	Severity string // "info", "warning", "critical"
	Message  string
}

type MAlert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
