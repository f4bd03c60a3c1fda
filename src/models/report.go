package models

import "time"

// MReport summarizes campaign performance over a reporting period.
type MReport struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	BusinessDays     int             `json:"businessDays"`
	TotalSpent       float64         `json:"totalSpent"`
	TotalRevenue     float64         `json:"totalRevenue"`
	TotalImpressions int             `json:"totalImpressions"`
	TotalClicks      int             `json:"totalClicks"`
	TotalConversions int             `json:"totalConversions"`
	AvgCTR           float64         `json:"avgCtr"`
	ROI              float64         `json:"roi"`
	Campaigns        []MCampaign     `json:"campaigns"`
	Snapshot         MMetricSnapshot `json:"snapshot"`
}
