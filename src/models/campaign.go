package models

import "time"

// MCampaign is one row of the campaign catalog.
type MCampaign struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Channel     string    `json:"channel"` // e.g. "email", "social", "search"
	Status      string    `json:"status"`  // "active", "paused", "completed"
	Budget      float64   `json:"budget"`
	Spent       float64   `json:"spent"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Revenue     float64   `json:"revenue"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// CTR returns the click-through rate in percent.
func (c MCampaign) CTR() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions) * 100
}

// ROI returns the return on spend in percent.
func (c MCampaign) ROI() float64 {
	if c.Spent == 0 {
		return 0
	}
	return (c.Revenue - c.Spent) / c.Spent * 100
}

// MCampaignDelta is the synthetic performance increment pushed on the campaigns stream.
type MCampaignDelta struct {
	CampaignID  int       `json:"campaignId"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Timestamp   time.Time `json:"timestamp"`
}
