package models

import "time"

// MMetricSnapshot is the live set of business metrics pushed to dashboards.
type MMetricSnapshot struct {
	TotalRevenue          float64   `json:"totalRevenue"`
	ActiveUsers           int       `json:"activeUsers"`
	Conversions           int       `json:"conversions"`
	ConversionRate        float64   `json:"conversionRate"`
	GrowthRate            float64   `json:"growthRate"`
	AvgOrderValue         float64   `json:"avgOrderValue"`
	CustomerLifetimeValue float64   `json:"customerLifetimeValue"`
	BounceRate            float64   `json:"bounceRate"`
	PageViews             int       `json:"pageViews"`
	UniqueVisitors        int       `json:"uniqueVisitors"`
	LastUpdated           time.Time `json:"lastUpdated"`
}

// MTrendDirection holds the sign (+1 or -1) applied to the next batch of deltas.
type MTrendDirection struct {
	Revenue     int `json:"revenue"`
	Users       int `json:"users"`
	Conversions int `json:"conversions"`
	Growth      int `json:"growth"`
}

// MLiveUpdate is the reduced field set broadcast to every connection.
type MLiveUpdate struct {
	ActiveUsers int       `json:"activeUsers"`
	Revenue     float64   `json:"revenue"`
	Conversions int       `json:"conversions"`
	Timestamp   time.Time `json:"timestamp"`
}
