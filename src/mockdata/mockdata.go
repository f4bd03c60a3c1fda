// Package mockdata holds the static reference tables served by the dashboard.
// Every accessor returns a fresh copy so callers may mutate the result.
package mockdata

import (
	"time"

	"campaign-pulse/src/models"
)

// DemoCampaignID is the campaign that receives synthetic live performance deltas.
const DemoCampaignID = 1

// -----------------------------------------------------------------------------

// InitialSnapshot is the metric state at process start.
func InitialSnapshot() models.MMetricSnapshot {
	return models.MMetricSnapshot{
		TotalRevenue:          125430.50,
		ActiveUsers:           2350,
		Conversions:           342,
		ConversionRate:        12.5,
		GrowthRate:            8.2,
		AvgOrderValue:         366.75,
		CustomerLifetimeValue: 1250.00,
		BounceRate:            32.4,
		PageViews:             45230,
		UniqueVisitors:        12840,
		LastUpdated:           time.Now(),
	}
}

// -----------------------------------------------------------------------------

// RevenueHistory is monthly revenue for the trailing year.
func RevenueHistory() []models.MSeriesPoint {
	return []models.MSeriesPoint{
		{Label: "Jan", Value: 65000},
		{Label: "Feb", Value: 59000},
		{Label: "Mar", Value: 80000},
		{Label: "Apr", Value: 81000},
		{Label: "May", Value: 96000},
		{Label: "Jun", Value: 105000},
		{Label: "Jul", Value: 112000},
		{Label: "Aug", Value: 108000},
		{Label: "Sep", Value: 118000},
		{Label: "Oct", Value: 121000},
		{Label: "Nov", Value: 119500},
		{Label: "Dec", Value: 125430},
	}
}

// UserGrowth is monthly active users for the trailing year.
func UserGrowth() []models.MSeriesPoint {
	return []models.MSeriesPoint{
		{Label: "Jan", Value: 1200},
		{Label: "Feb", Value: 1350},
		{Label: "Mar", Value: 1500},
		{Label: "Apr", Value: 1620},
		{Label: "May", Value: 1780},
		{Label: "Jun", Value: 1850},
		{Label: "Jul", Value: 1930},
		{Label: "Aug", Value: 2010},
		{Label: "Sep", Value: 2120},
		{Label: "Oct", Value: 2200},
		{Label: "Nov", Value: 2280},
		{Label: "Dec", Value: 2350},
	}
}

// -----------------------------------------------------------------------------

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Campaigns is the campaign catalog.
func Campaigns() []models.MCampaign {
	return []models.MCampaign{
		{ID: DemoCampaignID, Name: "Summer Sale 2024", Channel: "email", Status: "active", Budget: 15000, Spent: 8750, Impressions: 125000, Clicks: 4200, Conversions: 340, Revenue: 42500, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.August, 31)},
		{ID: 2, Name: "Brand Awareness Q3", Channel: "social", Status: "active", Budget: 25000, Spent: 18200, Impressions: 450000, Clicks: 9800, Conversions: 210, Revenue: 31500, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.September, 30)},
		{ID: 3, Name: "Product Launch - Pro Plan", Channel: "search", Status: "active", Budget: 30000, Spent: 12400, Impressions: 98000, Clicks: 6100, Conversions: 520, Revenue: 78000, StartDate: date(2024, time.August, 15), EndDate: date(2024, time.October, 15)},
		{ID: 4, Name: "Retargeting - Cart Abandoners", Channel: "display", Status: "paused", Budget: 8000, Spent: 5600, Impressions: 67000, Clicks: 2300, Conversions: 185, Revenue: 22200, StartDate: date(2024, time.May, 1), EndDate: date(2024, time.December, 31)},
		{ID: 5, Name: "Holiday Preview", Channel: "email", Status: "completed", Budget: 12000, Spent: 12000, Impressions: 156000, Clicks: 5400, Conversions: 410, Revenue: 51250, StartDate: date(2023, time.November, 1), EndDate: date(2023, time.December, 31)},
		{ID: 6, Name: "Influencer Collab", Channel: "social", Status: "completed", Budget: 20000, Spent: 19400, Impressions: 380000, Clicks: 7600, Conversions: 265, Revenue: 29800, StartDate: date(2024, time.March, 1), EndDate: date(2024, time.April, 30)},
	}
}

// CampaignByID returns the catalog entry with the given id.
func CampaignByID(id int) (models.MCampaign, bool) {
	for _, c := range Campaigns() {
		if c.ID == id {
			return c, true
		}
	}
	return models.MCampaign{}, false
}

// -----------------------------------------------------------------------------

// Analytics is the analytics page payload.
func Analytics() models.MAnalytics {
	return models.MAnalytics{
		TrafficSources: TrafficSources(),
		Devices: []models.MDeviceShare{
			{Device: "desktop", Share: 52.3},
			{Device: "mobile", Share: 39.8},
			{Device: "tablet", Share: 7.9},
		},
		TopPages: []models.MTopPage{
			{Path: "/", Views: 18420, AvgTimeS: 42.5},
			{Path: "/pricing", Views: 9340, AvgTimeS: 95.2},
			{Path: "/features", Views: 7810, AvgTimeS: 71.8},
			{Path: "/blog/marketing-trends", Views: 5230, AvgTimeS: 184.3},
			{Path: "/signup", Views: 4430, AvgTimeS: 63.1},
		},
		Geography: []models.MGeoShare{
			{Country: "United States", Users: 5230},
			{Country: "United Kingdom", Users: 1840},
			{Country: "Germany", Users: 1420},
			{Country: "Canada", Users: 1180},
			{Country: "France", Users: 960},
			{Country: "Australia", Users: 790},
		},
	}
}

// TrafficSources is the acquisition channel breakdown.
func TrafficSources() []models.MTrafficSource {
	return []models.MTrafficSource{
		{Source: "organic", Visitors: 5420, Share: 42.2},
		{Source: "direct", Visitors: 3210, Share: 25.0},
		{Source: "social", Visitors: 2180, Share: 17.0},
		{Source: "referral", Visitors: 1240, Share: 9.7},
		{Source: "email", Visitors: 790, Share: 6.1},
	}
}

// -----------------------------------------------------------------------------

// AlertTemplates is the fixed catalog synthetic alerts are drawn from.
func AlertTemplates() []models.MAlertTemplate {
	return []models.MAlertTemplate{
		{Type: "traffic_spike", Severity: "info", Message: "Traffic is up 23% compared to the same hour yesterday"},
		{Type: "conversion_drop", Severity: "warning", Message: "Conversion rate dropped below 10% on mobile checkout"},
		{Type: "budget_threshold", Severity: "warning", Message: "Campaign \"Brand Awareness Q3\" has spent 75% of its budget"},
		{Type: "goal_reached", Severity: "info", Message: "Monthly revenue goal reached 4 days early"},
		{Type: "bounce_rate", Severity: "warning", Message: "Bounce rate on /pricing increased by 12%"},
		{Type: "campaign_ended", Severity: "info", Message: "Campaign \"Holiday Preview\" has completed"},
		{Type: "api_latency", Severity: "critical", Message: "Checkout API latency exceeded 2s for 5 minutes"},
	}
}
