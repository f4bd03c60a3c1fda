package models

// MSeriesPoint is one point of a static historical series.
type MSeriesPoint struct {
	Label string  `json:"label"` // month or day label
	Value float64 `json:"value"`
}

type MTrafficSource struct {
	Source   string  `json:"source"`
	Visitors int     `json:"visitors"`
	Share    float64 `json:"share"` // percent
}

type MDeviceShare struct {
	Device string  `json:"device"`
	Share  float64 `json:"share"`
}

type MTopPage struct {
	Path     string  `json:"path"`
	Views    int     `json:"views"`
	AvgTimeS float64 `json:"avgTimeSeconds"`
}

type MGeoShare struct {
	Country string `json:"country"`
	Users   int    `json:"users"`
}

// MAnalytics bundles the reference tables served by the analytics page.
type MAnalytics struct {
	TrafficSources []MTrafficSource `json:"trafficSources"`
	Devices        []MDeviceShare   `json:"devices"`
	TopPages       []MTopPage       `json:"topPages"`
	Geography      []MGeoShare      `json:"geography"`
}
