package livemetrics

import "math"

// band is an inclusive [floor, ceiling] range a snapshot field is clamped to.
type band struct {
	floor   float64
	ceiling float64
}

var (
	revenueBand        = band{50000, 1000000}
	activeUsersBand    = band{1000, 10000}
	conversionsBand    = band{50, 5000}
	conversionRateBand = band{5, 25}
	growthRateBand     = band{-10, 30}
	avgOrderValueBand  = band{100, 1000}
	lifetimeValueBand  = band{500, 5000}
	bounceRateBand     = band{15, 65}
	pageViewsBand      = band{10000, 500000}
	visitorsBand       = band{5000, 100000}
)

func (b band) clamp(v float64) float64 {
	return math.Min(b.ceiling, math.Max(b.floor, v))
}

func (b band) clampInt(v int) int {
	return int(b.clamp(float64(v)))
}

func (b band) contains(v float64) bool {
	return v >= b.floor && v <= b.ceiling
}

// round2 keeps money and percentages at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
