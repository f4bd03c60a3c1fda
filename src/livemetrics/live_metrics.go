package livemetrics

import (
	"sync"
	"time"

	"campaign-pulse/src/models"
)

// -----------------------------------------------------------------------------
// Mutator constants
// -----------------------------------------------------------------------------

const (
	// TrendPeriod is the number of ticks between trend re-rolls.
	TrendPeriod = 50

	// naturalVariation scales money deltas by a factor in [1-v, 1+v].
	naturalVariation = 0.10
)

// Probability that a re-rolled trend sign comes up +1.
const (
	revenueUpBias     = 0.70
	usersUpBias       = 0.65
	conversionsUpBias = 0.50
	growthUpBias      = 0.60
)

// -----------------------------------------------------------------------------
// LiveMetrics
// -----------------------------------------------------------------------------

// LiveMetrics owns the single mutable metric snapshot and its trend state.
// Tick and the read accessors are safe for concurrent use; every mutation is
// serialized so readers never observe a partially updated snapshot.
type LiveMetrics struct {
	mu       sync.RWMutex
	snapshot models.MMetricSnapshot
	trend    models.MTrendDirection
	ticks    uint64
	rng      RandomSource
	now      func() time.Time
}

// -----------------------------------------------------------------------------

// NewLiveMetrics starts from the given snapshot with every trend pointing up.
func NewLiveMetrics(initial models.MMetricSnapshot, rng RandomSource) *LiveMetrics {
	return &LiveMetrics{
		snapshot: initial,
		trend: models.MTrendDirection{
			Revenue:     1,
			Users:       1,
			Conversions: 1,
			Growth:      1,
		},
		rng: rng,
		now: time.Now,
	}
}

// -----------------------------------------------------------------------------

// Snapshot returns a copy of the current metrics.
func (lm *LiveMetrics) Snapshot() models.MMetricSnapshot {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.snapshot
}

// Trend returns the current trend directions.
func (lm *LiveMetrics) Trend() models.MTrendDirection {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.trend
}

// Ticks returns how many mutations have been applied.
func (lm *LiveMetrics) Ticks() uint64 {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.ticks
}

// -----------------------------------------------------------------------------

// Tick nudges every field by a small trend-signed random delta, clamps it to its
// band, stamps LastUpdated and returns the new snapshot. It never fails.
func (lm *LiveMetrics) Tick() models.MMetricSnapshot {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.ticks++
	if lm.ticks%TrendPeriod == 0 {
		lm.rerollTrend()
	}

	s := lm.snapshot
	t := lm.trend

	// Money fields carry the natural variation factor
	revenueDelta := (50 + lm.rng.Float64()*450) * float64(t.Revenue) * lm.variation()
	s.TotalRevenue = round2(revenueBand.clamp(s.TotalRevenue + revenueDelta))

	aovDelta := (lm.rng.Float64()*2 - 1) * 5 * lm.variation()
	s.AvgOrderValue = round2(avgOrderValueBand.clamp(s.AvgOrderValue + aovDelta))

	clvDelta := (lm.rng.Float64()*2 - 1) * 10 * lm.variation()
	s.CustomerLifetimeValue = round2(lifetimeValueBand.clamp(s.CustomerLifetimeValue + clvDelta))

	// Traffic follows the users trend
	s.ActiveUsers = activeUsersBand.clampInt(s.ActiveUsers + (1+lm.rng.IntN(15))*t.Users)
	s.PageViews = pageViewsBand.clampInt(s.PageViews + (5+lm.rng.IntN(40))*t.Users)
	s.UniqueVisitors = visitorsBand.clampInt(s.UniqueVisitors + (1+lm.rng.IntN(10))*t.Users)
	s.BounceRate = round2(bounceRateBand.clamp(s.BounceRate - lm.rng.Float64()*0.4*float64(t.Users)))

	// Conversions
	s.Conversions = conversionsBand.clampInt(s.Conversions + lm.rng.IntN(4)*t.Conversions)
	s.ConversionRate = round2(conversionRateBand.clamp(s.ConversionRate + lm.rng.Float64()*0.3*float64(t.Conversions)))

	s.GrowthRate = round2(growthRateBand.clamp(s.GrowthRate + lm.rng.Float64()*0.5*float64(t.Growth)))

	s.LastUpdated = lm.now()
	lm.snapshot = s
	return s
}

// -----------------------------------------------------------------------------

func (lm *LiveMetrics) rerollTrend() {
	lm.trend = models.MTrendDirection{
		Revenue:     lm.coin(revenueUpBias),
		Users:       lm.coin(usersUpBias),
		Conversions: lm.coin(conversionsUpBias),
		Growth:      lm.coin(growthUpBias),
	}
}

func (lm *LiveMetrics) coin(upBias float64) int {
	if lm.rng.Float64() < upBias {
		return 1
	}
	return -1
}

func (lm *LiveMetrics) variation() float64 {
	return 1 + (lm.rng.Float64()*2-1)*naturalVariation
}
