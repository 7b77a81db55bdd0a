package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run of frame rows.
type Summary struct {
	Frames int `csv:"frames" yaml:"frames"`

	LiveMean   float64 `csv:"live_mean" yaml:"liveMean"`
	LiveStdDev float64 `csv:"live_stddev" yaml:"liveStdDev"`
	LiveMax    float64 `csv:"live_max" yaml:"liveMax"`
	LiveP95    float64 `csv:"live_p95" yaml:"liveP95"`

	TotalTriggers int `csv:"triggers" yaml:"triggers"`
	TotalUnknown  int `csv:"unknown_effects" yaml:"unknownEffects"`
	TotalSpawned  int `csv:"spawned" yaml:"spawned"`
	TotalCulled   int `csv:"culled" yaml:"culled"`
	TotalMissing  int `csv:"missing_glyphs" yaml:"missingGlyphs"`
	PeakPending   int `csv:"peak_pending" yaml:"peakPending"`
}

// Summarize computes live-particle statistics and event totals.
// Returns a zero Summary for an empty run.
func Summarize(frames []FrameStats) Summary {
	var s Summary
	s.Frames = len(frames)
	if len(frames) == 0 {
		return s
	}

	live := make([]float64, len(frames))
	for i, f := range frames {
		live[i] = float64(f.Live)
		s.TotalTriggers += f.Triggers
		s.TotalUnknown += f.Unknown
		s.TotalSpawned += f.Spawned
		s.TotalCulled += f.Culled
		s.TotalMissing += f.Missing
		if f.Pending > s.PeakPending {
			s.PeakPending = f.Pending
		}
	}

	s.LiveMean = stat.Mean(live, nil)
	s.LiveMax = floats.Max(live)
	if len(live) > 1 {
		s.LiveStdDev = stat.StdDev(live, nil)
	}

	// Quantile needs sorted input
	sort.Float64s(live)
	s.LiveP95 = stat.Quantile(0.95, stat.Empirical, live, nil)

	if math.IsNaN(s.LiveStdDev) {
		s.LiveStdDev = 0
	}
	return s
}
