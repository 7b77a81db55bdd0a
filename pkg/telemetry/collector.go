package telemetry

import (
	"sync"

	"github.com/gonewx/combatfx/pkg/game"
	"github.com/gonewx/combatfx/pkg/systems"
)

// FrameStats is one row of frames.csv.
type FrameStats struct {
	Tick        uint64  `csv:"tick"`
	ClockMs     float64 `csv:"clock_ms"`
	Triggers    int     `csv:"triggers"`
	Unknown     int     `csv:"unknown_effects"`
	Spawned     int     `csv:"spawned"`
	BurstsFired int     `csv:"bursts_fired"`
	Culled      int     `csv:"culled"`
	Live        int     `csv:"live"`
	Pending     int     `csv:"pending"`
	Drawn       int     `csv:"drawn"`
	Skipped     int     `csv:"skipped"`
	Missing     int     `csv:"missing_glyphs"`
}

// Collector accumulates engine events into per-frame rows. It implements
// game.Observer and is safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	// Counters for the frame in progress
	triggers int
	unknown  int
	missing  int

	frames  []FrameStats
	flushed int

	// Totals across the whole run
	totalTriggers map[string]int
	missingKeys   map[string]int
}

var _ game.Observer = (*Collector)(nil)

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		totalTriggers: make(map[string]int),
		missingKeys:   make(map[string]int),
	}
}

// EffectTriggered counts a successful trigger.
func (c *Collector) EffectTriggered(name string, _, _ float64, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggers++
	c.totalTriggers[name]++
}

// UnknownEffect counts a trigger of an unregistered name.
func (c *Collector) UnknownEffect(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unknown++
}

// MissingGlyph counts a glyph particle skipped for a missing atlas key.
func (c *Collector) MissingGlyph(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.missing++
	c.missingKeys[key]++
}

// Ticked closes the event window and starts a new frame row.
func (c *Collector) Ticked(s game.TickStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames = append(c.frames, FrameStats{
		Tick:        s.Tick,
		ClockMs:     float64(s.Clock.Microseconds()) / 1000,
		Triggers:    c.triggers,
		Unknown:     c.unknown,
		Spawned:     s.Spawned,
		BurstsFired: s.BurstsFired,
		Culled:      s.Culled,
		Live:        s.Live,
		Pending:     s.Pending,
	})
	c.triggers = 0
	c.unknown = 0
}

// Rendered fills the draw counts of the latest frame row. A render before
// the first tick is ignored.
func (c *Collector) Rendered(s systems.RenderStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.frames)
	if n == 0 {
		c.missing = 0
		return
	}
	f := &c.frames[n-1]
	f.Drawn += s.Drawn
	f.Skipped += s.Skipped
	f.Missing += c.missing
	c.missing = 0
}

// Frames returns a copy of every frame row collected so far.
func (c *Collector) Frames() []FrameStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]FrameStats, len(c.frames))
	copy(out, c.frames)
	return out
}

// Flush returns the rows added since the previous Flush, keeping the most
// recent one back because its render counts may still change.
func (c *Collector) Flush() []FrameStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	end := len(c.frames) - 1
	if end <= c.flushed {
		return nil
	}
	out := make([]FrameStats, end-c.flushed)
	copy(out, c.frames[c.flushed:end])
	c.flushed = end
	return out
}

// FlushAll returns every row not yet flushed, including the latest.
func (c *Collector) FlushAll() []FrameStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.frames) <= c.flushed {
		return nil
	}
	out := make([]FrameStats, len(c.frames)-c.flushed)
	copy(out, c.frames[c.flushed:])
	c.flushed = len(c.frames)
	return out
}

// TriggerCounts returns how many times each effect name was triggered.
func (c *Collector) TriggerCounts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.totalTriggers))
	for k, v := range c.totalTriggers {
		out[k] = v
	}
	return out
}

// MissingGlyphs returns how many draws each missing glyph key caused.
func (c *Collector) MissingGlyphs() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.missingKeys))
	for k, v := range c.missingKeys {
		out[k] = v
	}
	return out
}
