package game

import (
	"time"

	"github.com/gonewx/combatfx/pkg/systems"
)

// TickStats describes one simulation tick.
type TickStats struct {
	Tick        uint64
	Clock       time.Duration // scheduler clock after the tick
	BurstsFired int           // scheduled creations that ran
	Spawned     int           // particles created since the previous tick
	Culled      int
	Live        int
	Pending     int // burst tasks still waiting
}

// Observer receives the engine's diagnostic events. It is called after the
// manager has released its lock, so it may call back into the manager.
type Observer interface {
	EffectTriggered(name string, x, y float64, immediate int)
	UnknownEffect(name string)
	MissingGlyph(key string)
	Ticked(stats TickStats)
	Rendered(stats systems.RenderStats)
}

// NopObserver ignores every event. Embed it to implement part of Observer.
type NopObserver struct{}

func (NopObserver) EffectTriggered(string, float64, float64, int) {}
func (NopObserver) UnknownEffect(string)                          {}
func (NopObserver) MissingGlyph(string)                           {}
func (NopObserver) Ticked(TickStats)                              {}
func (NopObserver) Rendered(systems.RenderStats)                  {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) EffectTriggered(name string, x, y float64, immediate int) {
	for _, o := range m {
		o.EffectTriggered(name, x, y, immediate)
	}
}

func (m MultiObserver) UnknownEffect(name string) {
	for _, o := range m {
		o.UnknownEffect(name)
	}
}

func (m MultiObserver) MissingGlyph(key string) {
	for _, o := range m {
		o.MissingGlyph(key)
	}
}

func (m MultiObserver) Ticked(stats TickStats) {
	for _, o := range m {
		o.Ticked(stats)
	}
}

func (m MultiObserver) Rendered(stats systems.RenderStats) {
	for _, o := range m {
		o.Rendered(stats)
	}
}
