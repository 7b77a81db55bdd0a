package main

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/combatfx/pkg/config"
)

func newTestTerm(t *testing.T, cols, rows int) (*Term, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	cfg := config.DefaultEngineConfig()
	cfg.Seed = 7
	term, err := NewTerm(screen, cfg)
	if err != nil {
		t.Fatalf("NewTerm: %v", err)
	}
	t.Cleanup(term.Close)
	return term, screen
}

func TestTermBoundsLeavesStatusLine(t *testing.T) {
	term, _ := newTestTerm(t, 40, 11)
	w, h, ok := term.Bounds()
	if !ok || w != 320 || h != 160 {
		t.Errorf("Bounds = %dx%d ok=%v, want 320x160", w, h, ok)
	}
}

func TestTermSelection(t *testing.T) {
	term, _ := newTestTerm(t, 40, 11)
	first := term.Current()
	if first == "" {
		t.Fatal("no effects registered")
	}

	term.Select(-1)
	if term.Current() == first {
		t.Error("Select(-1) should wrap to the last effect")
	}
	term.Select(1)
	if term.Current() != first {
		t.Errorf("Select(1) = %s, want %s", term.Current(), first)
	}

	if !term.SelectName("hit") || term.Current() != "hit" {
		t.Error("SelectName(hit) failed")
	}
	if term.SelectName("nope") {
		t.Error("SelectName of unknown effect should fail")
	}
}

func TestTermSpawnAndDraw(t *testing.T) {
	term, screen := newTestTerm(t, 40, 11)
	term.SelectName("hit")
	term.SpawnCenter()
	if term.manager.ParticleCount() != 30 {
		t.Fatalf("ParticleCount = %d, want 30", term.manager.ParticleCount())
	}

	term.Step()

	lit := 0
	for row := 0; row < 10; row++ {
		for col := 0; col < 40; col++ {
			if r, _, _, _ := screen.GetContent(col, row); r != ' ' {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no particle cells drawn")
	}

	// 状态栏以反色绘制
	_, _, style, _ := screen.GetContent(0, 10)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("status line should be reversed")
	}
}

func TestTermPauseStopsTicks(t *testing.T) {
	term, _ := newTestTerm(t, 40, 11)
	term.SelectName("hit")
	term.SpawnCenter()

	// 每帧寿命都会减少
	sumLife := func() float64 {
		total := 0.0
		for _, p := range term.manager.Particles() {
			total += p.Life
		}
		return total
	}

	term.paused = true
	before := sumLife()
	term.Step()
	if after := sumLife(); math.Abs(after-before) > 1e-6 {
		t.Errorf("paused Step aged particles: %v -> %v", before, after)
	}

	term.paused = false
	term.Step()
	if math.Abs(sumLife()-before) < 1e-6 {
		t.Error("unpaused Step should advance particles")
	}
}

func TestTermResizeEvent(t *testing.T) {
	term, screen := newTestTerm(t, 40, 11)
	screen.SetSize(20, 6)
	if !term.HandleEvent(tcell.NewEventResize(20, 6)) {
		t.Fatal("resize should not quit")
	}
	if w, h := term.manager.Surface().Size(); w != 160 || h != 80 {
		t.Errorf("surface = %dx%d after resize, want 160x80", w, h)
	}
}
