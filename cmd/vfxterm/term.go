package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/combatfx/pkg/config"
	"github.com/gonewx/combatfx/pkg/game"
	"github.com/gonewx/combatfx/pkg/surface/termsurface"
)

// statusRows 底部保留给状态栏的行数
const statusRows = 1

// Term drives an effect manager inside a tcell screen. It is both the
// manager's Driver and its Container.
type Term struct {
	screen  tcell.Screen
	manager *game.EffectManager
	tickFns []func()

	names  []string
	index  int
	paused bool
	status string
}

// NewTerm creates the effect manager for screen. The screen must already
// be initialized.
func NewTerm(screen tcell.Screen, cfg *config.EngineConfig) (*Term, error) {
	t := &Term{screen: screen}

	bg := cfg.BackgroundColor()
	manager, err := game.NewEffectManagerFromConfig(cfg,
		game.WithSurfaceFactory(termsurface.Factory(bg)),
	)
	if err != nil {
		return nil, err
	}
	t.manager = manager
	t.names = manager.Registry().Names()

	if !manager.Initialize(t) {
		return nil, fmt.Errorf("terminal too small")
	}
	manager.Attach(t)
	t.status = "←/→ select  space/click spawn  p pause  r clear  q quit"
	return t, nil
}

// OnTick implements game.Driver.
func (t *Term) OnTick(fn func()) {
	if fn != nil {
		t.tickFns = append(t.tickFns, fn)
	}
}

// Bounds implements game.Container in surface pixels, leaving the status
// line out.
func (t *Term) Bounds() (int, int, bool) {
	cols, rows := t.screen.Size()
	rows -= statusRows
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	w, h := termsurface.PixelSize(cols, rows)
	return w, h, true
}

// Current returns the selected effect name.
func (t *Term) Current() string {
	if len(t.names) == 0 {
		return ""
	}
	return t.names[t.index]
}

// Select moves the selection by delta, wrapping around.
func (t *Term) Select(delta int) {
	n := len(t.names)
	if n == 0 {
		return
	}
	t.index = ((t.index+delta)%n + n) % n
}

// SelectName selects name if it is registered.
func (t *Term) SelectName(name string) bool {
	for i, n := range t.names {
		if n == name {
			t.index = i
			return true
		}
	}
	return false
}

// SpawnAtCell triggers the selected effect at the center of a screen cell.
func (t *Term) SpawnAtCell(col, row int) {
	x := (float64(col) + 0.5) * termsurface.DefaultCellW
	y := (float64(row) + 0.5) * termsurface.DefaultCellH
	t.Spawn(x, y)
}

// Spawn triggers the selected effect at pixel (x, y).
func (t *Term) Spawn(x, y float64) {
	name := t.Current()
	if name == "" {
		return
	}
	t.manager.TriggerEffect(name, x, y)
	log.Printf("[Term] spawned %s at (%.0f, %.0f)", name, x, y)
}

// SpawnCenter triggers the selected effect at the surface center.
func (t *Term) SpawnCenter() {
	w, h, ok := t.Bounds()
	if !ok {
		return
	}
	t.Spawn(float64(w)/2, float64(h)/2)
}

// HandleEvent applies one tcell event. Returns false when the user quits.
func (t *Term) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.Select(-1)
		case tcell.KeyRight:
			t.Select(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				t.Select(-1)
			case 'l':
				t.Select(1)
			case ' ':
				t.SpawnCenter()
			case 'p':
				t.paused = !t.paused
			case 'r':
				t.manager.Clear()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			t.SpawnAtCell(col, row)
		}

	case *tcell.EventResize:
		t.manager.HandleContainerResize()
		t.screen.Sync()
	}
	return true
}

// Step advances one frame unless paused and redraws the screen.
func (t *Term) Step() {
	if !t.paused {
		for _, fn := range t.tickFns {
			fn()
		}
	}
	t.Draw()
}

// Draw flushes the surface and the status line to the screen.
func (t *Term) Draw() {
	if s, ok := t.manager.Surface().(*termsurface.Surface); ok {
		s.Flush(t.screen)
	}

	cols, rows := t.screen.Size()
	line := fmt.Sprintf(" %s  [%d/%d]  particles %d  pending %d  %s",
		t.Current(), t.index+1, len(t.names), t.manager.ParticleCount(), t.manager.PendingBursts(), t.status)
	if t.paused {
		line = " PAUSED" + line
	}
	style := tcell.StyleDefault.Reverse(true)
	row := rows - statusRows
	col := 0
	for _, r := range line {
		if col >= cols {
			break
		}
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		t.screen.SetContent(col, row, ' ', nil, style)
	}
	t.screen.Show()
}

// Close tears the manager down.
func (t *Term) Close() {
	t.manager.Teardown()
}
