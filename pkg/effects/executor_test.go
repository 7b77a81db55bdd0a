package effects

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gonewx/combatfx/internal/particle"
	"github.com/gonewx/combatfx/pkg/components"
)

type spawned struct {
	x, y   float64
	params components.ParticleParams
	at     time.Duration
}

// testEmitter 记录所有创建的粒子，使用虚拟时钟驱动调度
type testEmitter struct {
	sched *Scheduler
	rng   *rand.Rand
	out   []spawned
}

func newTestEmitter(seed uint64) *testEmitter {
	return &testEmitter{
		sched: NewScheduler(),
		rng:   rand.New(rand.NewPCG(seed, seed)),
	}
}

func (e *testEmitter) AddParticle(x, y float64, p components.ParticleParams) {
	e.out = append(e.out, spawned{x: x, y: y, params: p, at: e.sched.Now()})
}

func (e *testEmitter) ScheduleSeries(n int, interval time.Duration, fn func(i int)) *Series {
	return e.sched.ScheduleSeries(n, interval, fn)
}

func (e *testEmitter) Rand() *rand.Rand { return e.rng }

func (e *testEmitter) run(d time.Duration) {
	const frame = time.Second / 60
	for elapsed := time.Duration(0); elapsed <= d; elapsed += frame {
		e.sched.Advance(frame)
	}
}

func TestHitRecipe_ThirtyDiscsAlternating(t *testing.T) {
	r := NewDefaultRegistry()
	e := newTestEmitter(1)

	if !r.Trigger(e, EffectHit, 100, 100) {
		t.Fatal("hit should be registered")
	}
	if len(e.out) != 30 {
		t.Fatalf("hit created %d particles immediately, want 30", len(e.out))
	}

	red := color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	amber := color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}
	for i, s := range e.out {
		if s.params.Shape != components.ShapeDisc {
			t.Errorf("particle %d shape = %v, want disc", i, s.params.Shape)
		}
		if s.params.Size < 2 || s.params.Size > 5 {
			t.Errorf("particle %d size = %v, want within [2, 5]", i, s.params.Size)
		}
		want := red
		if i%2 == 1 {
			want = amber
		}
		if s.params.Color != want {
			t.Errorf("particle %d color = %v, want %v", i, s.params.Color, want)
		}
		if s.x != 100 || s.y != 100 {
			t.Errorf("particle %d at (%v, %v), want origin", i, s.x, s.y)
		}
	}
	if e.sched.Pending() != 0 {
		t.Errorf("hit should not schedule bursts, pending %d", e.sched.Pending())
	}
}

// TestExecutor_SamplesWithinBounds 所有内置模板的采样值必须落在声明范围内
func TestExecutor_SamplesWithinBounds(t *testing.T) {
	const eps = 1e-9
	rng := rand.New(rand.NewPCG(7, 11))

	for _, tmpl := range DefaultTemplates() {
		t.Run(tmpl.Name, func(t *testing.T) {
			x, err := NewExecutor(tmpl)
			if err != nil {
				t.Fatalf("NewExecutor: %v", err)
			}
			tp := x.Template()

			for i := 0; i < 200; i++ {
				p := x.Sample(rng, i, tp.Angle.Sample(rng))

				speed := math.Hypot(p.VX, p.VY)
				if speed < tp.Speed.Min-eps || speed > tp.Speed.Max+eps {
					t.Fatalf("speed %v outside %v", speed, tp.Speed)
				}
				checks := []struct {
					name string
					v    float64
					r    Range
				}{
					{"size", p.Size, tp.Size},
					{"life", p.MaxLife, tp.Life},
					{"gravity", p.Gravity, tp.Gravity},
					{"decay", p.Decay, tp.Decay},
					{"rotationSpeed", p.RotationSpeed, tp.RotationSpeed},
				}
				for _, c := range checks {
					if !c.r.Contains(c.v) {
						t.Fatalf("%s %v outside %v", c.name, c.v, c.r)
					}
				}

				if !inPalette(p.Color, tp.Palette) {
					t.Fatalf("color %v not in palette", p.Color)
				}
				if p.Shape == components.ShapeGlyph && !contains(tp.Glyphs, p.Glyph) {
					t.Fatalf("glyph %q not in glyph set %v", p.Glyph, tp.Glyphs)
				}
				if p.Decay <= 0 {
					t.Fatalf("decay must be positive, got %v", p.Decay)
				}
			}
		})
	}
}

func inPalette(c color.NRGBA, pal []color.NRGBA) bool {
	for _, p := range pal {
		if p == c {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestProjectile_StaggeredOrder(t *testing.T) {
	r := NewDefaultRegistry()
	e := newTestEmitter(3)

	r.Trigger(e, EffectProjectile, 300, 200)
	if len(e.out) != 0 {
		t.Fatalf("staggered line should not create particles before the first tick, got %d", len(e.out))
	}

	prev := 0
	for step := 0; step < 20; step++ {
		e.sched.Advance(time.Second / 60)
		if len(e.out) < prev {
			t.Fatal("particle count decreased")
		}
		prev = len(e.out)
	}
	if len(e.out) != 10 {
		t.Fatalf("projectile created %d particles, want 10", len(e.out))
	}

	for i := 1; i < len(e.out); i++ {
		// 沿路径从 -200 到 0 依次生成
		if e.out[i].x <= e.out[i-1].x {
			t.Errorf("particle %d at x=%v not after particle %d at x=%v", i, e.out[i].x, i-1, e.out[i-1].x)
		}
		if e.out[i].at < e.out[i-1].at {
			t.Errorf("particle %d created before particle %d", i, i-1)
		}
		if e.out[i].at < time.Duration(i)*20*time.Millisecond {
			t.Errorf("particle %d created at %v, before its delay", i, e.out[i].at)
		}
	}
	if first, last := e.out[0].x, e.out[9].x; first != 100 || last != 300 {
		t.Errorf("line from %v to %v, want 100 to 300", first, last)
	}
}

func TestShadow_RadialWaves(t *testing.T) {
	r := NewDefaultRegistry()
	e := newTestEmitter(5)
	r.Trigger(e, EffectShadow, 0, 0)

	e.run(50 * time.Millisecond)
	if len(e.out) != 12 {
		t.Fatalf("after first wave got %d particles, want 12", len(e.out))
	}

	e.run(700 * time.Millisecond)
	if len(e.out) != 72 {
		t.Fatalf("shadow created %d particles, want 72", len(e.out))
	}

	// 后一波的半径大于前一波
	r0 := math.Hypot(e.out[0].x, e.out[0].y)
	r5 := math.Hypot(e.out[71].x, e.out[71].y)
	if r5 <= r0 {
		t.Errorf("wave radius should grow: first %v last %v", r0, r5)
	}
}

func TestDefaultCatalog_AllEffectsSpawn(t *testing.T) {
	r := NewDefaultRegistry()
	if r.Len() != 20 {
		t.Errorf("catalog has %d effects, want 20", r.Len())
	}

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			e := newTestEmitter(9)
			r.Trigger(e, name, 50, 50)
			e.run(2 * time.Second)
			if len(e.out) == 0 {
				t.Error("effect created no particles")
			}
			if e.sched.Pending() != 0 {
				t.Errorf("%d bursts still pending", e.sched.Pending())
			}
		})
	}
}

func TestDefaultCatalog_DeclaresRanges(t *testing.T) {
	for _, tmpl := range DefaultTemplates() {
		if tmpl.Life.Min <= 0 {
			t.Errorf("%s: life %v, want positive", tmpl.Name, tmpl.Life)
		}
		if tmpl.Decay.Min <= 0 {
			t.Errorf("%s: decay %v, want positive", tmpl.Name, tmpl.Decay)
		}
		radial := tmpl.Pattern == PatternInstantRadial || tmpl.Pattern == PatternStaggeredRadialWave
		if radial && tmpl.Angle.Max <= tmpl.Angle.Min {
			t.Errorf("%s: radial pattern with degenerate angle %v", tmpl.Name, tmpl.Angle)
		}
	}
}

func TestFromConfig(t *testing.T) {
	file, err := particle.ParseRecipeYAML([]byte(`
effects:
  - name: sparks
    pattern: instant-directional
    count: 12
    direction: 270
    spread: 30
    speed: "[2 4]"
    size: "3"
    palette: ["#ffffff", "#ffcc00"]
    paletteMode: random
    shape: triangle
    glowChance: 0.5
  - name: ripple
    pattern: staggered-radial-wave
    count: 8
    waves: 3
    intervalMs: 50
    waveRadius: "[10 12]"
    palette: ["#3366ff"]
`))
	if err != nil {
		t.Fatalf("ParseRecipeYAML: %v", err)
	}

	ts, err := TemplatesFromFile(file)
	if err != nil {
		t.Fatalf("TemplatesFromFile: %v", err)
	}
	sparks, ripple := ts[0], ts[1]

	if sparks.Pattern != PatternInstantDirectional || sparks.Speed != Between(2, 4) || sparks.Size != Fixed(3) {
		t.Errorf("unexpected sparks template: %+v", sparks)
	}
	if sparks.Shape != components.ShapeTriangle || sparks.PaletteMode != PaletteRandom {
		t.Errorf("sparks shape/palette mode = %v/%v", sparks.Shape, sparks.PaletteMode)
	}
	if sparks.Decay != Fixed(components.DefaultDecay) || sparks.Life != Fixed(1) {
		t.Errorf("defaults not applied: decay %v life %v", sparks.Decay, sparks.Life)
	}
	if ripple.Interval != 50*time.Millisecond || ripple.Waves != 3 || ripple.PaletteMode != PaletteAlternate {
		t.Errorf("unexpected ripple template: %+v", ripple)
	}
}

// TestFromConfig_ExplicitZeroRanges 显式写 0 的范围必须原样保留
func TestFromConfig_ExplicitZeroRanges(t *testing.T) {
	base := particle.RecipeConfig{Name: "flat", Count: 16, Palette: []string{"#ffffff"}}

	tests := []struct {
		name      string
		angle     string
		life      string
		wantAngle Range
		wantLife  Range
	}{
		{"angle zero", "0", "", Fixed(0), Fixed(1)},
		{"life zero", "", "0", Between(0, 360), Fixed(0)},
		{"both zero", "0", "0", Fixed(0), Fixed(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Angle, cfg.Life = tt.angle, tt.life
			tmpl, err := FromConfig(cfg)
			if err != nil {
				t.Fatalf("FromConfig: %v", err)
			}
			x, err := NewExecutor(tmpl)
			if err != nil {
				t.Fatalf("NewExecutor: %v", err)
			}
			if got := x.Template().Angle; got != tt.wantAngle {
				t.Errorf("Angle = %v, want %v", got, tt.wantAngle)
			}
			if got := x.Template().Life; got != tt.wantLife {
				t.Errorf("Life = %v, want %v", got, tt.wantLife)
			}

			e := newTestEmitter(4)
			x.Spawn(e, 0, 0)
			if len(e.out) != 16 {
				t.Fatalf("spawned %d particles, want 16", len(e.out))
			}
			for i, s := range e.out {
				if tt.wantAngle == Fixed(0) && s.params.VY != 0 {
					t.Errorf("particle %d VY = %v, want 0", i, s.params.VY)
				}
				if tt.wantLife == Fixed(0) && s.params.MaxLife != 0 {
					t.Errorf("particle %d MaxLife = %v, want 0", i, s.params.MaxLife)
				}
			}
		})
	}
}

// TestNewExecutor_KeepsZeroRanges 零值 Range 即 Fixed(0)，不会被替换
func TestNewExecutor_KeepsZeroRanges(t *testing.T) {
	x, err := NewExecutor(Template{
		Name:    "line",
		Count:   8,
		Speed:   Fixed(2),
		Size:    Fixed(1),
		Decay:   Fixed(0.05),
		Palette: palette(0xffffff),
	})
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	tp := x.Template()
	if tp.Pattern != PatternInstantRadial || tp.PaletteMode != PaletteAlternate {
		t.Errorf("enum defaults = %v/%v", tp.Pattern, tp.PaletteMode)
	}
	if tp.Angle != Fixed(0) || tp.Life != Fixed(0) {
		t.Errorf("zero ranges replaced: angle %v life %v", tp.Angle, tp.Life)
	}

	e := newTestEmitter(2)
	x.Spawn(e, 0, 0)
	for i, s := range e.out {
		if s.params.VY != 0 || s.params.VX != 2 {
			t.Errorf("particle %d velocity = (%v, %v), want (2, 0)", i, s.params.VX, s.params.VY)
		}
	}

	if _, err := NewExecutor(Template{Name: "nodecay", Count: 1, Size: Fixed(1), Palette: palette(0xffffff)}); err == nil {
		t.Error("omitted decay should fail validation")
	}
}

func TestFromConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  particle.RecipeConfig
	}{
		{"bad pattern", particle.RecipeConfig{Name: "a", Pattern: "spiral", Count: 1, Palette: []string{"#fff"}}},
		{"bad shape", particle.RecipeConfig{Name: "a", Count: 1, Shape: "hexagon", Palette: []string{"#fff"}}},
		{"no count", particle.RecipeConfig{Name: "a", Palette: []string{"#fff"}}},
		{"no palette", particle.RecipeConfig{Name: "a", Count: 1}},
		{"bad color", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"red"}}},
		{"bad range", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"#fff"}, Size: "[5 1]"}},
		{"zero size", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"#fff"}, Size: "0"}},
		{"glyph without set", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"#fff"}, Shape: "glyph"}},
		{"waves missing", particle.RecipeConfig{Name: "a", Pattern: "staggered-radial-wave", Count: 1, Palette: []string{"#fff"}}},
		{"bad from", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"#fff"}, From: []float64{1}}},
		{"chance", particle.RecipeConfig{Name: "a", Count: 1, Palette: []string{"#fff"}, GlowChance: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromConfig(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
