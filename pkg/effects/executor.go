package effects

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/gonewx/combatfx/pkg/components"
)

// Executor is the generic burst executor: it turns a Template into particle
// creations, sampling every particle's parameters from the template's ranges.
type Executor struct {
	tmpl Template
}

// NewExecutor validates t and returns an executor for it.
func NewExecutor(t Template) (*Executor, error) {
	t = t.withDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Executor{tmpl: t}, nil
}

// Template returns the template the executor runs.
func (x *Executor) Template() Template {
	return x.tmpl
}

// Spawn implements Recipe.
func (x *Executor) Spawn(e Emitter, ox, oy float64) {
	t := &x.tmpl
	switch t.Pattern {
	case PatternInstantRadial:
		span := t.Angle.Max - t.Angle.Min
		for i := 0; i < t.Count; i++ {
			angle := t.Angle.Min + span*float64(i)/float64(t.Count)
			if !t.Even {
				angle = t.Angle.Sample(e.Rand())
			}
			x.emit(e, i, ox, oy, angle)
		}

	case PatternInstantDirectional:
		for i := 0; i < t.Count; i++ {
			x.emit(e, i, ox, oy, x.direction(e.Rand()))
		}

	case PatternStaggeredLine:
		e.ScheduleSeries(t.Count, t.Interval, func(i int) {
			frac := 0.0
			if t.Count > 1 {
				frac = float64(i) / float64(t.Count-1)
			}
			px := ox + t.PathFrom.X + (t.PathTo.X-t.PathFrom.X)*frac
			py := oy + t.PathFrom.Y + (t.PathTo.Y-t.PathFrom.Y)*frac
			x.emit(e, i, px, py, x.direction(e.Rand()))
		})

	case PatternStaggeredRadialWave:
		e.ScheduleSeries(t.Waves, t.Interval, func(w int) {
			r := e.Rand()
			radius := t.WaveRadius.Sample(r) * float64(w+1)
			span := t.Angle.Max - t.Angle.Min
			for j := 0; j < t.Count; j++ {
				angle := t.Angle.Min + span*float64(j)/float64(t.Count)
				if !t.Even {
					angle = t.Angle.Sample(r)
				}
				rad := angle * math.Pi / 180
				x.emit(e, w*t.Count+j, ox+math.Cos(rad)*radius, oy+math.Sin(rad)*radius, angle)
			}
		})
	}
}

func (x *Executor) direction(r *rand.Rand) float64 {
	t := &x.tmpl
	if t.Spread == 0 {
		return t.Direction
	}
	return spanRange(t.Direction-t.Spread, t.Direction+t.Spread).Sample(r)
}

func spanRange(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Between(a, b)
}

// emit samples particle i of the burst and hands it to the emitter.
func (x *Executor) emit(e Emitter, i int, px, py, angleDeg float64) {
	r := e.Rand()
	t := &x.tmpl

	if t.Jitter.Max > 0 {
		d := t.Jitter.Sample(r)
		a := r.Float64() * 2 * math.Pi
		px += math.Cos(a) * d
		py += math.Sin(a) * d
	}

	e.AddParticle(px, py, x.Sample(r, i, angleDeg))
}

// Sample draws the concrete parameters of particle i launched at angleDeg.
func (x *Executor) Sample(r *rand.Rand, i int, angleDeg float64) components.ParticleParams {
	t := &x.tmpl
	speed := t.Speed.Sample(r)
	rad := angleDeg * math.Pi / 180

	p := components.ParticleParams{
		VX:            math.Cos(rad) * speed,
		VY:            math.Sin(rad) * speed,
		Size:          t.Size.Sample(r),
		Color:         x.color(r, i),
		MaxLife:       t.Life.Sample(r),
		Gravity:       t.Gravity.Sample(r),
		Decay:         t.Decay.Sample(r),
		Shape:         t.Shape,
		RotationSpeed: t.RotationSpeed.Sample(r),
	}

	if t.Shape != components.ShapeDisc {
		p.Rotation = r.Float64() * 2 * math.Pi
	}
	if t.GlowChance > 0 && r.Float64() < t.GlowChance {
		p.Glow = true
	}

	if len(t.Glyphs) > 0 {
		if t.Shape == components.ShapeGlyph || (t.GlyphChance > 0 && r.Float64() < t.GlyphChance) {
			p.Shape = components.ShapeGlyph
			p.Glyph = t.Glyphs[r.IntN(len(t.Glyphs))]
		}
	}
	return p
}

func (x *Executor) color(r *rand.Rand, i int) color.NRGBA {
	pal := x.tmpl.Palette
	if x.tmpl.PaletteMode == PaletteRandom {
		return pal[r.IntN(len(pal))]
	}
	return pal[i%len(pal)]
}
