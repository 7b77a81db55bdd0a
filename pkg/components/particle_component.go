package components

import (
	"fmt"
	"image/color"
)

// Shape 粒子的绘制形状
type Shape int

const (
	ShapeDisc Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeGlyph
)

// String returns the name used in recipe files.
func (s Shape) String() string {
	switch s {
	case ShapeDisc:
		return "disc"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeGlyph:
		return "glyph"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a recipe file name to a Shape.
// An empty name means disc.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "", "disc", "circle":
		return ShapeDisc, nil
	case "square":
		return ShapeSquare, nil
	case "triangle":
		return ShapeTriangle, nil
	case "glyph":
		return ShapeGlyph, nil
	}
	return ShapeDisc, fmt.Errorf("unknown shape %q", name)
}

const (
	// Damping 每 tick 对水平速度的衰减系数
	Damping = 0.98

	// DefaultDecay replaces a non-positive decay so no particle is immortal.
	DefaultDecay = 0.02

	// MinSize is the smallest size a particle is constructed with.
	MinSize = 0.1

	// lifeEpsilon absorbs the residue of repeated float subtraction,
	// e.g. 1.0 - 10*0.1 leaves ~1.4e-16 instead of 0.
	lifeEpsilon = 1e-9
)

// ParticleParams is the concrete, already sampled parameter set a particle is
// built from. Recipes fill it in; AddParticle consumes it.
type ParticleParams struct {
	VX, VY float64
	Size   float64
	Color  color.NRGBA

	// Life 初始生命值，0 表示与 MaxLife 相同
	Life    float64
	MaxLife float64

	Gravity float64
	Decay   float64

	Shape Shape
	Glyph string

	Rotation      float64
	RotationSpeed float64
	Glow          bool
}

// ParticleComponent represents a single live particle.
//
// Position, velocity and rotation are in world space, advanced once per tick
// (not scaled by frame time). Alpha is always derived from Life/MaxLife.
type ParticleComponent struct {
	// Position (世界坐标)
	X, Y float64

	// Velocity (每 tick 位移)
	VX, VY float64

	Size  float64
	Color color.NRGBA

	// Lifecycle (生命周期)
	Life    float64
	MaxLife float64
	Alpha   float64 // Life / MaxLife, 0-1

	Gravity float64 // 每 tick 加到 VY 上，负值表示上升
	Decay   float64 // 每 tick 从 Life 中扣除

	Shape Shape
	Glyph string // glyph atlas key, only used when Shape == ShapeGlyph

	Rotation      float64 // radians
	RotationSpeed float64 // radians per tick

	Glow bool
}

// NewParticle builds a particle at (x, y) from params, normalising values
// that would break the lifetime invariants.
func NewParticle(x, y float64, params ParticleParams) *ParticleComponent {
	p := &ParticleComponent{
		X:             x,
		Y:             y,
		VX:            params.VX,
		VY:            params.VY,
		Size:          params.Size,
		Color:         params.Color,
		Life:          params.Life,
		MaxLife:       params.MaxLife,
		Gravity:       params.Gravity,
		Decay:         params.Decay,
		Shape:         params.Shape,
		Glyph:         params.Glyph,
		Rotation:      params.Rotation,
		RotationSpeed: params.RotationSpeed,
		Glow:          params.Glow,
	}

	if p.Size <= 0 {
		p.Size = MinSize
	}
	if p.Decay <= 0 {
		p.Decay = DefaultDecay
	}

	// maxLife <= 0：退化粒子，立即过期，下一个 tick 被清理
	if p.MaxLife <= 0 {
		p.MaxLife = 0
		p.Life = 0
		p.Alpha = 0
		return p
	}

	if p.Life <= 0 || p.Life > p.MaxLife {
		p.Life = p.MaxLife
	}
	p.Alpha = p.Life / p.MaxLife
	return p
}

// Advance applies one integration step and reports whether the particle is
// still alive.
func (p *ParticleComponent) Advance() bool {
	p.VX *= Damping
	p.VY += p.Gravity
	p.X += p.VX
	p.Y += p.VY
	p.Life -= p.Decay
	p.Alpha = p.alpha()
	p.Rotation += p.RotationSpeed
	return p.Alive()
}

// Alive reports whether the particle still has life left.
func (p *ParticleComponent) Alive() bool {
	return p.MaxLife > 0 && p.Life > lifeEpsilon
}

func (p *ParticleComponent) alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	a := p.Life / p.MaxLife
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
