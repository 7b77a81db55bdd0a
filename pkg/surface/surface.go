// Package surface abstracts the 2D immediate-mode drawing backend the effect
// renderer paints on.
//
// A Surface keeps a canvas-like state: a current transform, a global alpha
// and an optional glow. Save/Restore push and pop that state, so a renderer
// can scope per-particle changes without leaking them to the next particle.
package surface

import "image/color"

// Surface is the drawing backend consumed by the render system.
type Surface interface {
	// Size returns the pixel dimensions of the surface.
	Size() (width, height int)
	// Resize changes the pixel dimensions. Drawn content may be discarded.
	Resize(width, height int)
	// Clear erases the whole surface and resets the state stack.
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	Scale(sx, sy float64)

	// SetAlpha sets the global opacity (0-1) for subsequent draws.
	SetAlpha(alpha float64)
	// SetGlow enables a soft glow in color c for subsequent fills.
	// A blur <= 0 disables it.
	SetGlow(c color.NRGBA, blur float64)

	FillCircle(cx, cy, radius float64, c color.NRGBA)
	FillPath(p *Path, c color.NRGBA)
	StrokePath(p *Path, width float64, c color.NRGBA)
}

// State is the saved part of a surface: transform, alpha and glow.
// Backends embed a StateStack to implement Save/Restore.
type State struct {
	Transform Affine
	Alpha     float64
	GlowColor color.NRGBA
	GlowBlur  float64
}

// DefaultState is the state after Clear.
func DefaultState() State {
	return State{Transform: Identity(), Alpha: 1}
}

// StateStack implements the state half of Surface.
type StateStack struct {
	Current State
	saved   []State
}

// NewStateStack returns a stack holding DefaultState.
func NewStateStack() StateStack {
	return StateStack{Current: DefaultState()}
}

func (s *StateStack) Save() {
	s.saved = append(s.saved, s.Current)
}

// Restore pops the last saved state. An unmatched Restore is ignored.
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.Current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Reset drops saved states and returns to DefaultState.
func (s *StateStack) Reset() {
	s.saved = s.saved[:0]
	s.Current = DefaultState()
}

func (s *StateStack) Translate(x, y float64) {
	s.Current.Transform = s.Current.Transform.Mul(Translation(x, y))
}

func (s *StateStack) Rotate(theta float64) {
	s.Current.Transform = s.Current.Transform.Mul(Rotation(theta))
}

func (s *StateStack) Scale(sx, sy float64) {
	s.Current.Transform = s.Current.Transform.Mul(Scaling(sx, sy))
}

func (s *StateStack) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.Current.Alpha = alpha
}

func (s *StateStack) SetGlow(c color.NRGBA, blur float64) {
	if blur <= 0 {
		s.Current.GlowColor = color.NRGBA{}
		s.Current.GlowBlur = 0
		return
	}
	s.Current.GlowColor = c
	s.Current.GlowBlur = blur
}

// Depth returns the number of saved states.
func (s *StateStack) Depth() int {
	return len(s.saved)
}

// ScaleAlpha returns c with its alpha multiplied by a.
func ScaleAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
