package surface

import "image/color"

// CallKind identifies a recorded draw call.
type CallKind int

const (
	CallClear CallKind = iota
	CallCircle
	CallFill
	CallStroke
)

// Call is one recorded draw call together with the state it was issued in.
type Call struct {
	Kind      CallKind
	Color     color.NRGBA
	Alpha     float64
	GlowColor color.NRGBA
	GlowBlur  float64
	Transform Affine

	// Circle
	CX, CY, Radius float64
	// Fill / Stroke
	Path  *Path
	Width float64
}

// Recorder is a headless Surface that records every draw call.
// It is used by tests and by the headless benchmark tool.
type Recorder struct {
	StateStack
	width, height int
	calls         []Call
	resizes       int
}

// NewRecorder returns a Recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		StateStack: NewStateStack(),
		width:      width,
		height:     height,
	}
}

// Factory returns a constructor usable as an effect manager surface factory.
func Factory() func(width, height int) Surface {
	return func(width, height int) Surface {
		return NewRecorder(width, height)
	}
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.resizes++
}

// Clear drops the recorded calls of the previous frame.
func (r *Recorder) Clear() {
	r.StateStack.Reset()
	r.calls = append(r.calls[:0], Call{Kind: CallClear})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	call := r.record(CallCircle, c)
	call.CX, call.CY, call.Radius = cx, cy, radius
}

func (r *Recorder) FillPath(p *Path, c color.NRGBA) {
	r.record(CallFill, c).Path = p
}

func (r *Recorder) StrokePath(p *Path, width float64, c color.NRGBA) {
	call := r.record(CallStroke, c)
	call.Path = p
	call.Width = width
}

func (r *Recorder) record(kind CallKind, c color.NRGBA) *Call {
	st := r.Current
	r.calls = append(r.calls, Call{
		Kind:      kind,
		Color:     c,
		Alpha:     st.Alpha,
		GlowColor: st.GlowColor,
		GlowBlur:  st.GlowBlur,
		Transform: st.Transform,
	})
	return &r.calls[len(r.calls)-1]
}

// Calls returns the calls recorded since the last Clear.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// DrawCalls returns the recorded calls excluding Clear.
func (r *Recorder) DrawCalls() []Call {
	out := make([]Call, 0, len(r.calls))
	for _, c := range r.calls {
		if c.Kind != CallClear {
			out = append(out, c)
		}
	}
	return out
}

// Resizes returns how many times Resize was called.
func (r *Recorder) Resizes() int {
	return r.resizes
}
