// Package ebitensurface implements surface.Surface on an offscreen
// *ebiten.Image. The viewer app draws that image onto the screen each frame.
package ebitensurface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/combatfx/pkg/surface"
)

// glowSteps 发光层数，由外向内叠加
const glowSteps = 3

// glowLayerAlpha 每一层发光的不透明度系数
const glowLayerAlpha = 0.18

// Surface draws onto an offscreen ebiten image.
type Surface struct {
	surface.StateStack

	width, height int
	background    color.Color
	canvas        *ebiten.Image

	// 复用的路径，避免每帧分配
	path vector.Path
}

// New creates a surface of the given size. The image is allocated on first
// use.
func New(width, height int) *Surface {
	return &Surface{
		StateStack: surface.NewStateStack(),
		width:      width,
		height:     height,
		background: color.Transparent,
	}
}

// Factory returns a constructor usable as an effect manager surface factory.
func Factory(background color.Color) func(width, height int) surface.Surface {
	return func(width, height int) surface.Surface {
		s := New(width, height)
		s.SetBackground(background)
		return s
	}
}

// SetBackground sets the color Clear fills with.
func (s *Surface) SetBackground(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	s.background = c
}

// Image returns the canvas, allocating it if needed.
func (s *Surface) Image() *ebiten.Image {
	if s.canvas == nil {
		s.canvas = ebiten.NewImage(s.width, s.height)
	}
	return s.canvas
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Resize drops the canvas; the next draw allocates one of the new size.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == s.width && height == s.height) {
		return
	}
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}
	s.width, s.height = width, height
}

func (s *Surface) Clear() {
	s.StateStack.Reset()
	s.Image().Fill(s.background)
}

func (s *Surface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	st := s.Current
	x, y := st.Transform.Apply(cx, cy)
	r := radius * st.Transform.ScaleFactor()
	if r <= 0 {
		return
	}

	dst := s.Image()
	s.drawGlow(dst, x, y, r)
	vector.FillCircle(dst, float32(x), float32(y), float32(r), surface.ScaleAlpha(c, st.Alpha), true)
}

func (s *Surface) FillPath(p *surface.Path, c color.NRGBA) {
	if p.Empty() {
		return
	}
	st := s.Current
	dst := s.Image()
	if st.GlowBlur > 0 {
		// 路径发光用外接圆近似
		minX, minY, maxX, maxY := p.Bounds(st.Transform)
		s.drawGlow(dst, (minX+maxX)/2, (minY+maxY)/2, max(maxX-minX, maxY-minY)/2)
	}

	s.path.Reset()
	appendPath(&s.path, p, st.Transform)
	fop := &vector.FillOptions{FillRule: vector.FillRuleNonZero}
	vector.FillPath(dst, &s.path, fop, drawOptions(c, st.Alpha))
}

func (s *Surface) StrokePath(p *surface.Path, width float64, c color.NRGBA) {
	if p.Empty() {
		return
	}
	st := s.Current
	w := width * st.Transform.ScaleFactor()
	if w <= 0 {
		return
	}

	s.path.Reset()
	appendPath(&s.path, p, st.Transform)
	sop := &vector.StrokeOptions{
		Width:    float32(w),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vector.StrokePath(s.Image(), &s.path, sop, drawOptions(c, st.Alpha))
}

func (s *Surface) drawGlow(dst *ebiten.Image, x, y, r float64) {
	st := s.Current
	for _, l := range glowLayers(r, st.GlowBlur) {
		gc := surface.ScaleAlpha(st.GlowColor, st.Alpha*l.Alpha)
		vector.FillCircle(dst, float32(x), float32(y), float32(l.Radius), gc, true)
	}
}

// drawOptions colors the white path fill with c at the given opacity.
func drawOptions(c color.NRGBA, alpha float64) *vector.DrawPathOptions {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	return op
}

// pathBuilder is the subset of *vector.Path appendPath writes to.
type pathBuilder interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(x1, y1, x2, y2 float32)
	CubicTo(x1, y1, x2, y2, x3, y3 float32)
	Close()
}

// appendPath replays p into dst in device space. Control points go through
// m as well: an affine image of a Bézier curve is the curve of the images.
func appendPath(dst pathBuilder, p *surface.Path, m surface.Affine) {
	pt := func(q surface.Point) (float32, float32) {
		x, y := m.Apply(q.X, q.Y)
		return float32(x), float32(y)
	}
	for _, seg := range p.Segments {
		switch seg.Op {
		case surface.OpMoveTo:
			x, y := pt(seg.P[0])
			dst.MoveTo(x, y)
		case surface.OpLineTo:
			x, y := pt(seg.P[0])
			dst.LineTo(x, y)
		case surface.OpQuadTo:
			cx, cy := pt(seg.P[0])
			x, y := pt(seg.P[1])
			dst.QuadTo(cx, cy, x, y)
		case surface.OpCubicTo:
			c1x, c1y := pt(seg.P[0])
			c2x, c2y := pt(seg.P[1])
			x, y := pt(seg.P[2])
			dst.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case surface.OpClose:
			dst.Close()
		}
	}
}

// glowLayer 一层发光圆
type glowLayer struct {
	Radius float64
	Alpha  float64
}

// glowLayers returns the translucent rings drawn under a shape of radius r,
// outermost first. A blur <= 0 yields none.
func glowLayers(r, blur float64) []glowLayer {
	if blur <= 0 {
		return nil
	}
	layers := make([]glowLayer, 0, glowSteps)
	for k := glowSteps; k >= 1; k-- {
		layers = append(layers, glowLayer{
			Radius: r + blur*float64(k)/glowSteps,
			Alpha:  glowLayerAlpha,
		})
	}
	return layers
}
