package surface

import "math"

// Op is a path command.
type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// Segment is one path command with its points.
// MoveTo/LineTo use P[0]; QuadTo uses P[0] (control) and P[1];
// CubicTo uses P[0], P[1] (controls) and P[2].
type Segment struct {
	Op Op
	P  [3]Point
}

type Point struct {
	X, Y float64
}

// Path is a backend independent vector path in local coordinates.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpMoveTo, P: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpLineTo, P: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpQuadTo, P: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpCubicTo, P: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: OpClose})
}

// Empty reports whether the path has no drawing commands.
func (p *Path) Empty() bool {
	return p == nil || len(p.Segments) == 0
}

// RectPath returns an axis aligned rectangle centered on the origin.
func RectPath(w, h float64) *Path {
	p := &Path{}
	p.MoveTo(-w/2, -h/2)
	p.LineTo(w/2, -h/2)
	p.LineTo(w/2, h/2)
	p.LineTo(-w/2, h/2)
	p.Close()
	return p
}

// TrianglePath returns an isosceles triangle centered on the origin with its
// apex pointing up (negative y).
func TrianglePath(size float64) *Path {
	p := &Path{}
	p.MoveTo(0, -size)
	p.LineTo(size*0.866, size*0.5)
	p.LineTo(-size*0.866, size*0.5)
	p.Close()
	return p
}

// curveSteps 曲线细分段数
const curveSteps = 8

// Flatten converts the path into closed or open polylines under transform m.
// Curves are subdivided into line segments.
func (p *Path) Flatten(m Affine) [][]Point {
	if p.Empty() {
		return nil
	}

	var (
		polys   [][]Point
		current []Point
		last    Point
		start   Point
	)
	flush := func() {
		if len(current) > 1 {
			polys = append(polys, current)
		}
		current = nil
	}
	emit := func(pt Point) {
		x, y := m.Apply(pt.X, pt.Y)
		current = append(current, Point{x, y})
	}

	for _, seg := range p.Segments {
		switch seg.Op {
		case OpMoveTo:
			flush()
			last, start = seg.P[0], seg.P[0]
			emit(last)
		case OpLineTo:
			if len(current) == 0 {
				emit(last)
			}
			last = seg.P[0]
			emit(last)
		case OpQuadTo:
			if len(current) == 0 {
				emit(last)
			}
			c, end := seg.P[0], seg.P[1]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				emit(Point{
					X: u*u*last.X + 2*u*t*c.X + t*t*end.X,
					Y: u*u*last.Y + 2*u*t*c.Y + t*t*end.Y,
				})
			}
			last = end
		case OpCubicTo:
			if len(current) == 0 {
				emit(last)
			}
			c1, c2, end := seg.P[0], seg.P[1], seg.P[2]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				emit(Point{
					X: u*u*u*last.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
					Y: u*u*u*last.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
				})
			}
			last = end
		case OpClose:
			if len(current) > 0 {
				emit(start)
			}
			flush()
			last = start
		}
	}
	flush()
	return polys
}

// Bounds returns the bounding box of the path's points under transform m.
func (p *Path) Bounds(m Affine) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, poly := range p.Flatten(m) {
		for _, pt := range poly {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return minX, minY, maxX, maxY
}
