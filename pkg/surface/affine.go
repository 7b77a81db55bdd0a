package surface

import "math"

// Affine is a 2D affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, D: 1}
}

func Translation(x, y float64) Affine {
	return Affine{A: 1, D: 1, E: x, F: y}
}

func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Mul returns m·n: n is applied first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ScaleFactor returns the average linear scale of m, used to size strokes and
// circles drawn under a transform.
func (m Affine) ScaleFactor() float64 {
	sx := math.Hypot(m.A, m.B)
	sy := math.Hypot(m.C, m.D)
	return (sx + sy) / 2
}
