package ebitensurface

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/combatfx/pkg/surface"
)

func TestGlowLayers(t *testing.T) {
	if got := glowLayers(5, 0); got != nil {
		t.Errorf("blur 0 should give no layers, got %v", got)
	}

	layers := glowLayers(4, 6)
	if len(layers) != glowSteps {
		t.Fatalf("got %d layers, want %d", len(layers), glowSteps)
	}
	// 由外向内
	if math.Abs(layers[0].Radius-10) > 1e-9 {
		t.Errorf("outermost radius = %v, want 10", layers[0].Radius)
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].Radius >= layers[i-1].Radius {
			t.Errorf("layer %d radius %v not smaller than %v", i, layers[i].Radius, layers[i-1].Radius)
		}
		if layers[i].Radius <= 4 {
			t.Errorf("layer %d radius %v should exceed the shape radius", i, layers[i].Radius)
		}
	}
}

// pathLog 记录 appendPath 写入的命令
type pathLog struct {
	ops []string
	pts [][2]float32
}

func (l *pathLog) add(op string, xy ...float32) {
	l.ops = append(l.ops, op)
	for i := 0; i+1 < len(xy); i += 2 {
		l.pts = append(l.pts, [2]float32{xy[i], xy[i+1]})
	}
}

func (l *pathLog) MoveTo(x, y float32)                    { l.add("M", x, y) }
func (l *pathLog) LineTo(x, y float32)                    { l.add("L", x, y) }
func (l *pathLog) QuadTo(x1, y1, x2, y2 float32)          { l.add("Q", x1, y1, x2, y2) }
func (l *pathLog) CubicTo(x1, y1, x2, y2, x3, y3 float32) { l.add("C", x1, y1, x2, y2, x3, y3) }
func (l *pathLog) Close()                                 { l.add("Z") }

func TestAppendPath(t *testing.T) {
	p := &surface.Path{}
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.QuadTo(1, 1, 0, 1)
	p.CubicTo(-1, 1, -1, 0, 0, 0)
	p.Close()
	// 第二个子路径
	p.MoveTo(0.5, 0.5)
	p.LineTo(0.25, 0.5)
	p.Close()

	m := surface.Translation(10, 20).Mul(surface.Scaling(2, 2))

	var l pathLog
	appendPath(&l, p, m)

	wantOps := []string{"M", "L", "Q", "C", "Z", "M", "L", "Z"}
	if len(l.ops) != len(wantOps) {
		t.Fatalf("ops = %v, want %v", l.ops, wantOps)
	}
	for i := range wantOps {
		if l.ops[i] != wantOps[i] {
			t.Errorf("op %d = %s, want %s", i, l.ops[i], wantOps[i])
		}
	}

	wantPts := [][2]float32{
		{10, 20}, {12, 20},
		{12, 22}, {10, 22},
		{8, 22}, {8, 20}, {10, 20},
		{11, 21}, {10.5, 21},
	}
	if len(l.pts) != len(wantPts) {
		t.Fatalf("got %d points, want %d", len(l.pts), len(wantPts))
	}
	for i, want := range wantPts {
		if got := l.pts[i]; math.Abs(float64(got[0]-want[0])) > 1e-5 || math.Abs(float64(got[1]-want[1])) > 1e-5 {
			t.Errorf("point %d = %v, want %v", i, got, want)
		}
	}
}

func TestAppendPath_Rotated(t *testing.T) {
	p := &surface.Path{}
	p.MoveTo(1, 0)
	p.QuadTo(1, 1, 0, 1)

	var l pathLog
	appendPath(&l, p, surface.Rotation(math.Pi/2))

	// 旋转 90°：(x, y) -> (-y, x)，控制点同样变换
	want := [][2]float32{{0, 1}, {-1, 1}, {-1, 0}}
	for i, w := range want {
		if got := l.pts[i]; math.Abs(float64(got[0]-w[0])) > 1e-6 || math.Abs(float64(got[1]-w[1])) > 1e-6 {
			t.Errorf("point %d = %v, want %v", i, got, w)
		}
	}
}

func TestDrawOptions(t *testing.T) {
	tests := []struct {
		name  string
		c     color.NRGBA
		alpha float64
		want  [4]float32
	}{
		{"opaque white", color.NRGBA{255, 255, 255, 255}, 1, [4]float32{1, 1, 1, 1}},
		{"half alpha", color.NRGBA{255, 0, 0, 255}, 0.5, [4]float32{0.5, 0, 0, 0.5}},
		{"transparent", color.NRGBA{255, 0, 0, 0}, 1, [4]float32{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := drawOptions(tt.c, tt.alpha)
			if !op.AntiAlias {
				t.Error("paths should be anti-aliased")
			}
			cs := op.ColorScale
			got := [4]float32{cs.R(), cs.G(), cs.B(), cs.A()}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-3 {
					t.Errorf("color scale = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestEmptyPathIsNoop(t *testing.T) {
	s := New(4, 4)
	s.FillPath(&surface.Path{}, color.NRGBA{A: 255})
	s.StrokePath(nil, 1, color.NRGBA{A: 255})
	if s.canvas != nil {
		t.Error("empty paths should not allocate the canvas")
	}
}

func TestSurfaceSizeAndResize(t *testing.T) {
	s := New(320, 240)
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Fatalf("Size = %dx%d", w, h)
	}

	s.Resize(640, 480)
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("after Resize Size = %dx%d", w, h)
	}

	// 非法尺寸被忽略
	s.Resize(0, 100)
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("invalid Resize changed size to %dx%d", w, h)
	}
}

func TestSurfaceImplementsInterface(t *testing.T) {
	var _ surface.Surface = New(1, 1)
	f := Factory(color.Black)
	if w, h := f(8, 4).Size(); w != 8 || h != 4 {
		t.Errorf("factory surface size = %dx%d", w, h)
	}
}
