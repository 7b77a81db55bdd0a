// Package termsurface implements surface.Surface as a coarse software
// rasterizer onto a grid of terminal cells, flushed to a tcell screen.
//
// World coordinates stay in pixels; each cell covers CellW x CellH pixels
// and is lit when its center falls inside a shape.
package termsurface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/combatfx/pkg/surface"
)

// Default pixel size of one terminal cell. Cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// glowAlpha 发光区域相对粒子的不透明度
const glowAlpha = 0.35

// shades 按覆盖度从低到高的字符
var shades = []rune{'░', '▒', '▓', '█'}

type cell struct {
	r, g, b float64 // 非预乘颜色，0-1
	a       float64 // 覆盖度
}

// Surface rasterizes onto terminal cells.
type Surface struct {
	surface.StateStack

	width, height int
	cellW, cellH  int
	cols, rows    int
	cells         []cell
	background    color.NRGBA
}

// New creates a surface of width x height pixels using the default cell size.
func New(width, height int) *Surface {
	return NewWithCell(width, height, DefaultCellW, DefaultCellH)
}

// NewWithCell creates a surface with a custom cell size.
func NewWithCell(width, height, cellW, cellH int) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	s := &Surface{
		StateStack: surface.NewStateStack(),
		cellW:      cellW,
		cellH:      cellH,
		background: color.NRGBA{A: 0xff},
	}
	s.Resize(width, height)
	return s
}

// Factory returns a constructor usable as an effect manager surface factory.
func Factory(background color.NRGBA) func(width, height int) surface.Surface {
	return func(width, height int) surface.Surface {
		s := New(width, height)
		s.background = background
		return s
	}
}

// PixelSize converts a terminal size in cells to surface pixels.
func PixelSize(cols, rows int) (int, int) {
	return cols * DefaultCellW, rows * DefaultCellH
}

// SetBackground sets the color of unlit cells.
func (s *Surface) SetBackground(c color.NRGBA) {
	s.background = c
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Grid returns the number of columns and rows.
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.cols = max(1, width/s.cellW)
	s.rows = max(1, height/s.cellH)
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *Surface) Clear() {
	s.StateStack.Reset()
	clear(s.cells)
}

// Coverage returns the accumulated alpha of the cell at (col, row).
func (s *Surface) Coverage(col, row int) float64 {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0
	}
	return s.cells[row*s.cols+col].a
}

// Rune returns the character the cell at (col, row) is drawn with, or ' '.
func (s *Surface) Rune(col, row int) rune {
	return shadeRune(s.Coverage(col, row))
}

func (s *Surface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	st := s.Current
	x, y := st.Transform.Apply(cx, cy)
	r := radius * st.Transform.ScaleFactor()
	if r <= 0 {
		return
	}

	if st.GlowBlur > 0 {
		s.fillDisc(x, y, r+st.GlowBlur, st.GlowColor, st.Alpha*glowAlpha)
	}
	s.fillDisc(x, y, r, c, st.Alpha)
}

func (s *Surface) FillPath(p *surface.Path, c color.NRGBA) {
	st := s.Current
	polys := p.Flatten(st.Transform)
	if len(polys) == 0 {
		return
	}
	minX, minY, maxX, maxY := p.Bounds(st.Transform)

	if st.GlowBlur > 0 {
		r := max(maxX-minX, maxY-minY)/2 + st.GlowBlur
		s.fillDisc((minX+maxX)/2, (minY+maxY)/2, r, st.GlowColor, st.Alpha*glowAlpha)
	}

	hit := false
	s.eachCell(minX, minY, maxX, maxY, func(i int, px, py float64) {
		if winding(polys, px, py) != 0 {
			s.blend(i, c, st.Alpha)
			hit = true
		}
	})
	// 小于一个单元格的形状仍点亮所在单元格
	if !hit {
		s.plot((minX+maxX)/2, (minY+maxY)/2, c, st.Alpha)
	}
}

func (s *Surface) StrokePath(p *surface.Path, width float64, c color.NRGBA) {
	st := s.Current
	step := float64(min(s.cellW, s.cellH)) / 2
	for _, poly := range p.Flatten(st.Transform) {
		for i := 0; i+1 < len(poly); i++ {
			a, b := poly[i], poly[i+1]
			n := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y)/step)) + 1
			for k := 0; k <= n; k++ {
				t := float64(k) / float64(n)
				s.plot(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, c, st.Alpha)
			}
		}
	}
}

// Flush writes every cell to screen. Unlit cells are cleared to the
// background color.
func (s *Surface) Flush(screen tcell.Screen) {
	bg := tcell.NewRGBColor(int32(s.background.R), int32(s.background.G), int32(s.background.B))
	blank := tcell.StyleDefault.Background(bg)

	sw, sh := screen.Size()
	for row := 0; row < s.rows && row < sh; row++ {
		for col := 0; col < s.cols && col < sw; col++ {
			c := s.cells[row*s.cols+col]
			ch := shadeRune(c.a)
			if ch == ' ' {
				screen.SetContent(col, row, ' ', nil, blank)
				continue
			}
			fg := tcell.NewRGBColor(to8(c.r), to8(c.g), to8(c.b))
			screen.SetContent(col, row, ch, nil, blank.Foreground(fg))
		}
	}
}

// fillDisc lights every cell whose center lies within r of (x, y), or the
// cell containing (x, y) when none does.
func (s *Surface) fillDisc(x, y, r float64, c color.NRGBA, alpha float64) {
	hit := false
	r2 := r * r
	s.eachCell(x-r, y-r, x+r, y+r, func(i int, px, py float64) {
		dx, dy := px-x, py-y
		if dx*dx+dy*dy <= r2 {
			s.blend(i, c, alpha)
			hit = true
		}
	})
	if !hit {
		s.plot(x, y, c, alpha)
	}
}

// eachCell calls fn for every cell whose center lies in the pixel box.
func (s *Surface) eachCell(minX, minY, maxX, maxY float64, fn func(i int, px, py float64)) {
	c0 := max(0, int(math.Floor(minX/float64(s.cellW))))
	c1 := min(s.cols-1, int(math.Floor(maxX/float64(s.cellW))))
	r0 := max(0, int(math.Floor(minY/float64(s.cellH))))
	r1 := min(s.rows-1, int(math.Floor(maxY/float64(s.cellH))))
	for row := r0; row <= r1; row++ {
		py := (float64(row) + 0.5) * float64(s.cellH)
		if py < minY || py > maxY {
			continue
		}
		for col := c0; col <= c1; col++ {
			px := (float64(col) + 0.5) * float64(s.cellW)
			if px < minX || px > maxX {
				continue
			}
			fn(row*s.cols+col, px, py)
		}
	}
}

// plot blends into the cell containing pixel (x, y).
func (s *Surface) plot(x, y float64, c color.NRGBA, alpha float64) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x)/s.cellW, int(y)/s.cellH
	if col >= s.cols || row >= s.rows {
		return
	}
	s.blend(row*s.cols+col, c, alpha)
}

// blend composites c with the given alpha over cell i (source-over).
func (s *Surface) blend(i int, c color.NRGBA, alpha float64) {
	a := alpha * float64(c.A) / 0xff
	if a <= 0 {
		return
	}
	d := &s.cells[i]
	outA := a + d.a*(1-a)
	if outA <= 0 {
		return
	}
	mix := func(src uint8, dst float64) float64 {
		return (float64(src)/0xff*a + dst*d.a*(1-a)) / outA
	}
	d.r, d.g, d.b = mix(c.R, d.r), mix(c.G, d.g), mix(c.B, d.b)
	d.a = outA
}

// winding returns the non-zero winding number of (x, y) over polys.
func winding(polys [][]surface.Point, x, y float64) int {
	w := 0
	for _, poly := range polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= y {
				if b.Y > y && cross(a, b, x, y) > 0 {
					w++
				}
			} else if b.Y <= y && cross(a, b, x, y) < 0 {
				w--
			}
		}
	}
	return w
}

func cross(a, b surface.Point, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

func shadeRune(a float64) rune {
	if a <= 0.02 {
		return ' '
	}
	i := int(a * float64(len(shades)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func to8(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}
