package systems

import (
	"log"

	"github.com/gonewx/combatfx/pkg/components"
	"github.com/gonewx/combatfx/pkg/ecs"
	"github.com/gonewx/combatfx/pkg/surface"
)

// GlyphSource resolves glyph keys to vector paths in a unit box.
type GlyphSource interface {
	Lookup(key string) (*surface.Path, bool)
}

// glowScale 发光模糊半径相对粒子尺寸的倍数
const glowScale = 2.0

var (
	unitSquare   = surface.RectPath(1, 1)
	unitTriangle = surface.TrianglePath(1)
)

// RenderStats summarises one Draw call.
type RenderStats struct {
	Drawn   int
	Skipped int // missing glyphs and expired particles
}

// RenderSystem paints live particles onto a Surface in creation order, so
// later particles paint on top.
type RenderSystem struct {
	entityManager *ecs.EntityManager
	glyphs        GlyphSource

	// OnMissingGlyph is called for every particle skipped because its glyph
	// is not in the atlas.
	OnMissingGlyph func(key string)

	warned map[string]bool
}

// NewRenderSystem creates a render system. glyphs may be nil, in which case
// every glyph particle is skipped.
func NewRenderSystem(em *ecs.EntityManager, glyphs GlyphSource) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		glyphs:        glyphs,
		warned:        make(map[string]bool),
	}
}

// SetGlyphs replaces the glyph source.
func (s *RenderSystem) SetGlyphs(glyphs GlyphSource) {
	s.glyphs = glyphs
}

// Draw clears dst and paints every live particle.
func (s *RenderSystem) Draw(dst surface.Surface) RenderStats {
	dst.Clear()

	var stats RenderStats
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager) {
		p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !ok {
			continue
		}
		// 已过期（包括 maxLife <= 0 的退化粒子）不绘制
		if !p.Alive() {
			stats.Skipped++
			continue
		}
		if s.drawParticle(dst, p) {
			stats.Drawn++
		} else {
			stats.Skipped++
		}
	}
	return stats
}

// drawParticle paints one particle with its own alpha and glow state.
// Returns false if the particle was skipped.
func (s *RenderSystem) drawParticle(dst surface.Surface, p *components.ParticleComponent) bool {
	var glyphPath *surface.Path
	if p.Shape == components.ShapeGlyph {
		path, ok := s.lookupGlyph(p.Glyph)
		if !ok {
			s.missingGlyph(p.Glyph)
			return false
		}
		glyphPath = path
	}

	dst.Save()
	defer dst.Restore()

	dst.SetAlpha(p.Alpha)
	if p.Glow {
		dst.SetGlow(p.Color, p.Size*glowScale)
	}

	switch p.Shape {
	case components.ShapeSquare:
		fillTransformed(dst, p, unitSquare)
	case components.ShapeTriangle:
		fillTransformed(dst, p, unitTriangle)
	case components.ShapeGlyph:
		fillTransformed(dst, p, glyphPath)
	default:
		dst.FillCircle(p.X, p.Y, p.Size, p.Color)
	}
	return true
}

// fillTransformed fills a unit path centered on the particle, rotated by its
// rotation and scaled by its size.
func fillTransformed(dst surface.Surface, p *components.ParticleComponent, path *surface.Path) {
	dst.Translate(p.X, p.Y)
	dst.Rotate(p.Rotation)
	dst.Scale(p.Size, p.Size)
	dst.FillPath(path, p.Color)
}

func (s *RenderSystem) lookupGlyph(key string) (*surface.Path, bool) {
	if s.glyphs == nil || key == "" {
		return nil, false
	}
	return s.glyphs.Lookup(key)
}

func (s *RenderSystem) missingGlyph(key string) {
	if !s.warned[key] {
		s.warned[key] = true
		log.Printf("[RenderSystem] glyph %q not in atlas, skipping particles that use it", key)
	}
	if s.OnMissingGlyph != nil {
		s.OnMissingGlyph(key)
	}
}
