package effects

import (
	"image/color"
	"time"

	"github.com/gonewx/combatfx/pkg/components"
)

// Names of the builtin effects that tests and tools refer to.
const (
	EffectHit        = "hit"
	EffectShadow     = "shadow"
	EffectProjectile = "projectile"
)

func rgb(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func palette(vs ...uint32) []color.NRGBA {
	out := make([]color.NRGBA, len(vs))
	for i, v := range vs {
		out[i] = rgb(v)
	}
	return out
}

// fullCircle 全方向发射
var fullCircle = Between(0, 360)

// 角度约定：0° 向右，90° 向下，270° 向上（屏幕坐标 y 轴向下）

// DefaultTemplates returns the builtin combat effect catalog.
func DefaultTemplates() []Template {
	return []Template{
		{
			Name:       EffectHit,
			Pattern:    PatternInstantRadial,
			Angle:      fullCircle,
			Life:       Fixed(1),
			Count:      30,
			Speed:      Between(2, 6),
			Size:       Between(2, 5),
			Palette:    palette(0xff4444, 0xffaa00),
			Gravity:    Fixed(0.1),
			Decay:      Between(0.02, 0.04),
			Shape:      components.ShapeDisc,
			GlowChance: 0.3,
		},
		{
			Name:        "critical",
			Pattern:     PatternInstantRadial,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Count:       45,
			Even:        true,
			Speed:       Between(4, 9),
			Size:        Between(3, 7),
			Palette:     palette(0xffdd00, 0xff6600, 0xffffff),
			Decay:       Fixed(0.025),
			GlowChance:  0.6,
			GlyphChance: 0.2,
			Glyphs:      []string{"star"},
		},
		{
			Name:          "slash",
			Pattern:       PatternInstantDirectional,
			Life:          Fixed(1),
			Count:         25,
			Direction:     -30,
			Spread:        15,
			Speed:         Between(6, 12),
			Size:          Between(2, 4),
			Palette:       palette(0xe0e0ff, 0xaaaaff),
			Decay:         Fixed(0.04),
			Shape:         components.ShapeSquare,
			RotationSpeed: Between(-0.3, 0.3),
		},
		{
			Name:        "heal",
			Pattern:     PatternInstantRadial,
			Life:        Fixed(1),
			Count:       24,
			Angle:       Between(240, 300),
			Speed:       Between(1, 3),
			Size:        Between(3, 6),
			Palette:     palette(0x44ff88, 0xaaffcc),
			Gravity:     Fixed(-0.05),
			Decay:       Fixed(0.015),
			GlowChance:  0.5,
			GlyphChance: 0.3,
			Glyphs:      []string{"cross", "heart"},
		},
		{
			Name:        "fire",
			Pattern:     PatternInstantDirectional,
			Life:        Fixed(1),
			Count:       35,
			Direction:   270,
			Spread:      25,
			Speed:       Between(2, 5),
			Size:        Between(3, 6),
			Palette:     palette(0xff3300, 0xff8800, 0xffcc00),
			PaletteMode: PaletteRandom,
			Gravity:     Fixed(-0.08),
			Decay:       Between(0.025, 0.04),
			GlowChance:  0.4,
			GlyphChance: 0.1,
			Glyphs:      []string{"flame"},
			Jitter:      Between(0, 10),
		},
		{
			Name:          "ice",
			Pattern:       PatternInstantRadial,
			Angle:         fullCircle,
			Life:          Fixed(1),
			Decay:         Fixed(components.DefaultDecay),
			Count:         28,
			Even:          true,
			Speed:         Between(2, 5),
			Size:          Between(3, 6),
			Palette:       palette(0x88ddff, 0xffffff, 0xcceeff),
			Gravity:       Fixed(0.05),
			Shape:         components.ShapeTriangle,
			RotationSpeed: Between(-0.2, 0.2),
			GlyphChance:   0.25,
			Glyphs:        []string{"snowflake"},
		},
		{
			Name:        "lightning",
			Pattern:     PatternInstantDirectional,
			Life:        Fixed(1),
			Count:       20,
			Direction:   90,
			Spread:      10,
			Speed:       Between(8, 14),
			Size:        Between(2, 3),
			Palette:     palette(0xffff66, 0xffffff),
			Decay:       Fixed(0.05),
			GlowChance:  0.8,
			GlyphChance: 0.2,
			Glyphs:      []string{"bolt"},
		},
		{
			Name:        "poison",
			Pattern:     PatternInstantRadial,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Count:       20,
			Speed:       Between(0.5, 2),
			Size:        Between(3, 7),
			Palette:     palette(0x66ff33, 0x339900, 0xaa44ff),
			PaletteMode: PaletteRandom,
			Gravity:     Fixed(-0.03),
			Decay:       Fixed(0.015),
			GlyphChance: 0.1,
			Glyphs:      []string{"skull", "drop"},
		},
		{
			Name:       EffectShadow,
			Pattern:    PatternStaggeredRadialWave,
			Angle:      fullCircle,
			Life:       Fixed(1),
			Count:      12,
			Even:       true,
			Waves:      6,
			Interval:   100 * time.Millisecond,
			WaveRadius: Between(12, 16),
			Speed:      Between(0.5, 1.5),
			Size:       Between(3, 6),
			Palette:    palette(0x442266, 0x110022, 0x8844aa),
			Decay:      Fixed(0.02),
			GlowChance: 0.3,
		},
		{
			Name:        "holy",
			Pattern:     PatternInstantRadial,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Decay:       Fixed(components.DefaultDecay),
			Count:       36,
			Even:        true,
			Speed:       Between(2, 4),
			Size:        Between(2, 5),
			Palette:     palette(0xffffcc, 0xffee88),
			Gravity:     Fixed(-0.04),
			GlowChance:  0.9,
			GlyphChance: 0.2,
			Glyphs:      []string{"star"},
		},
		{
			Name:        "explosion",
			Pattern:     PatternInstantRadial,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Count:       60,
			Speed:       Between(3, 10),
			Size:        Between(3, 8),
			Palette:     palette(0xff2200, 0xff8800, 0xffee00, 0x555555),
			PaletteMode: PaletteRandom,
			Gravity:     Fixed(0.12),
			Decay:       Between(0.015, 0.03),
			GlowChance:  0.3,
			Jitter:      Between(0, 6),
		},
		{
			Name:        "levelup",
			Pattern:     PatternStaggeredRadialWave,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Decay:       Fixed(components.DefaultDecay),
			Count:       16,
			Even:        true,
			Waves:       4,
			Interval:    150 * time.Millisecond,
			WaveRadius:  Fixed(20),
			Speed:       Between(1, 2),
			Size:        Between(3, 5),
			Palette:     palette(0xffd700, 0xffffff),
			Gravity:     Fixed(-0.1),
			GlowChance:  0.6,
			GlyphChance: 0.3,
			Glyphs:      []string{"star", "note"},
		},
		{
			Name:        "shield",
			Pattern:     PatternInstantRadial,
			Angle:       fullCircle,
			Life:        Fixed(1),
			Count:       32,
			Even:        true,
			Speed:       Between(0.5, 1),
			Size:        Between(2, 4),
			Palette:     palette(0x66aaff, 0x99ccff),
			Decay:       Fixed(0.015),
			GlowChance:  0.5,
			GlyphChance: 0.15,
			Glyphs:      []string{"shield"},
			Jitter:      Between(28, 32),
		},
		{
			Name:        "buff",
			Pattern:     PatternInstantDirectional,
			Life:        Fixed(1),
			Decay:       Fixed(components.DefaultDecay),
			Count:       15,
			Direction:   270,
			Spread:      20,
			Speed:       Between(1, 2),
			Size:        Between(4, 7),
			Palette:     palette(0x55ff55, 0xccffcc),
			Gravity:     Fixed(-0.06),
			GlyphChance: 0.5,
			Glyphs:      []string{"arrow_up"},
			Jitter:      Between(0, 20),
		},
		{
			Name:        "debuff",
			Pattern:     PatternInstantDirectional,
			Life:        Fixed(1),
			Decay:       Fixed(components.DefaultDecay),
			Count:       15,
			Direction:   90,
			Spread:      20,
			Speed:       Between(1, 2),
			Size:        Between(4, 7),
			Palette:     palette(0xff5555, 0x993333),
			Gravity:     Fixed(0.06),
			GlyphChance: 0.5,
			Glyphs:      []string{"arrow_dn"},
			Jitter:      Between(0, 20),
		},
		{
			Name:          "stun",
			Pattern:       PatternInstantRadial,
			Angle:         fullCircle,
			Life:          Fixed(1),
			Count:         8,
			Even:          true,
			Speed:         Between(0.5, 1),
			Size:          Between(5, 8),
			Palette:       palette(0xffff00, 0xffcc00),
			Decay:         Fixed(0.012),
			Shape:         components.ShapeGlyph,
			Glyphs:        []string{"star", "swirl"},
			RotationSpeed: Between(0.1, 0.2),
		},
		{
			Name:        "bleed",
			Pattern:     PatternInstantDirectional,
			Life:        Fixed(1),
			Decay:       Fixed(components.DefaultDecay),
			Count:       18,
			Direction:   90,
			Spread:      40,
			Speed:       Between(1, 4),
			Size:        Between(2, 5),
			Palette:     palette(0xcc0000, 0x880000),
			Gravity:     Fixed(0.2),
			GlyphChance: 0.4,
			Glyphs:      []string{"drop"},
		},
		{
			Name:          "quake",
			Pattern:       PatternStaggeredLine,
			Life:          Fixed(1),
			Decay:         Fixed(components.DefaultDecay),
			Count:         16,
			Interval:      30 * time.Millisecond,
			PathFrom:      Vec{X: -120, Y: 20},
			PathTo:        Vec{X: 120, Y: 20},
			Direction:     270,
			Spread:        30,
			Speed:         Between(2, 5),
			Size:          Between(3, 7),
			Palette:       palette(0x8b5a2b, 0xa0522d, 0x666666),
			PaletteMode:   PaletteRandom,
			Gravity:       Fixed(0.25),
			Shape:         components.ShapeSquare,
			RotationSpeed: Between(-0.2, 0.2),
		},
		{
			Name:      "arrow_rain",
			Pattern:   PatternStaggeredLine,
			Life:      Fixed(1),
			Count:     12,
			Interval:  50 * time.Millisecond,
			PathFrom:  Vec{X: -100, Y: -150},
			PathTo:    Vec{X: 100, Y: -150},
			Direction: 90,
			Spread:    5,
			Speed:     Between(8, 10),
			Size:      Between(3, 5),
			Palette:   palette(0xdddddd, 0x8b4513),
			Gravity:   Fixed(0.2),
			Decay:     Fixed(0.03),
			Shape:     components.ShapeTriangle,
		},
		{
			Name:       EffectProjectile,
			Pattern:    PatternStaggeredLine,
			Life:       Fixed(1),
			Count:      10,
			Interval:   20 * time.Millisecond,
			PathFrom:   Vec{X: -200, Y: 0},
			PathTo:     Vec{X: 0, Y: 0},
			Direction:  0,
			Spread:     5,
			Speed:      Between(0.5, 1),
			Size:       Between(3, 5),
			Palette:    palette(0x88ccff, 0xffffff),
			Decay:      Fixed(0.04),
			GlowChance: 0.5,
		},
	}
}
