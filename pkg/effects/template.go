// Package effects holds the effect recipe registry, the declarative burst
// templates with their generic executor, and the burst scheduler that turns
// staggered patterns into time-ordered particle creations.
package effects

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/gonewx/combatfx/internal/particle"
	"github.com/gonewx/combatfx/pkg/components"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Fixed returns a degenerate range holding v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between returns the range [min, max].
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Sample draws a value in [Min, Max].
func (r Range) Sample(rng *rand.Rand) float64 {
	return particle.RandomInRange(rng, r.Min, r.Max)
}

// Contains reports whether v lies inside the closed range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%g", r.Min)
	}
	return fmt.Sprintf("[%g %g]", r.Min, r.Max)
}

// SpawnPattern selects how a template lays out its particles in space and time.
type SpawnPattern string

const (
	PatternInstantRadial       SpawnPattern = "instant-radial"
	PatternInstantDirectional  SpawnPattern = "instant-directional"
	PatternStaggeredLine       SpawnPattern = "staggered-line"
	PatternStaggeredRadialWave SpawnPattern = "staggered-radial-wave"
)

// Staggered reports whether the pattern goes through the burst scheduler.
func (p SpawnPattern) Staggered() bool {
	return p == PatternStaggeredLine || p == PatternStaggeredRadialWave
}

// ParseSpawnPattern validates a pattern name. Empty means instant-radial.
func ParseSpawnPattern(s string) (SpawnPattern, error) {
	switch p := SpawnPattern(s); p {
	case "":
		return PatternInstantRadial, nil
	case PatternInstantRadial, PatternInstantDirectional, PatternStaggeredLine, PatternStaggeredRadialWave:
		return p, nil
	}
	return "", fmt.Errorf("unknown spawn pattern %q", s)
}

// PaletteMode selects how particle colors are taken from the palette.
type PaletteMode string

const (
	// PaletteAlternate cycles through the palette by creation index.
	PaletteAlternate PaletteMode = "alternate"
	// PaletteRandom picks a palette entry at random.
	PaletteRandom PaletteMode = "random"
)

// Vec is an offset from the effect origin.
type Vec struct {
	X, Y float64
}

// Template is the declarative description of one effect.
// Angles are in degrees, speeds and gravity in pixels per tick.
type Template struct {
	Name    string
	Pattern SpawnPattern

	// Count is the number of particles per burst; per ring for radial waves.
	Count int
	Angle Range
	Even  bool

	Direction float64
	Spread    float64

	Speed         Range
	Size          Range
	Palette       []color.NRGBA
	PaletteMode   PaletteMode
	Life          Range
	Gravity       Range
	Decay         Range
	Shape         components.Shape
	RotationSpeed Range

	GlowChance  float64
	GlyphChance float64
	Glyphs      []string

	Interval   time.Duration
	Waves      int
	WaveRadius Range
	PathFrom   Vec
	PathTo     Vec
	// Jitter is a random positional offset radius applied to each particle.
	Jitter Range
}

// Validate checks the template for values the executor cannot use.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}
	if _, err := ParseSpawnPattern(string(t.Pattern)); err != nil {
		return fmt.Errorf("template %s: %w", t.Name, err)
	}
	if t.Count <= 0 {
		return fmt.Errorf("template %s: count must be positive, got %d", t.Name, t.Count)
	}
	if len(t.Palette) == 0 {
		return fmt.Errorf("template %s: palette is empty", t.Name)
	}
	if t.PaletteMode != "" && t.PaletteMode != PaletteAlternate && t.PaletteMode != PaletteRandom {
		return fmt.Errorf("template %s: unknown palette mode %q", t.Name, t.PaletteMode)
	}

	ranges := map[string]Range{
		"angle": t.Angle, "speed": t.Speed, "size": t.Size, "life": t.Life,
		"gravity": t.Gravity, "decay": t.Decay, "rotationSpeed": t.RotationSpeed,
		"waveRadius": t.WaveRadius, "jitter": t.Jitter,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("template %s: %s range %v has min greater than max", t.Name, name, r)
		}
	}
	if t.Size.Min <= 0 {
		return fmt.Errorf("template %s: size must be positive, got %v", t.Name, t.Size)
	}
	if t.Decay.Min <= 0 {
		return fmt.Errorf("template %s: decay must be positive, got %v", t.Name, t.Decay)
	}

	if t.GlowChance < 0 || t.GlowChance > 1 || t.GlyphChance < 0 || t.GlyphChance > 1 {
		return fmt.Errorf("template %s: chances must be within [0, 1]", t.Name)
	}
	if (t.Shape == components.ShapeGlyph || t.GlyphChance > 0) && len(t.Glyphs) == 0 {
		return fmt.Errorf("template %s: glyph shape requires a glyph set", t.Name)
	}

	if t.Pattern.Staggered() && t.Interval < 0 {
		return fmt.Errorf("template %s: interval must not be negative", t.Name)
	}
	if t.Pattern == PatternStaggeredRadialWave && t.Waves <= 0 {
		return fmt.Errorf("template %s: radial wave pattern needs waves > 0", t.Name)
	}
	return nil
}

// withDefaults fills unset enums. Ranges are taken as given: a zero
// Range is a legal Fixed(0), so range defaults belong to FromConfig.
func (t Template) withDefaults() Template {
	if t.Pattern == "" {
		t.Pattern = PatternInstantRadial
	}
	if t.PaletteMode == "" {
		t.PaletteMode = PaletteAlternate
	}
	return t
}

// FromConfig converts a recipe file entry into a validated template.
func FromConfig(cfg particle.RecipeConfig) (Template, error) {
	pattern, err := ParseSpawnPattern(cfg.Pattern)
	if err != nil {
		return Template{}, fmt.Errorf("effect %s: %w", cfg.Name, err)
	}
	shape, err := components.ParseShape(cfg.Shape)
	if err != nil {
		return Template{}, fmt.Errorf("effect %s: %w", cfg.Name, err)
	}

	t := Template{
		Name:        cfg.Name,
		Pattern:     pattern,
		Count:       cfg.Count,
		Even:        cfg.Even,
		Direction:   cfg.Direction,
		Spread:      cfg.Spread,
		PaletteMode: PaletteMode(cfg.PaletteMode),
		Shape:       shape,
		GlowChance:  cfg.GlowChance,
		GlyphChance: cfg.GlyphChance,
		Glyphs:      cfg.Glyphs,
		Interval:    time.Duration(cfg.IntervalMs) * time.Millisecond,
		Waves:       cfg.Waves,
	}

	fields := []struct {
		name string
		src  string
		dst  *Range
		def  Range
	}{
		{"angle", cfg.Angle, &t.Angle, Between(0, 360)},
		{"speed", cfg.Speed, &t.Speed, Between(1, 3)},
		{"size", cfg.Size, &t.Size, Between(2, 4)},
		{"life", cfg.Life, &t.Life, Fixed(1)},
		{"gravity", cfg.Gravity, &t.Gravity, Fixed(0)},
		{"decay", cfg.Decay, &t.Decay, Fixed(components.DefaultDecay)},
		{"rotationSpeed", cfg.RotationSpeed, &t.RotationSpeed, Fixed(0)},
		{"waveRadius", cfg.WaveRadius, &t.WaveRadius, Fixed(0)},
		{"jitter", cfg.Jitter, &t.Jitter, Fixed(0)},
	}
	for _, f := range fields {
		if f.src == "" {
			*f.dst = f.def
			continue
		}
		min, max, err := particle.ParseValue(f.src)
		if err != nil {
			return Template{}, fmt.Errorf("effect %s: %s: %w", cfg.Name, f.name, err)
		}
		*f.dst = Between(min, max)
	}

	for _, s := range cfg.Palette {
		c, err := particle.ParseColor(s)
		if err != nil {
			return Template{}, fmt.Errorf("effect %s: palette: %w", cfg.Name, err)
		}
		t.Palette = append(t.Palette, c)
	}

	if t.PathFrom, err = vecFromSlice(cfg.From); err != nil {
		return Template{}, fmt.Errorf("effect %s: from: %w", cfg.Name, err)
	}
	if t.PathTo, err = vecFromSlice(cfg.To); err != nil {
		return Template{}, fmt.Errorf("effect %s: to: %w", cfg.Name, err)
	}

	if t.PaletteMode == "" {
		t.PaletteMode = PaletteAlternate
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func vecFromSlice(v []float64) (Vec, error) {
	switch len(v) {
	case 0:
		return Vec{}, nil
	case 2:
		return Vec{X: v[0], Y: v[1]}, nil
	}
	return Vec{}, fmt.Errorf("expected [dx, dy], got %v", v)
}

// TemplatesFromFile converts every effect of a recipe file.
func TemplatesFromFile(file *particle.RecipeFile) ([]Template, error) {
	out := make([]Template, 0, len(file.Effects))
	for _, cfg := range file.Effects {
		t, err := FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadTemplates reads a recipe file and converts every effect in it.
func LoadTemplates(path string) ([]Template, error) {
	file, err := particle.LoadRecipeFile(path)
	if err != nil {
		return nil, err
	}
	templates, err := TemplatesFromFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return templates, nil
}
