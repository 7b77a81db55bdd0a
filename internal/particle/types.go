// Package particle provides data structures and parsing functionality for
// combat effect recipe files.
//
// A recipe file is YAML with a list of effects. Numeric fields keep the
// string form used by the file so a value may be written as a fixed number
// ("4") or as a closed range ("[2 5]"); they are parsed when the recipe is
// turned into an effect template.
package particle

// RecipeFile represents the root structure of a recipe file.
type RecipeFile struct {
	Effects []RecipeConfig `yaml:"effects"`
}

// RecipeConfig describes one named effect.
type RecipeConfig struct {
	// Name is the case-sensitive effect identifier
	Name string `yaml:"name"`

	// Spawn pattern (发射模式)
	Pattern string `yaml:"pattern"`         // instant-radial, instant-directional, staggered-line, staggered-radial-wave
	Count   int    `yaml:"count"`           // particles per burst (per ring for radial waves)
	Angle   string `yaml:"angle,omitempty"` // degrees, radial patterns
	Even    bool   `yaml:"even,omitempty"`  // evenly spaced angles instead of random

	Direction float64 `yaml:"direction,omitempty"` // degrees, directional and line patterns
	Spread    float64 `yaml:"spread,omitempty"`    // ± degrees around direction

	// Particle properties (粒子属性)
	Speed         string   `yaml:"speed,omitempty"`
	Size          string   `yaml:"size,omitempty"`
	Palette       []string `yaml:"palette"`
	PaletteMode   string   `yaml:"paletteMode,omitempty"` // alternate or random
	Life          string   `yaml:"life,omitempty"`
	Gravity       string   `yaml:"gravity,omitempty"`
	Decay         string   `yaml:"decay,omitempty"`
	Shape         string   `yaml:"shape,omitempty"`
	RotationSpeed string   `yaml:"rotationSpeed,omitempty"`

	GlowChance  float64  `yaml:"glowChance,omitempty"`
	GlyphChance float64  `yaml:"glyphChance,omitempty"`
	Glyphs      []string `yaml:"glyphs,omitempty"`

	// Staggered patterns (延迟发射)
	IntervalMs int       `yaml:"intervalMs,omitempty"`
	Waves      int       `yaml:"waves,omitempty"`
	WaveRadius string    `yaml:"waveRadius,omitempty"`
	From       []float64 `yaml:"from,omitempty"` // [dx, dy] offset of the line start
	To         []float64 `yaml:"to,omitempty"`   // [dx, dy] offset of the line end
	Jitter     string    `yaml:"jitter,omitempty"`
}
