package glyph

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/combatfx/pkg/embedded"
)

// File is the YAML layout of a glyph atlas file.
type File struct {
	Glyphs map[string]string `yaml:"glyphs"`
}

// ParseYAML parses a glyph atlas from YAML data.
func ParseYAML(data []byte) (*Atlas, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse glyph YAML: %w", err)
	}
	if len(f.Glyphs) == 0 {
		return nil, fmt.Errorf("glyph file defines no glyphs")
	}
	return NewAtlas(f.Glyphs)
}

// LoadFile loads a glyph atlas (embedded data first, then disk) and merges
// it over the builtin one.
func LoadFile(path string) (*Atlas, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glyph file %s: %w", path, err)
	}
	a, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Default().Merge(a), nil
}
