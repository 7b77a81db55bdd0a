package game

import (
	"fmt"
	"log"

	"github.com/gonewx/combatfx/pkg/config"
	"github.com/gonewx/combatfx/pkg/effects"
	"github.com/gonewx/combatfx/pkg/glyph"
)

// NewEffectManagerFromConfig builds a manager from an engine config: the
// builtin catalog overlaid with cfg.RecipeFiles, the glyph file merged over
// the builtin atlas, the seed and the frame interval. Options passed in opts
// are applied last.
func NewEffectManagerFromConfig(cfg *config.EngineConfig, opts ...Option) (*EffectManager, error) {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	registry := effects.NewDefaultRegistry()
	if _, err := registry.LoadFiles(cfg.RecipeFiles...); err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	atlas := glyph.Default()
	if cfg.GlyphFile != "" {
		a, err := glyph.LoadFile(cfg.GlyphFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load glyphs: %w", err)
		}
		atlas = a
	}

	base := []Option{
		WithRegistry(registry),
		WithAtlas(atlas),
		WithFrameInterval(cfg.FrameInterval()),
	}
	if cfg.Seed != 0 {
		base = append(base, WithSeed(cfg.Seed))
	}

	m := NewEffectManager(append(base, opts...)...)
	log.Printf("[EffectManager] configured: %d effects, %d glyphs, %d fps",
		registry.Len(), atlas.Len(), cfg.FrameRate)
	return m, nil
}

// ReloadRecipes re-reads recipe files into the registry. Live particles and
// pending bursts are untouched; the next trigger uses the new definitions.
func (m *EffectManager) ReloadRecipes(paths ...string) (int, error) {
	n, err := m.registry.LoadFiles(paths...)
	if err != nil {
		log.Printf("[EffectManager] recipe reload failed: %v", err)
		return n, err
	}
	return n, nil
}
