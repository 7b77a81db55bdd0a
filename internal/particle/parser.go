package particle

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/combatfx/pkg/embedded"
)

// ParseRecipeYAML parses recipe file content.
//
// Example:
//
//	effects:
//	  - name: hit
//	    pattern: instant-radial
//	    count: 30
//	    size: "[2 5]"
//	    palette: ["#ff4444", "#ffaa00"]
func ParseRecipeYAML(data []byte) (*RecipeFile, error) {
	var file RecipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse recipe YAML: %w", err)
	}

	if len(file.Effects) == 0 {
		return nil, fmt.Errorf("recipe file contains no effects")
	}

	seen := make(map[string]bool, len(file.Effects))
	for i, e := range file.Effects {
		if e.Name == "" {
			return nil, fmt.Errorf("effect #%d has no name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("effect %q defined more than once", e.Name)
		}
		seen[e.Name] = true
	}

	return &file, nil
}

// LoadRecipeFile reads a recipe file from the embedded FS when it has been
// initialized and the path lives under data/, otherwise from disk.
func LoadRecipeFile(path string) (*RecipeFile, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file %s: %w", path, err)
	}

	file, err := ParseRecipeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}
