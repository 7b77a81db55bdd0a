// Package glyph provides the read-only glyph atlas: a fixed mapping from glyph
// key to a vector path description drawn in place of a basic particle shape.
//
// Path descriptions use a small SVG-like command set in a unit box where
// (-1,-1) is the top-left and (1,1) the bottom-right corner:
//
//	M x y        move to
//	L x y        line to
//	Q cx cy x y  quadratic curve
//	C c1x c1y c2x c2y x y  cubic curve
//	Z            close
package glyph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gonewx/combatfx/pkg/surface"
)

// Atlas maps glyph keys to parsed paths. An Atlas is immutable once built.
type Atlas struct {
	paths map[string]*surface.Path
}

// NewAtlas parses every description in defs.
// Any invalid description fails the whole atlas.
func NewAtlas(defs map[string]string) (*Atlas, error) {
	a := &Atlas{paths: make(map[string]*surface.Path, len(defs))}
	for key, desc := range defs {
		if key == "" {
			return nil, fmt.Errorf("glyph atlas: empty glyph key")
		}
		p, err := ParsePath(desc)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", key, err)
		}
		a.paths[key] = p
	}
	return a, nil
}

// Lookup returns the path for key. A nil Atlas has no glyphs.
func (a *Atlas) Lookup(key string) (*surface.Path, bool) {
	if a == nil {
		return nil, false
	}
	p, ok := a.paths[key]
	return p, ok
}

// Keys returns the glyph keys in sorted order.
func (a *Atlas) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, 0, len(a.paths))
	for k := range a.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of glyphs.
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.paths)
}

// Merge returns a new atlas containing a's glyphs overridden by other's.
func (a *Atlas) Merge(other *Atlas) *Atlas {
	merged := &Atlas{paths: make(map[string]*surface.Path, a.Len()+other.Len())}
	if a != nil {
		for k, p := range a.paths {
			merged.paths[k] = p
		}
	}
	if other != nil {
		for k, p := range other.paths {
			merged.paths[k] = p
		}
	}
	return merged
}

// ParsePath parses a path description into a surface.Path.
func ParsePath(desc string) (*surface.Path, error) {
	tokens := strings.Fields(strings.ReplaceAll(desc, ",", " "))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty path description")
	}

	p := &surface.Path{}
	i := 0
	numbers := func(cmd string, n int) ([]float64, error) {
		if i+n > len(tokens) {
			return nil, fmt.Errorf("command %s needs %d numbers", cmd, n)
		}
		vals := make([]float64, n)
		for j := 0; j < n; j++ {
			v, err := strconv.ParseFloat(tokens[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("command %s: invalid number %q", cmd, tokens[i+j])
			}
			vals[j] = v
		}
		i += n
		return vals, nil
	}

	for i < len(tokens) {
		cmd := strings.ToUpper(tokens[i])
		i++
		switch cmd {
		case "M":
			v, err := numbers(cmd, 2)
			if err != nil {
				return nil, err
			}
			p.MoveTo(v[0], v[1])
		case "L":
			v, err := numbers(cmd, 2)
			if err != nil {
				return nil, err
			}
			p.LineTo(v[0], v[1])
		case "Q":
			v, err := numbers(cmd, 4)
			if err != nil {
				return nil, err
			}
			p.QuadTo(v[0], v[1], v[2], v[3])
		case "C":
			v, err := numbers(cmd, 6)
			if err != nil {
				return nil, err
			}
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		case "Z":
			p.Close()
		default:
			return nil, fmt.Errorf("unknown path command %q", tokens[i-1])
		}
	}

	if p.Segments[0].Op != surface.OpMoveTo {
		return nil, fmt.Errorf("path must start with M")
	}
	return p, nil
}
