package particle

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ParseValue parses a numeric value string from a recipe file.
// Supported formats:
//   - Fixed value: "1500" → min=1500, max=1500
//   - Range: "[0.7 0.9]" → min=0.7, max=0.9
//   - Single value range: "[5]" → min=5, max=5
//
// A range whose min is greater than its max is an error.
func ParseValue(s string) (min, max float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty value")
	}

	if strings.HasPrefix(s, "[") || strings.HasSuffix(s, "]") {
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return 0, 0, fmt.Errorf("unbalanced range %q", s)
		}
		rangeStr := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(rangeStr)
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid value %q: %w", s, err)
			}
			return v, v, nil
		case 2:
			min, err = strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid range min %q: %w", s, err)
			}
			max, err = strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid range max %q: %w", s, err)
			}
			if min > max {
				return 0, 0, fmt.Errorf("range %q has min greater than max", s)
			}
			return min, max, nil
		default:
			return 0, 0, fmt.Errorf("range %q must have one or two numbers", s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, v, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == len(s) {
		return color.NRGBA{}, fmt.Errorf("color %q must start with #", s)
	}

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("color %q must have 3, 6 or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// RandomInRange returns a random float64 in the closed range [min, max].
// A nil source falls back to the global generator.
func RandomInRange(r *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	var f float64
	if r != nil {
		f = r.Float64()
	} else {
		f = rand.Float64()
	}
	v := min + f*(max-min)
	// 浮点舍入可能略超上界
	if v > max {
		v = max
	}
	return v
}
