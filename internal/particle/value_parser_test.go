package particle

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

// TestParseValue_FixedValue tests parsing of fixed value format
func TestParseValue_FixedValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Integer", "1500", 1500, 1500},
		{"Float", "3.14", 3.14, 3.14},
		{"Negative", "-10.5", -10.5, -10.5},
		{"Zero", "0", 0, 0},
		{"Whitespace", "  .5 ", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.input, err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseValue(%q) = [%v %v], want [%v %v]", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

// TestParseValue_Range tests parsing of range format
func TestParseValue_Range(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Float range", "[0.7 0.9]", 0.7, 0.9},
		{"Integer range", "[10 20]", 10, 20},
		{"Negative range", "[-5 -2]", -5, -2},
		{"Single value", "[5]", 5, 5},
		{"Degenerate range", "[3 3]", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.input, err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseValue(%q) = [%v %v], want [%v %v]", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestParseValue_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "[1 2 3]", "[5 1]", "[1 2", "1 2]", "[a b]", "[]"} {
		t.Run(input, func(t *testing.T) {
			if _, _, err := ParseValue(input); err == nil {
				t.Errorf("ParseValue(%q) expected error", input)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
		err   bool
	}{
		{"#ff4444", color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}, false},
		{"#ffaa00", color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}, false},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{"ff4444", color.NRGBA{}, true},
		{"#ff44", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRandomInRange 验证采样值始终落在闭区间内
func TestRandomInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		v := RandomInRange(r, 2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("RandomInRange(2, 5) = %v out of range", v)
		}
	}

	if v := RandomInRange(r, 7, 7); v != 7 {
		t.Errorf("RandomInRange(7, 7) = %v, want 7", v)
	}
	if v := RandomInRange(r, 9, 1); v != 9 {
		t.Errorf("RandomInRange(9, 1) = %v, want min", v)
	}
	if v := RandomInRange(nil, 0, 1); v < 0 || v > 1 {
		t.Errorf("RandomInRange(nil) = %v out of range", v)
	}
}

func TestRandomInRange_Deterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 42))
	b := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < 10; i++ {
		if RandomInRange(a, 0, 100) != RandomInRange(b, 0, 100) {
			t.Fatal("same seed should produce the same samples")
		}
	}
}
