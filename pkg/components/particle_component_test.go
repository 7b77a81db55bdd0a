package components

import (
	"image/color"
	"math"
	"testing"
)

func TestParticleComponent_Advance(t *testing.T) {
	p := NewParticle(10, 20, ParticleParams{
		VX:            2,
		VY:            -1,
		Size:          3,
		MaxLife:       1,
		Gravity:       0.5,
		Decay:         0.25,
		RotationSpeed: 0.1,
	})

	if !p.Advance() {
		t.Fatal("particle should survive the first tick")
	}

	if math.Abs(p.VX-1.96) > 1e-12 {
		t.Errorf("VX = %v, want 1.96", p.VX)
	}
	if p.VY != -0.5 {
		t.Errorf("VY = %v, want -0.5", p.VY)
	}
	if math.Abs(p.X-11.96) > 1e-12 || p.Y != 19.5 {
		t.Errorf("position = (%v, %v), want (11.96, 19.5)", p.X, p.Y)
	}
	if p.Life != 0.75 || p.Alpha != 0.75 {
		t.Errorf("life/alpha = %v/%v, want 0.75/0.75", p.Life, p.Alpha)
	}
	if p.Rotation != 0.1 {
		t.Errorf("rotation = %v, want 0.1", p.Rotation)
	}
}

func TestParticleComponent_FiniteLife(t *testing.T) {
	tests := []struct {
		name    string
		maxLife float64
		life    float64
		decay   float64
	}{
		{"Exact tenth", 1, 0, 0.1},
		{"Thirds", 1, 0, 1.0 / 3.0},
		{"Large life", 60, 0, 1},
		{"Started below max", 2, 1.3, 0.07},
		{"Tiny decay", 0.5, 0, 0.003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticle(0, 0, ParticleParams{Size: 1, MaxLife: tt.maxLife, Life: tt.life, Decay: tt.decay})
			limit := int(math.Ceil(tt.maxLife / tt.decay))

			ticks := 0
			for p.Advance() {
				ticks++
				if p.Alpha < 0 || p.Alpha > 1 {
					t.Fatalf("alpha %v out of [0,1] at tick %d", p.Alpha, ticks)
				}
				if ticks > limit {
					t.Fatalf("particle still alive after %d ticks (limit %d)", ticks, limit)
				}
			}
			if ticks+1 > limit {
				t.Errorf("particle died at tick %d, limit %d", ticks+1, limit)
			}
		})
	}
}

func TestNewParticle_Normalisation(t *testing.T) {
	p := NewParticle(0, 0, ParticleParams{Size: -1, MaxLife: 1, Life: 5, Decay: 0})
	if p.Size != MinSize {
		t.Errorf("size = %v, want %v", p.Size, MinSize)
	}
	if p.Decay != DefaultDecay {
		t.Errorf("decay = %v, want %v", p.Decay, DefaultDecay)
	}
	if p.Life != p.MaxLife || p.Alpha != 1 {
		t.Errorf("life %v should be clamped to maxLife %v with alpha 1, got alpha %v", p.Life, p.MaxLife, p.Alpha)
	}
}

func TestNewParticle_DegenerateLife(t *testing.T) {
	p := NewParticle(0, 0, ParticleParams{Size: 2, MaxLife: 0, Decay: 0.1, Color: color.NRGBA{R: 255, A: 255}})
	if p.Alive() {
		t.Error("particle with maxLife 0 must not be alive")
	}
	if p.Alpha != 0 {
		t.Errorf("alpha = %v, want 0", p.Alpha)
	}
	if p.Advance() {
		t.Error("Advance should report the degenerate particle as dead")
	}
	if math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
		t.Errorf("alpha must stay finite, got %v", p.Alpha)
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"", ShapeDisc, false},
		{"disc", ShapeDisc, false},
		{"square", ShapeSquare, false},
		{"triangle", ShapeTriangle, false},
		{"glyph", ShapeGlyph, false},
		{"hexagon", ShapeDisc, true},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShape(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
