package systems

import (
	"math"
	"testing"

	"github.com/gonewx/combatfx/pkg/components"
	"github.com/gonewx/combatfx/pkg/ecs"
)

func spawn(em *ecs.EntityManager, x, y float64, params components.ParticleParams) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, components.NewParticle(x, y, params))
	return id
}

func TestParticleSystem_FiniteLife(t *testing.T) {
	tests := []struct {
		name    string
		maxLife float64
		decay   float64
	}{
		{"default", 1, 0.02},
		{"exact tenth", 1, 0.1},
		{"third", 1, 1.0 / 3},
		{"long", 2.5, 0.015},
		{"single tick", 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			ps := NewParticleSystem(em)
			spawn(em, 0, 0, components.ParticleParams{Size: 1, MaxLife: tt.maxLife, Decay: tt.decay})

			bound := int(math.Ceil(tt.maxLife / tt.decay))
			ticks := 0
			for em.Count() > 0 {
				ps.Update()
				ticks++
				if ticks > bound {
					t.Fatalf("particle still alive after %d ticks, bound %d", ticks, bound)
				}
			}
		})
	}
}

func TestParticleSystem_AlphaBounded(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	for i := 0; i < 20; i++ {
		spawn(em, 0, 0, components.ParticleParams{
			Size:    2,
			Life:    float64(i) * 0.1,
			MaxLife: 1,
			Decay:   0.013 * float64(i+1),
		})
	}

	for em.Count() > 0 {
		for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
			p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
			if p.Alpha < 0 || p.Alpha > 1 {
				t.Fatalf("alpha %v out of [0, 1]", p.Alpha)
			}
		}
		ps.Update()
	}
}

func TestParticleSystem_DegenerateCulledFirstTick(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	spawn(em, 1, 1, components.ParticleParams{Size: 2, MaxLife: 0})
	live := spawn(em, 2, 2, components.ParticleParams{Size: 2, MaxLife: 1})

	stats := ps.Update()
	if stats.Culled != 1 || stats.Live != 1 {
		t.Errorf("stats = %+v, want 1 culled 1 live", stats)
	}
	if !em.Exists(live) {
		t.Error("healthy particle should survive")
	}
}

func TestParticleSystem_PreservesOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)

	var want []ecs.EntityID
	for i := 0; i < 10; i++ {
		decay := 0.1
		if i%3 == 0 {
			decay = 2 // 第一个 tick 就过期
		}
		id := spawn(em, float64(i), 0, components.ParticleParams{Size: 1, MaxLife: 1, Decay: decay})
		if i%3 != 0 {
			want = append(want, id)
		}
	}

	ps.Update()
	got := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	if len(got) != len(want) {
		t.Fatalf("survivors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("survivor %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestParticleSystem_Integration(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	id := spawn(em, 10, 20, components.ParticleParams{
		VX: 1, VY: -2, Size: 1, MaxLife: 1, Decay: 0.25, Gravity: 0.5, RotationSpeed: 0.1,
	})

	ps.Update()
	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	if math.Abs(p.X-10.98) > 1e-9 || math.Abs(p.Y-18.5) > 1e-9 {
		t.Errorf("position = (%v, %v), want (10.98, 18.5)", p.X, p.Y)
	}
	if p.Alpha != 0.75 {
		t.Errorf("alpha = %v, want 0.75", p.Alpha)
	}
}
