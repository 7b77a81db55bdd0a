package systems

import (
	"github.com/gonewx/combatfx/pkg/components"
	"github.com/gonewx/combatfx/pkg/ecs"
)

// ParticleSystem advances every live particle by one tick and culls the
// expired ones.
//
// Particles are advanced in creation order and survivors keep their relative
// order, which is also their paint order.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
}

// UpdateStats summarises one Update call.
type UpdateStats struct {
	Advanced int // particles advanced this tick
	Culled   int // particles removed this tick
	Live     int // particles left after the tick
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{EntityManager: em}
}

// Update applies one integration step to every particle.
func (ps *ParticleSystem) Update() UpdateStats {
	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager)

	var stats UpdateStats
	for _, id := range ids {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		if !ok {
			continue
		}
		stats.Advanced++
		if !p.Advance() {
			ps.EntityManager.DestroyEntity(id)
		}
	}

	stats.Culled = ps.EntityManager.RemoveMarkedEntities()
	stats.Live = stats.Advanced - stats.Culled
	return stats
}
