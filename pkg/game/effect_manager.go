package game

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gonewx/combatfx/pkg/components"
	"github.com/gonewx/combatfx/pkg/ecs"
	"github.com/gonewx/combatfx/pkg/effects"
	"github.com/gonewx/combatfx/pkg/glyph"
	"github.com/gonewx/combatfx/pkg/surface"
	"github.com/gonewx/combatfx/pkg/systems"
)

// DefaultFrameInterval is the simulated time one Tick advances the burst
// scheduler by.
const DefaultFrameInterval = time.Second / 60

// SurfaceFactory creates the drawing surface when the manager is initialized.
type SurfaceFactory func(width, height int) surface.Surface

// EffectManager owns the live particle collection, the burst scheduler and
// the drawing surface, and advances and draws them once per frame.
//
// All mutation happens under one mutex held for a single batch: one trigger,
// one AddParticle, one Tick or one Render. Recipes must create particles
// through the Emitter they are given; calling back into the manager from a
// recipe would deadlock.
type EffectManager struct {
	mu sync.Mutex

	entities  *ecs.EntityManager
	particles *systems.ParticleSystem
	renderer  *systems.RenderSystem
	scheduler *effects.Scheduler
	registry  *effects.Registry
	atlas     *glyph.Atlas

	newSurface    SurfaceFactory
	surface       surface.Surface
	container     Container
	initialized   bool
	rng           *rand.Rand
	frameInterval time.Duration
	observer      Observer

	tick       uint64
	invocation uint64
	spawned    int

	// 渲染期间收集的缺失图标，解锁后通知 observer
	missingGlyphs []string
}

// Option configures an EffectManager.
type Option func(*EffectManager)

// WithRegistry uses r instead of the builtin catalog.
func WithRegistry(r *effects.Registry) Option {
	return func(m *EffectManager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithAtlas sets the glyph atlas.
func WithAtlas(a *glyph.Atlas) Option {
	return func(m *EffectManager) {
		if a != nil {
			m.atlas = a
		}
	}
}

// WithSurfaceFactory sets the drawing backend.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(m *EffectManager) {
		if f != nil {
			m.newSurface = f
		}
	}
}

// WithSeed makes every random draw reproducible.
func WithSeed(seed uint64) Option {
	return func(m *EffectManager) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithFrameInterval sets how much scheduler time one Tick represents.
func WithFrameInterval(d time.Duration) Option {
	return func(m *EffectManager) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

// WithObserver sets the diagnostics observer.
func WithObserver(o Observer) Option {
	return func(m *EffectManager) {
		if o != nil {
			m.observer = o
		}
	}
}

// NewEffectManager creates an uninitialized manager.
func NewEffectManager(opts ...Option) *EffectManager {
	m := &EffectManager{
		entities:      ecs.NewEntityManager(),
		scheduler:     effects.NewScheduler(),
		frameInterval: DefaultFrameInterval,
		newSurface: func(w, h int) surface.Surface {
			return surface.NewRecorder(w, h)
		},
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = effects.NewDefaultRegistry()
	}
	if m.atlas == nil {
		m.atlas = glyph.Default()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	m.particles = systems.NewParticleSystem(m.entities)
	m.renderer = systems.NewRenderSystem(m.entities, m.atlas)
	m.renderer.OnMissingGlyph = func(key string) {
		m.missingGlyphs = append(m.missingGlyphs, key)
	}
	return m
}

// Initialize binds a surface sized to c. Calling it again while initialized
// is a no-op. If c is nil or cannot be measured the manager stays
// uninitialized and later calls are accepted as no-ops.
func (m *EffectManager) Initialize(c Container) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return true
	}
	if c == nil {
		log.Printf("[EffectManager] no container, staying uninitialized")
		return false
	}
	w, h, ok := c.Bounds()
	if !ok || w <= 0 || h <= 0 {
		log.Printf("[EffectManager] container not measurable (%dx%d), staying uninitialized", w, h)
		return false
	}

	m.surface = m.newSurface(w, h)
	m.container = c
	m.initialized = true
	log.Printf("[EffectManager] initialized %dx%d surface", w, h)
	return true
}

// Initialized reports whether a surface is bound.
func (m *EffectManager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// AddParticle appends a particle built from params at (x, y).
func (m *EffectManager) AddParticle(x, y float64, params components.ParticleParams) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.addLocked(x, y, params, nil)
}

// TriggerEffect runs the named recipe at (x, y). Immediate creations are in
// the live collection when it returns; staggered ones appear on later ticks.
// An unknown name creates nothing.
func (m *EffectManager) TriggerEffect(name string, x, y float64) {
	ran, found, immediate := m.trigger(name, x, y)
	if !ran {
		return
	}
	obs := m.currentObserver()
	if !found {
		obs.UnknownEffect(name)
		return
	}
	obs.EffectTriggered(name, x, y, immediate)
}

func (m *EffectManager) trigger(name string, x, y float64) (ran, found bool, immediate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return false, false, 0
	}

	m.invocation++
	inv := &invocation{m: m, name: name, id: m.invocation}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EffectManager] recipe %q panicked: %v", name, r)
			ran, found, immediate = true, true, inv.count
		}
	}()

	found = m.registry.Trigger(inv, name, x, y)
	return true, found, inv.count
}

func (m *EffectManager) currentObserver() Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.observer
}

// Tick advances the scheduler by one frame interval, running every due
// creation, then advances every particle and culls the expired ones.
func (m *EffectManager) Tick() {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return
	}

	fired := m.scheduler.Advance(m.frameInterval)
	us := m.particles.Update()
	m.tick++

	stats := TickStats{
		Tick:        m.tick,
		Clock:       m.scheduler.Now(),
		BurstsFired: fired,
		Spawned:     m.spawned,
		Culled:      us.Culled,
		Live:        us.Live,
		Pending:     m.scheduler.Pending(),
	}
	m.spawned = 0
	obs := m.observer
	m.mu.Unlock()

	obs.Ticked(stats)
}

// Render clears the surface and paints every live particle in creation order.
func (m *EffectManager) Render() {
	m.mu.Lock()
	if !m.initialized || m.surface == nil {
		m.mu.Unlock()
		return
	}
	stats := m.renderer.Draw(m.surface)
	missing := m.missingGlyphs
	m.missingGlyphs = nil
	obs := m.observer
	m.mu.Unlock()

	for _, key := range missing {
		obs.MissingGlyph(key)
	}
	obs.Rendered(stats)
}

// Frame runs one Tick followed by one Render.
func (m *EffectManager) Frame() {
	m.Tick()
	m.Render()
}

// Attach registers Frame with the host driver.
func (m *EffectManager) Attach(d Driver) {
	d.OnTick(m.Frame)
}

// Resize changes the surface pixel size. Particle positions are world
// coordinates and are not touched.
func (m *EffectManager) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == nil || width <= 0 || height <= 0 {
		return
	}
	m.surface.Resize(width, height)
}

// HandleContainerResize re-queries the container and resizes the surface.
func (m *EffectManager) HandleContainerResize() {
	m.mu.Lock()
	c := m.container
	m.mu.Unlock()
	if c == nil {
		return
	}
	if w, h, ok := c.Bounds(); ok {
		m.Resize(w, h)
	}
}

// ParticleCount returns the number of live particles.
func (m *EffectManager) ParticleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entities.Count()
}

// Particles returns a copy of the live particles in paint order.
func (m *EffectManager) Particles() []components.ParticleComponent {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](m.entities)
	out := make([]components.ParticleComponent, 0, len(ids))
	for _, id := range ids {
		if p, ok := ecs.GetComponent[*components.ParticleComponent](m.entities, id); ok {
			out = append(out, *p)
		}
	}
	return out
}

// Tags returns the effect tag of every live particle in paint order.
func (m *EffectManager) Tags() []components.EffectTagComponent {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.EffectTagComponent](m.entities)
	out := make([]components.EffectTagComponent, 0, len(ids))
	for _, id := range ids {
		if tag, ok := ecs.GetComponent[*components.EffectTagComponent](m.entities, id); ok {
			out = append(out, *tag)
		}
	}
	return out
}

// PendingBursts returns the number of scheduled creations not yet run.
func (m *EffectManager) PendingBursts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduler.Pending()
}

// Clear drops every particle and pending burst but keeps the surface.
func (m *EffectManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler.Reset()
	m.entities.Clear()
}

// Teardown drops every particle, invalidates every pending burst series and
// unbinds the surface. The manager can be initialized again afterwards.
func (m *EffectManager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler.Reset()
	m.entities.Clear()
	m.surface = nil
	m.container = nil
	m.initialized = false
	log.Printf("[EffectManager] torn down")
}

// Registry returns the recipe registry, for registering new effects.
func (m *EffectManager) Registry() *effects.Registry {
	return m.registry
}

// Atlas returns the glyph atlas.
func (m *EffectManager) Atlas() *glyph.Atlas {
	return m.atlas
}

// Surface returns the bound surface, or nil when uninitialized.
func (m *EffectManager) Surface() surface.Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surface
}

// addLocked creates one particle entity. The caller holds m.mu.
func (m *EffectManager) addLocked(x, y float64, params components.ParticleParams, inv *invocation) {
	id := m.entities.CreateEntity()
	m.entities.AddComponent(id, components.NewParticle(x, y, params))
	if inv != nil {
		m.entities.AddComponent(id, &components.EffectTagComponent{
			Effect:     inv.name,
			Invocation: inv.id,
			Index:      inv.count,
		})
		inv.count++
	}
	m.spawned++
}

// invocation is the Emitter handed to a recipe for one TriggerEffect call.
// Its scheduled callbacks run inside Tick, where m.mu is already held.
type invocation struct {
	m     *EffectManager
	name  string
	id    uint64
	count int
}

func (inv *invocation) AddParticle(x, y float64, params components.ParticleParams) {
	// 拆除后残留的回调不再生成粒子
	if !inv.m.initialized {
		return
	}
	inv.m.addLocked(x, y, params, inv)
}

func (inv *invocation) ScheduleSeries(n int, interval time.Duration, fn func(i int)) *effects.Series {
	return inv.m.scheduler.ScheduleSeries(n, interval, fn)
}

func (inv *invocation) Rand() *rand.Rand {
	return inv.m.rng
}
