package effects

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/gonewx/combatfx/pkg/components"
)

// Emitter is what a recipe creates particles through.
// The effect manager hands an Emitter to the recipe for the duration of one
// trigger; scheduled callbacks receive the same emitter when they fire.
type Emitter interface {
	// AddParticle appends a particle built from already sampled params.
	AddParticle(x, y float64, params components.ParticleParams)
	// ScheduleSeries runs fn(i) i*interval from now, for i in [0, n).
	ScheduleSeries(n int, interval time.Duration, fn func(i int)) *Series
	// Rand is the random source recipes sample from.
	Rand() *rand.Rand
}

// Recipe generates the particle bursts of one effect at an origin.
type Recipe interface {
	Spawn(e Emitter, x, y float64)
}

// RecipeFunc adapts a function to Recipe.
type RecipeFunc func(e Emitter, x, y float64)

func (f RecipeFunc) Spawn(e Emitter, x, y float64) {
	f(e, x, y)
}

// MissHandler is notified when an unknown effect is triggered.
type MissHandler func(name string)

// Registry maps case-sensitive effect names to recipes.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
	onMiss  MissHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]Recipe)}
}

// NewDefaultRegistry creates a registry holding the builtin catalog.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.RegisterTemplates(DefaultTemplates()...); err != nil {
		panic(fmt.Sprintf("effects: invalid builtin catalog: %v", err))
	}
	return r
}

// SetMissHandler sets the callback for unknown effect names.
func (r *Registry) SetMissHandler(h MissHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onMiss = h
}

// Register inserts or replaces the recipe for name.
func (r *Registry) Register(name string, recipe Recipe) {
	if name == "" || recipe == nil {
		log.Printf("[EffectRegistry] ignoring registration with empty name or nil recipe (%q)", name)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[name] = recipe
}

// RegisterFunc registers a plain function as a recipe.
func (r *Registry) RegisterFunc(name string, fn func(e Emitter, x, y float64)) {
	if fn == nil {
		r.Register(name, nil)
		return
	}
	r.Register(name, RecipeFunc(fn))
}

// RegisterTemplates validates every template and registers its executor.
// Nothing is registered if any template is invalid.
func (r *Registry) RegisterTemplates(templates ...Template) error {
	executors := make([]*Executor, 0, len(templates))
	for _, t := range templates {
		x, err := NewExecutor(t)
		if err != nil {
			return err
		}
		executors = append(executors, x)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range executors {
		r.recipes[x.tmpl.Name] = x
	}
	return nil
}

// LoadFiles registers the effects of each recipe file in order, later files
// overriding earlier names. It stops at the first file that fails; files
// before it stay registered.
func (r *Registry) LoadFiles(paths ...string) (int, error) {
	n := 0
	for _, path := range paths {
		templates, err := LoadTemplates(path)
		if err != nil {
			return n, err
		}
		if err := r.RegisterTemplates(templates...); err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		n += len(templates)
		log.Printf("[EffectRegistry] loaded %d effects from %s", len(templates), path)
	}
	return n, nil
}

// Unregister removes name and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.recipes[name]
	delete(r.recipes, name)
	return ok
}

// Lookup returns the recipe registered for name.
func (r *Registry) Lookup(name string) (Recipe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[name]
	return recipe, ok
}

// Trigger runs the recipe for name at (x, y) and reports whether it exists.
// An unknown name creates nothing; it is logged and passed to the miss handler.
func (r *Registry) Trigger(e Emitter, name string, x, y float64) bool {
	r.mu.RLock()
	recipe, ok := r.recipes[name]
	onMiss := r.onMiss
	r.mu.RUnlock()

	if !ok {
		log.Printf("[EffectRegistry] unknown effect %q", name)
		if onMiss != nil {
			onMiss(name)
		}
		return false
	}

	recipe.Spawn(e, x, y)
	return true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered recipes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}
