package ecs

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/ecs/component"
)

// Damageable is anything a weapon can hurt once its collider is hit.
type Damageable interface {
	TakeDamage(amount float64)
}

// World owns entity handles, the simulation clock and the system order.
type World struct {
	entities  entityStore
	scheduler *Scheduler
	logger    *log.Logger

	now  float64
	dt   float64
	tick uint64

	damageables map[component.ColliderID]Damageable
	events      EventQueue
	physics     *PhysicsWorld
}

// NewWorld creates an empty world. A nil logger falls back to the default logger.
func NewWorld(logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		scheduler:   NewScheduler(),
		logger:      logger,
		damageables: make(map[component.ColliderID]Damageable),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity invalidates an entity handle. It returns false for stale handles.
func (w *World) DestroyEntity(e Entity) bool {
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

// Systems returns the update order.
func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// Update advances the clock by dt seconds and runs all systems once.
func (w *World) Update(dt float64) {
	if w == nil || dt < 0 {
		return
	}
	w.dt = dt
	w.now += dt
	w.tick++
	w.scheduler.Update(w)
}

// Now is the simulation time in seconds.
func (w *World) Now() float64 {
	return w.now
}

// DT is the length of the current tick in seconds.
func (w *World) DT() float64 {
	return w.dt
}

// Tick is the number of completed updates.
func (w *World) Tick() uint64 {
	return w.tick
}

// Logger returns the world logger.
func (w *World) Logger() *log.Logger {
	return w.logger
}

// RegisterDamageable maps a collider to the thing that takes damage when it is hit.
func (w *World) RegisterDamageable(id component.ColliderID, d Damageable) {
	if id == 0 || d == nil {
		return
	}
	w.damageables[id] = d
}

func (w *World) UnregisterDamageable(id component.ColliderID) {
	delete(w.damageables, id)
}

// Damageable resolves a collider hit.
func (w *World) Damageable(id component.ColliderID) (Damageable, bool) {
	d, ok := w.damageables[id]
	return d, ok
}

// Events returns the world event queue. Events accumulate until drained.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physics = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}
