package component

import (
	"github.com/google/uuid"
	"github.com/milk9111/outpost/common"
)

// Enemy is the mutable per-agent state. It is owned by exactly one controller.
type Enemy struct {
	ID   uuid.UUID
	Name string

	// State is the label shown to the player. Mode is the behavioral branch
	// the tick logic runs; they differ only while State is StateDamage.
	State StateID
	Mode  StateID

	Health        float64
	SpawnPosition common.Vec3
	SpawnYaw      float64
	Position      common.Vec3
	Forward       common.Vec3
	PatrolIndex   int
	HasSeenTarget bool
	NextFireTime  float64

	// LastSeenPosition is where the target was when it was last visible.
	LastSeenPosition common.Vec3
	LastSeenTime     float64

	Active   bool
	Disabled bool
}

// NewEnemy creates an enemy at its spawn point with full health.
func NewEnemy(name string, archetype *Archetype, spawn common.Vec3, yaw float64) *Enemy {
	e := &Enemy{
		ID:            uuid.New(),
		Name:          name,
		SpawnPosition: spawn,
		SpawnYaw:      yaw,
		Position:      spawn,
		Forward:       common.YawForward(yaw),
		Active:        true,
	}
	if archetype != nil {
		e.Health = archetype.MaxHealth
	}
	return e
}

// Alive reports whether the enemy takes part in the simulation.
func (e *Enemy) Alive() bool {
	return e != nil && e.Active && e.State != StateDead
}

// EyePosition is where vision rays start.
func (e *Enemy) EyePosition(p PerceptionConfig) common.Vec3 {
	return e.Position.Add(common.Vec3{Y: p.EyeHeight})
}
