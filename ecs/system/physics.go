package system

import (
	"github.com/milk9111/outpost/ecs"
)

// PhysicsSystem steps the world's physics space once per tick so queries
// issued in the next tick see reindexed bodies.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.PhysicsWorld().Step(w.DT())
}
