package entity

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/player"
	"github.com/milk9111/outpost/prefabs"
)

// NewPlayer places the player's body in the physics world and wires its gun
// to the world's damageable registry.
func NewPlayer(w *ecs.World, physics *ecs.PhysicsWorld, cfg player.Config, spawn prefabs.SpawnSpec, logger *log.Logger) *player.Player {
	radius := cfg.Move.Radius
	if radius <= 0 {
		radius = actorRadius
	}
	collider := physics.AddActor(spawn.Position, radius)
	w.CreateEntity()
	return player.New(cfg, spawn.Position, spawn.Yaw, collider, player.Options{
		Walls:   physics,
		Body:    physics,
		Rays:    physics.Ignoring(collider),
		Targets: w,
		Logger:  logger,
	})
}
