package entity

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/ecs/system"
	"github.com/milk9111/outpost/player"
	"github.com/milk9111/outpost/prefabs"
)

// NewPickups builds the level's pickups and a system that feeds them to p.
func NewPickups(w *ecs.World, specs []prefabs.PickupSpec, p *player.Player, text system.TextSink, logger *log.Logger) *system.PickupSystem {
	pickups := make([]*component.Pickup, 0, len(specs))
	for _, s := range specs {
		pk := component.NewPickup(component.PickupKind(s.Kind), s.Amount, s.Position, s.Radius)
		pk.RespawnSeconds = s.RespawnSeconds
		pickups = append(pickups, pk)
		w.CreateEntity()
	}
	return system.NewPickupSystem(pickups, p, p, text, w.Events(), logger)
}
