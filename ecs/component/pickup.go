package component

import (
	"github.com/google/uuid"
	"github.com/milk9111/outpost/common"
)

type PickupKind string

const (
	PickupHealth PickupKind = "health"
	PickupAmmo   PickupKind = "ammo"
)

// Pickup is an interactable item placed in a level.
type Pickup struct {
	ID       uuid.UUID
	Kind     PickupKind
	Amount   float64
	Position common.Vec3
	Radius   float64

	// RespawnSeconds brings the pickup back after collection; 0 means never.
	RespawnSeconds float64
	Collected      bool
	CollectedAt    float64
}

func NewPickup(kind PickupKind, amount float64, pos common.Vec3, radius float64) *Pickup {
	if radius <= 0 {
		radius = 1.5
	}
	return &Pickup{ID: uuid.New(), Kind: kind, Amount: amount, Position: pos, Radius: radius}
}
