package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
)

// Healer accepts health pickups.
type Healer interface {
	Heal(amount float64) error
}

// AmmoReceiver accepts ammo pickups.
type AmmoReceiver interface {
	AddAmmo(rounds int) error
}

// PickupEvent is the payload of ecs.EventPickup.
type PickupEvent struct {
	Kind   component.PickupKind
	Amount float64
}

// PickupSystem owns the level's interactable pickups.
type PickupSystem struct {
	pickups []*component.Pickup
	healer  Healer
	ammo    AmmoReceiver
	text    TextSink
	events  *ecs.EventQueue
	logger  *log.Logger
	now     float64
}

func NewPickupSystem(pickups []*component.Pickup, healer Healer, ammo AmmoReceiver, text TextSink, events *ecs.EventQueue, logger *log.Logger) *PickupSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &PickupSystem{
		pickups: pickups,
		healer:  healer,
		ammo:    ammo,
		text:    text,
		events:  events,
		logger:  logger.With("module", "pickup"),
	}
}

// Pickups returns every pickup, collected or not.
func (s *PickupSystem) Pickups() []*component.Pickup {
	return s.pickups
}

// Update brings collected pickups back once their respawn time has passed.
func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.now = w.Now()
	for _, p := range s.pickups {
		if p.Collected && p.RespawnSeconds > 0 && s.now-p.CollectedAt >= p.RespawnSeconds {
			p.Collected = false
			s.logger.Debug("pickup respawned", "kind", p.Kind, "id", p.ID)
		}
	}
}

// Nearest returns the closest available pickup whose radius covers pos.
func (s *PickupSystem) Nearest(pos common.Vec3) (*component.Pickup, bool) {
	var best *component.Pickup
	bestDist := 0.0
	for _, p := range s.pickups {
		if p.Collected {
			continue
		}
		d := common.PlanarDistance(pos, p.Position)
		if d > p.Radius {
			continue
		}
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, best != nil
}

// Interact collects the nearest pickup in reach. A pickup whose effect is
// rejected stays in the level.
func (s *PickupSystem) Interact(pos common.Vec3) (*component.Pickup, error) {
	p, ok := s.Nearest(pos)
	if !ok {
		return nil, component.ErrNothingNear
	}

	var err error
	switch p.Kind {
	case component.PickupHealth:
		if s.healer == nil {
			err = fmt.Errorf("health pickup: %w", component.ErrMissingDependency)
			break
		}
		err = s.healer.Heal(p.Amount)
	case component.PickupAmmo:
		if s.ammo == nil {
			err = fmt.Errorf("ammo pickup: %w", component.ErrMissingDependency)
			break
		}
		err = s.ammo.AddAmmo(int(p.Amount))
	default:
		err = fmt.Errorf("pickup kind %q: %w", p.Kind, component.ErrInvalidOperation)
	}
	if err != nil {
		s.logger.Warn("pickup rejected", "kind", p.Kind, "err", err)
		if s.text != nil && errors.Is(err, component.ErrInvalidOperation) {
			s.text.SetText(rejectText(err))
		}
		return p, err
	}

	p.Collected = true
	p.CollectedAt = s.now
	if s.text != nil {
		s.text.SetText(fmt.Sprintf("+%g %s", p.Amount, p.Kind))
	}
	s.events.Push(ecs.Event{Type: ecs.EventPickup, Data: PickupEvent{Kind: p.Kind, Amount: p.Amount}})
	s.logger.Info("pickup collected", "kind", p.Kind, "amount", p.Amount)
	return p, nil
}

func rejectText(err error) string {
	switch {
	case errors.Is(err, component.ErrFullHealth):
		return "Health is full"
	case errors.Is(err, component.ErrReserveFull):
		return "Ammo is full"
	default:
		return "Can't use that"
	}
}
