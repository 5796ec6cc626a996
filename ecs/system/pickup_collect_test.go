package system

import (
	"testing"

	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealer struct {
	full   bool
	healed []float64
}

func (h *fakeHealer) Heal(amount float64) error {
	if h.full {
		return component.ErrFullHealth
	}
	h.healed = append(h.healed, amount)
	return nil
}

type fakeAmmo struct {
	rounds int
}

func (a *fakeAmmo) AddAmmo(rounds int) error {
	a.rounds += rounds
	return nil
}

func TestPickupInteract(t *testing.T) {
	health := component.NewPickup(component.PickupHealth, 25, common.V3(1, 0, 0), 1.5)
	ammo := component.NewPickup(component.PickupAmmo, 12, common.V3(10, 0, 0), 1.5)
	healer := &fakeHealer{}
	rounds := &fakeAmmo{}
	text := &fakeText{}
	events := &ecs.EventQueue{}
	sys := NewPickupSystem([]*component.Pickup{health, ammo}, healer, rounds, text, events, quietLogger())

	_, err := sys.Interact(common.V3(5, 0, 0))
	assert.ErrorIs(t, err, component.ErrNothingNear)
	assert.ErrorIs(t, err, component.ErrInvalidOperation)

	got, err := sys.Interact(common.V3(0, 0, 0))
	require.NoError(t, err)
	assert.Same(t, health, got)
	assert.True(t, health.Collected)
	assert.Equal(t, []float64{25}, healer.healed)
	assert.Equal(t, "+25 health", text.last())
	require.Equal(t, 1, events.Len())

	_, err = sys.Interact(common.V3(0, 0, 0))
	assert.ErrorIs(t, err, component.ErrNothingNear)

	_, err = sys.Interact(common.V3(10.5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 12, rounds.rounds)
}

func TestPickupRejectedEffectIsNotConsumed(t *testing.T) {
	health := component.NewPickup(component.PickupHealth, 25, common.Vec3{}, 1.5)
	healer := &fakeHealer{full: true}
	text := &fakeText{}
	sys := NewPickupSystem([]*component.Pickup{health}, healer, nil, text, nil, quietLogger())

	_, err := sys.Interact(common.Vec3{})
	assert.ErrorIs(t, err, component.ErrFullHealth)
	assert.False(t, health.Collected)
	assert.Equal(t, "Health is full", text.last())

	healer.full = false
	_, err = sys.Interact(common.Vec3{})
	require.NoError(t, err)
	assert.True(t, health.Collected)
}

func TestPickupNearestWins(t *testing.T) {
	far := component.NewPickup(component.PickupAmmo, 6, common.V3(1, 0, 0), 2)
	near := component.NewPickup(component.PickupAmmo, 6, common.V3(0.5, 0, 0), 2)
	sys := NewPickupSystem([]*component.Pickup{far, near}, nil, &fakeAmmo{}, nil, nil, quietLogger())

	got, ok := sys.Nearest(common.Vec3{})
	require.True(t, ok)
	assert.Same(t, near, got)
}

func TestPickupRespawns(t *testing.T) {
	p := component.NewPickup(component.PickupAmmo, 6, common.Vec3{}, 1)
	p.RespawnSeconds = 1
	w := ecs.NewWorld(quietLogger())
	sys := NewPickupSystem([]*component.Pickup{p}, nil, &fakeAmmo{}, nil, nil, quietLogger())
	w.AddSystem(sys)

	w.Update(0.5)
	_, err := sys.Interact(common.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.CollectedAt)

	w.Update(0.5)
	assert.True(t, p.Collected)
	w.Update(0.5)
	assert.False(t, p.Collected)
}
