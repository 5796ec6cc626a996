package system

import (
	"testing"

	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/stretchr/testify/assert"
)

func combatFixture() (*component.Enemy, *fakeTarget, *fakeRays, component.PerceptionConfig, component.CombatConfig) {
	e := &component.Enemy{Forward: common.V3(0, 0, 1), Active: true}
	target := newFakeTarget(common.V3(0, 0, 5))
	rays := &fakeRays{target: target}
	perception := component.PerceptionConfig{VisionAngleDegrees: 45, VisionRange: 7}
	cfg := component.CombatConfig{HasWeapon: true, AttackDamage: 10, AttackRange: 6, AttackCooldownSeconds: 1}
	return e, target, rays, perception, cfg
}

func TestTryAttackCooldown(t *testing.T) {
	e, target, rays, perception, cfg := combatFixture()

	assert.Equal(t, component.AttackHit, TryAttack(e, target, perception, cfg, 0, rays))
	assert.Equal(t, component.AttackNotReady, TryAttack(e, target, perception, cfg, 0.5, rays))
	assert.Equal(t, component.AttackHit, TryAttack(e, target, perception, cfg, 1.0, rays))
	assert.Equal(t, []float64{10, 10}, target.damage)
}

func TestTryAttackNeverFiresTwiceWithinCooldown(t *testing.T) {
	e, target, rays, perception, cfg := combatFixture()
	cfg.AttackCooldownSeconds = 0.75

	lastHit := -1.0
	for now := 0.0; now < 5; now += 0.05 {
		if TryAttack(e, target, perception, cfg, now, rays) == component.AttackHit {
			if lastHit >= 0 {
				assert.GreaterOrEqual(t, now-lastHit, cfg.AttackCooldownSeconds-1e-9)
			}
			lastHit = now
		}
	}
	assert.NotEmpty(t, target.damage)
}

func TestTryAttackPreconditionOrder(t *testing.T) {
	cases := []struct {
		name  string
		setup func(e *component.Enemy, target *fakeTarget, rays *fakeRays, cfg *component.CombatConfig)
		want  component.AttackResult
	}{
		{"no_weapon_before_cooldown", func(e *component.Enemy, _ *fakeTarget, _ *fakeRays, cfg *component.CombatConfig) {
			cfg.HasWeapon = false
			e.NextFireTime = 10
		}, component.AttackNoWeapon},
		{"cooldown_before_dead_target", func(e *component.Enemy, target *fakeTarget, _ *fakeRays, _ *component.CombatConfig) {
			e.NextFireTime = 10
			target.dead = true
		}, component.AttackNotReady},
		{"dead_target_misses", func(_ *component.Enemy, target *fakeTarget, _ *fakeRays, _ *component.CombatConfig) {
			target.dead = true
		}, component.AttackMiss},
		{"outside_angle", func(_ *component.Enemy, target *fakeTarget, _ *fakeRays, _ *component.CombatConfig) {
			target.pos = common.V3(5, 0, 0)
		}, component.AttackOutOfRange},
		{"outside_attack_range_inside_vision", func(_ *component.Enemy, target *fakeTarget, _ *fakeRays, _ *component.CombatConfig) {
			target.pos = common.V3(0, 0, 6.5)
		}, component.AttackOutOfRange},
		{"occluded", func(_ *component.Enemy, _ *fakeTarget, rays *fakeRays, _ *component.CombatConfig) {
			rays.occluded = true
		}, component.AttackMiss},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, target, rays, perception, cfg := combatFixture()
			c.setup(e, target, rays, &cfg)
			before := e.NextFireTime
			assert.Equal(t, c.want, TryAttack(e, target, perception, cfg, 0, rays))
			assert.Empty(t, target.damage)
			assert.Equal(t, before, e.NextFireTime)
		})
	}
}
