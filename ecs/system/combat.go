package system

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// TryAttack fires at the target if every precondition holds, in order:
// weapon, cooldown, target alive, cone angle, attack range, line of sight.
// Only a hit starts the cooldown.
func TryAttack(e *component.Enemy, target Target, perception component.PerceptionConfig, cfg component.CombatConfig, now float64, rays Raycaster) component.AttackResult {
	if !cfg.HasWeapon {
		return component.AttackNoWeapon
	}
	if now < e.NextFireTime {
		return component.AttackNotReady
	}
	if target == nil || target.Died() {
		return component.AttackMiss
	}

	eye := e.EyePosition(perception)
	toTarget := target.LookAnchor().Sub(eye)
	if common.AngleBetween(e.Forward, toTarget.Normalize()) > perception.VisionAngleDegrees {
		return component.AttackOutOfRange
	}
	if toTarget.Len() > cfg.AttackRange {
		return component.AttackOutOfRange
	}
	if !LineOfSight(eye, target, cfg.AttackRange, rays) {
		return component.AttackMiss
	}

	target.TakeDamage(cfg.AttackDamage)
	e.NextFireTime = now + cfg.AttackCooldownSeconds
	return component.AttackHit
}
