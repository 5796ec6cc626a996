package system

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// InCone reports whether point lies within maxRange of eye and within
// angleDegrees of forward. It does not test occlusion.
func InCone(eye, forward, point common.Vec3, angleDegrees, maxRange float64) bool {
	toPoint := point.Sub(eye)
	dist := toPoint.Len()
	if dist > maxRange || dist < common.Epsilon {
		return false
	}
	return common.AngleBetween(forward, toPoint.Normalize()) <= angleDegrees
}

// LineOfSight reports whether the first collider along the ray from eye to
// the target's look anchor is the target itself.
func LineOfSight(eye common.Vec3, target Target, maxRange float64, rays Raycaster) bool {
	if target == nil || rays == nil {
		return false
	}
	dir := target.LookAnchor().Sub(eye).Normalize()
	if dir.IsZero() {
		return false
	}
	hit, ok := rays.Raycast(eye, dir, maxRange)
	if !ok {
		return false
	}
	return hit.Collider != 0 && hit.Collider == target.ColliderID()
}

// IsVisible is the per-tick vision predicate: range first, then the cone
// angle, then a first-hit line of sight ray. It keeps no memory between ticks.
func IsVisible(eye, forward common.Vec3, target Target, cfg component.PerceptionConfig, rays Raycaster) bool {
	if target == nil {
		return false
	}
	if !InCone(eye, forward, target.LookAnchor(), cfg.VisionAngleDegrees, cfg.VisionRange) {
		return false
	}
	return LineOfSight(eye, target, cfg.VisionRange, rays)
}
