package system

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// Raycaster answers first-hit line queries.
type Raycaster interface {
	Raycast(origin, dir common.Vec3, maxDistance float64) (component.RaycastHit, bool)
}

// Navigator turns a desired destination into incremental movement. It owns
// the agent's position while enabled.
type Navigator interface {
	Position() common.Vec3
	Forward() common.Vec3
	SetDestination(p common.Vec3)
	ResetPath()
	IsOnNavigableSurface() bool
	Enabled() bool
	SetEnabled(enabled bool)
	Warp(p common.Vec3)
}

// Target is the handle an enemy uses to perceive and hurt the player. The
// enemy never owns it.
type Target interface {
	Position() common.Vec3
	LookAnchor() common.Vec3
	Died() bool
	ColliderID() component.ColliderID
	TakeDamage(amount float64)
	DrainResource(source string, ratePerSecond float64)
	StopDraining(source string)
}

// TextSink receives fire-and-forget UI text.
type TextSink interface {
	SetText(text string)
}
