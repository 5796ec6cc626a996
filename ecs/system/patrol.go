package system

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// AdvancePatrol steers an enemy along its route for one tick. On arrival the
// cursor wraps to the next waypoint and the old path is cleared before the new
// destination is issued, so the agent starts moving in the same tick.
func AdvancePatrol(e *component.Enemy, route component.PatrolRoute, nav Navigator, tolerance float64) {
	if e == nil || nav == nil || len(route) == 0 {
		return
	}
	if e.PatrolIndex < 0 || e.PatrolIndex >= len(route) {
		e.PatrolIndex = 0
	}
	if tolerance <= 0 {
		tolerance = component.DefaultWaypointTolerance
	}

	dest := route[e.PatrolIndex]
	if common.PlanarDistance(nav.Position(), dest) < tolerance {
		e.PatrolIndex = (e.PatrolIndex + 1) % len(route)
		nav.ResetPath()
		dest = route[e.PatrolIndex]
	}
	nav.SetDestination(dest)
}
