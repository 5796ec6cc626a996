package component

import "github.com/milk9111/outpost/common"

// PatrolRoute is an ordered loop of waypoints. Routes are shared read-only;
// each enemy keeps only its own cursor.
type PatrolRoute []common.Vec3

// DefaultWaypointTolerance is the planar distance at which a waypoint counts as reached.
const DefaultWaypointTolerance = 0.5
