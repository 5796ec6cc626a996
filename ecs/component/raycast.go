package component

import "github.com/milk9111/outpost/common"

// RaycastHit is the first collider a ray touched.
type RaycastHit struct {
	Point    common.Vec3
	Collider ColliderID
	Distance float64
}
