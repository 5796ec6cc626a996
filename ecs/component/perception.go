package component

// PerceptionConfig describes an archetype's vision cone. VisionAngleDegrees
// is measured from the forward vector to the cone edge.
type PerceptionConfig struct {
	VisionAngleDegrees float64
	VisionRange        float64
	EyeHeight          float64
}
