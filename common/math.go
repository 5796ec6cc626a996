package common

import "math"

// Vec3 is a world-space point or direction. Y is up; the ground plane is XZ.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Planar drops the vertical component.
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) IsZero() bool {
	return v.Len() < Epsilon
}

const Epsilon = 1e-9

// AngleBetween returns the unsigned angle between a and b in degrees.
// A zero-length input yields 0.
func AngleBetween(a, b Vec3) float64 {
	la := a.Len()
	lb := b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// Distance is the 3D distance between two points.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

// PlanarDistance is the distance between two points on the ground plane.
func PlanarDistance(a, b Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// MoveTowards steps from current toward target by at most maxStep.
func MoveTowards(current, target Vec3, maxStep float64) Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxStep || dist < Epsilon {
		return target
	}
	return current.Add(delta.Scale(maxStep / dist))
}

// YawForward returns the planar unit forward vector for a yaw in degrees.
// Yaw 0 faces +Z, 90 faces +X.
func YawForward(yawDegrees float64) Vec3 {
	r := yawDegrees * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// YawOf is the inverse of YawForward for a planar vector.
func YawOf(f Vec3) float64 {
	return math.Atan2(f.X, f.Z) * 180 / math.Pi
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
