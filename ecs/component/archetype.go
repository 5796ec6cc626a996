package component

import (
	"fmt"
)

// PursuitPolicy decides what a chasing enemy does while the target is out of
// sight but still inside the chase distance.
type PursuitPolicy string

const (
	// PursuitPersist keeps straight-line pursuit of the target's live position.
	PursuitPersist PursuitPolicy = "persist"
	// PursuitRecheck heads for the last seen position and gives up on arrival
	// if line of sight has not been regained.
	PursuitRecheck PursuitPolicy = "recheck"
	// PursuitScript defers the decision to a tengo script.
	PursuitScript PursuitPolicy = "script"
)

// Archetype is the immutable configuration shared by every enemy spawned
// from it. Agents hold a pointer; reloading replaces the pointer, never the value.
type Archetype struct {
	Name       string
	MaxHealth  float64
	MoveSpeed  float64
	Stationary bool

	Perception PerceptionConfig
	Combat     CombatConfig

	ChaseDistance     float64
	StopDistance      float64
	WaypointTolerance float64
	DrainRate         float64

	Pursuit       PursuitPolicy
	PursuitScript string

	// SweepDegrees and SweepSpeed oscillate a stationary observer's yaw
	// around its spawn yaw while it is not chasing.
	SweepDegrees float64
	SweepSpeed   float64

	FSM string
}

// Validate checks cross-field constraints and fills defaults.
func (a *Archetype) Validate() error {
	if a == nil {
		return fmt.Errorf("archetype: nil")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype: missing name")
	}
	if a.MaxHealth <= 0 {
		return fmt.Errorf("archetype %s: max_health must be positive", a.Name)
	}
	if a.Perception.VisionRange <= 0 {
		return fmt.Errorf("archetype %s: vision_range must be positive", a.Name)
	}
	if a.Perception.VisionAngleDegrees <= 0 || a.Perception.VisionAngleDegrees > 180 {
		return fmt.Errorf("archetype %s: vision_angle must be in (0, 180]", a.Name)
	}
	if a.ChaseDistance == 0 {
		a.ChaseDistance = a.Perception.VisionRange * 1.5
	}
	if a.ChaseDistance < a.Perception.VisionRange {
		return fmt.Errorf("archetype %s: chase_distance %.2f is below vision_range %.2f", a.Name, a.ChaseDistance, a.Perception.VisionRange)
	}
	if a.WaypointTolerance <= 0 {
		a.WaypointTolerance = DefaultWaypointTolerance
	}
	if a.Combat.HasWeapon && a.Combat.AttackCooldownSeconds < 0 {
		return fmt.Errorf("archetype %s: attack_cooldown must not be negative", a.Name)
	}
	switch a.Pursuit {
	case "":
		a.Pursuit = PursuitPersist
	case PursuitPersist, PursuitRecheck:
	case PursuitScript:
		if a.PursuitScript == "" {
			return fmt.Errorf("archetype %s: pursuit script policy needs pursuit_script", a.Name)
		}
	default:
		return fmt.Errorf("archetype %s: unknown pursuit policy %q", a.Name, a.Pursuit)
	}
	return nil
}
