package prefabs

import (
	"fmt"

	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/navigation"
	"github.com/milk9111/outpost/player"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PerceptionSpec struct {
	VisionAngle float64 `yaml:"vision_angle"`
	VisionRange float64 `yaml:"vision_range"`
	EyeHeight   float64 `yaml:"eye_height"`
}

type CombatSpec struct {
	HasWeapon      bool    `yaml:"has_weapon"`
	AttackDamage   float64 `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

// ArchetypeSpec is the YAML shape of an enemy archetype.
type ArchetypeSpec struct {
	Name              string         `yaml:"name"`
	MaxHealth         float64        `yaml:"max_health"`
	MoveSpeed         float64        `yaml:"move_speed"`
	Stationary        bool           `yaml:"stationary"`
	Perception        PerceptionSpec `yaml:"perception"`
	Combat            CombatSpec     `yaml:"combat"`
	ChaseDistance     float64        `yaml:"chase_distance"`
	StopDistance      float64        `yaml:"stop_distance"`
	WaypointTolerance float64        `yaml:"waypoint_tolerance"`
	DrainRate         float64        `yaml:"drain_rate"`
	Pursuit           string         `yaml:"pursuit"`
	PursuitScript     string         `yaml:"pursuit_script"`
	SweepDegrees      float64        `yaml:"sweep_degrees"`
	SweepSpeed        float64        `yaml:"sweep_speed"`
	FSM               string         `yaml:"fsm"`
}

// Archetype converts and validates the spec.
func (s ArchetypeSpec) Archetype() (*component.Archetype, error) {
	a := &component.Archetype{
		Name:       s.Name,
		MaxHealth:  s.MaxHealth,
		MoveSpeed:  s.MoveSpeed,
		Stationary: s.Stationary,
		Perception: component.PerceptionConfig{
			VisionAngleDegrees: s.Perception.VisionAngle,
			VisionRange:        s.Perception.VisionRange,
			EyeHeight:          s.Perception.EyeHeight,
		},
		Combat: component.CombatConfig{
			HasWeapon:             s.Combat.HasWeapon,
			AttackDamage:          s.Combat.AttackDamage,
			AttackRange:           s.Combat.AttackRange,
			AttackCooldownSeconds: s.Combat.AttackCooldown,
		},
		ChaseDistance:     s.ChaseDistance,
		StopDistance:      s.StopDistance,
		WaypointTolerance: s.WaypointTolerance,
		DrainRate:         s.DrainRate,
		Pursuit:           component.PursuitPolicy(s.Pursuit),
		PursuitScript:     s.PursuitScript,
		SweepDegrees:      s.SweepDegrees,
		SweepSpeed:        s.SweepSpeed,
		FSM:               s.FSM,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func LoadArchetypeSpec(filename string) (ArchetypeSpec, error) {
	return LoadSpec[ArchetypeSpec](filename)
}

func LoadPlayerSpec(filename string) (player.Config, error) {
	return LoadSpec[player.Config](filename)
}

type SpawnSpec struct {
	Position common.Vec3 `yaml:"position"`
	Yaw      float64     `yaml:"yaw"`
}

type EnemySpawnSpec struct {
	Name      string         `yaml:"name"`
	Archetype string         `yaml:"archetype"`
	Position  common.Vec3    `yaml:"position"`
	Yaw       float64        `yaml:"yaw"`
	Route     string         `yaml:"route"`
	Overrides map[string]any `yaml:"overrides"`
}

type PickupSpec struct {
	Kind           string      `yaml:"kind"`
	Amount         float64     `yaml:"amount"`
	Position       common.Vec3 `yaml:"position"`
	Radius         float64     `yaml:"radius"`
	RespawnSeconds float64     `yaml:"respawn_seconds"`
}

// LevelSpec is the layout of one level.
type LevelSpec struct {
	Name     string                   `yaml:"name"`
	Bounds   navigation.Bounds        `yaml:"bounds"`
	CellSize float64                  `yaml:"cell_size"`
	Walls    []ecs.Box                `yaml:"walls"`
	Player   SpawnSpec                `yaml:"player"`
	Routes   map[string][]common.Vec3 `yaml:"routes"`
	Enemies  []EnemySpawnSpec         `yaml:"enemies"`
	Pickups  []PickupSpec             `yaml:"pickups"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return spec, err
	}
	for _, e := range spec.Enemies {
		if e.Route != "" {
			if _, ok := spec.Routes[e.Route]; !ok {
				return spec, fmt.Errorf("prefabs: level %s: enemy %s: unknown route %q", spec.Name, e.Name, e.Route)
			}
		}
	}
	for i, p := range spec.Pickups {
		switch component.PickupKind(p.Kind) {
		case component.PickupHealth, component.PickupAmmo:
		default:
			return spec, fmt.Errorf("prefabs: level %s: pickup %d: unknown kind %q", spec.Name, i, p.Kind)
		}
	}
	return spec, nil
}
