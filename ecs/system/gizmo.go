package system

import (
	"image/color"

	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
	"golang.org/x/image/colornames"
)

type GizmoKind int

const (
	GizmoLine GizmoKind = iota
	GizmoCircle
)

// Gizmo is a debug primitive on the ground plane for an external renderer.
type Gizmo struct {
	Kind   GizmoKind
	From   common.Vec3
	To     common.Vec3
	Radius float64
	Color  color.RGBA
}

func stateColor(s component.StateID) color.RGBA {
	switch s {
	case component.StateChase:
		return colornames.Red
	case component.StateDamage:
		return colornames.Orange
	case component.StateDead:
		return colornames.Dimgray
	case component.StateNormal:
		return colornames.Lightskyblue
	default:
		return colornames.Yellow
	}
}

// PathProvider is implemented by navigators that expose their remaining path.
type PathProvider interface {
	Path() []common.Vec3
}

// Gizmos returns the vision cone, route and path of the agent.
func (ai *EnemyAI) Gizmos() []Gizmo {
	e := ai.Enemy
	if e == nil || e.Disabled {
		return nil
	}
	out := make([]Gizmo, 0, 16)
	c := stateColor(e.State)
	out = append(out, Gizmo{Kind: GizmoCircle, From: e.Position, Radius: 0.4, Color: c})
	if !e.Alive() {
		return out
	}

	cfg := ai.archetype.Perception
	eye := e.Position
	fwd := e.Forward.Planar().Normalize()
	yaw := common.YawOf(fwd)
	left := common.YawForward(yaw - cfg.VisionAngleDegrees)
	right := common.YawForward(yaw + cfg.VisionAngleDegrees)
	out = append(out,
		Gizmo{Kind: GizmoLine, From: eye, To: eye.Add(left.Scale(cfg.VisionRange)), Color: c},
		Gizmo{Kind: GizmoLine, From: eye, To: eye.Add(right.Scale(cfg.VisionRange)), Color: c},
		Gizmo{Kind: GizmoLine, From: eye, To: eye.Add(fwd.Scale(cfg.VisionRange)), Color: colornames.White},
	)

	for i, wp := range ai.route {
		wc := colornames.Steelblue
		if i == e.PatrolIndex && e.Mode == component.StatePatrol {
			wc = colornames.Limegreen
		}
		out = append(out, Gizmo{Kind: GizmoCircle, From: wp, Radius: ai.archetype.WaypointTolerance, Color: wc})
	}

	if pp, ok := ai.deps.Nav.(PathProvider); ok {
		prev := e.Position
		for _, p := range pp.Path() {
			out = append(out, Gizmo{Kind: GizmoLine, From: prev, To: p, Color: colornames.Cyan})
			prev = p
		}
	}

	if e.Mode == component.StateChase {
		out = append(out, Gizmo{Kind: GizmoCircle, From: e.LastSeenPosition, Radius: 0.25, Color: colornames.Magenta})
	}
	return out
}
