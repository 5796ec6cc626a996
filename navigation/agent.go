package navigation

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
)

// Agent follows grid paths toward a destination at a fixed speed.
type Agent struct {
	grid   *Grid
	logger *log.Logger
	speed  float64

	position common.Vec3
	forward  common.Vec3
	enabled  bool

	destination common.Vec3
	hasDest     bool
	goalCell    gridPos
	path        []common.Vec3
}

// NewAgent places an agent on the grid facing forward.
func NewAgent(grid *Grid, pos, forward common.Vec3, speed float64, logger *log.Logger) *Agent {
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{
		grid:     grid,
		logger:   logger.With("module", "navigation"),
		speed:    speed,
		position: pos,
		forward:  forward.Planar().Normalize(),
		enabled:  true,
	}
}

func (a *Agent) Position() common.Vec3 {
	return a.position
}

// Forward is the planar heading of the last movement.
func (a *Agent) Forward() common.Vec3 {
	return a.forward
}

func (a *Agent) Enabled() bool {
	return a.enabled
}

func (a *Agent) SetEnabled(enabled bool) {
	a.enabled = enabled
	if !enabled {
		a.ResetPath()
	}
}

// Path returns the remaining waypoints.
func (a *Agent) Path() []common.Vec3 {
	return append([]common.Vec3(nil), a.path...)
}

// Destination returns the current destination, if any.
func (a *Agent) Destination() (common.Vec3, bool) {
	return a.destination, a.hasDest
}

// SetDestination plans a path. Re-planning is skipped while the destination
// stays in the same cell and a path is still being followed.
func (a *Agent) SetDestination(p common.Vec3) {
	if !a.enabled || a.grid == nil {
		return
	}
	cell := a.grid.cell(p)
	if a.hasDest && cell == a.goalCell && len(a.path) > 0 {
		a.destination = p
		a.path[len(a.path)-1] = p
		return
	}

	a.destination = p
	a.hasDest = true
	a.goalCell = cell
	a.path = a.grid.FindPath(a.position, p)
	if a.path == nil {
		a.logger.Debug("no path", "from", a.position, "to", p)
	}
}

// ResetPath drops the destination and any in-flight path.
func (a *Agent) ResetPath() {
	a.path = nil
	a.hasDest = false
}

// IsOnNavigableSurface reports whether the agent stands on an open cell.
func (a *Agent) IsOnNavigableSurface() bool {
	return a.grid != nil && a.grid.Walkable(a.position)
}

// Warp teleports the agent and clears its path.
func (a *Agent) Warp(p common.Vec3) {
	a.position = p
	a.ResetPath()
}

// Step moves the agent along its path for dt seconds.
func (a *Agent) Step(dt float64) {
	if !a.enabled || dt <= 0 || a.speed <= 0 {
		return
	}
	budget := a.speed * dt
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		next.Y = a.position.Y
		delta := next.Sub(a.position)
		dist := delta.Len()
		if dist > common.Epsilon {
			a.forward = delta.Planar().Normalize()
		}
		if dist <= budget {
			a.position = next
			a.path = a.path[1:]
			budget -= dist
			continue
		}
		a.position = common.MoveTowards(a.position, next, budget)
		budget = 0
	}
}
