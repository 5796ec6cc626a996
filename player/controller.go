package player

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// Blocker reports whether a circle at p overlaps a wall.
type Blocker interface {
	Blocked(p common.Vec3, radius float64) bool
}

// BodyMover keeps the player's collider in sync with its position.
type BodyMover interface {
	MoveActor(id component.ColliderID, pos common.Vec3)
}

type MoveConfig struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	SprintFactor float64 `yaml:"sprint_factor"`
	SprintCost   float64 `yaml:"sprint_cost"`
	Radius       float64 `yaml:"radius"`
	TurnSpeedDeg float64 `yaml:"turn_speed"`
}

// Controller moves the player on the ground plane.
type Controller struct {
	cfg   MoveConfig
	stats *Stats
	walls Blocker
	body  BodyMover
	yaw   float64
}

func NewController(cfg MoveConfig, stats *Stats, walls Blocker, body BodyMover, yaw float64) *Controller {
	if cfg.SprintFactor <= 0 {
		cfg.SprintFactor = 1
	}
	if cfg.Radius <= 0 {
		cfg.Radius = 0.4
	}
	return &Controller{cfg: cfg, stats: stats, walls: walls, body: body, yaw: yaw}
}

// Yaw is the facing in degrees; 0 faces +Z.
func (c *Controller) Yaw() float64 {
	return c.yaw
}

func (c *Controller) Forward() common.Vec3 {
	return common.YawForward(c.yaw)
}

// Turn rotates the view by dir (-1 left, +1 right) for dt seconds.
func (c *Controller) Turn(dir, dt float64) {
	c.yaw += dir * c.cfg.TurnSpeedDeg * dt
}

// Move walks along input, given in view space (X strafe, Z forward). Each
// axis is resolved separately so the player slides along walls. It returns
// the new position.
func (c *Controller) Move(input common.Vec3, sprint bool, dt float64) common.Vec3 {
	pos := c.stats.Position()
	if c.stats.Died() || dt <= 0 {
		return pos
	}
	input = input.Planar()
	if input.Len() > 1 {
		input = input.Normalize()
	}
	if input.IsZero() {
		return pos
	}

	speed := c.cfg.MoveSpeed
	if sprint && c.stats.SpendStamina(c.cfg.SprintCost*dt) {
		speed *= c.cfg.SprintFactor
	}

	fwd := common.YawForward(c.yaw)
	right := common.YawForward(c.yaw + 90)
	delta := fwd.Scale(input.Z).Add(right.Scale(input.X)).Scale(speed * dt)

	next := pos
	if step := next.Add(common.Vec3{X: delta.X}); !c.blocked(step) {
		next = step
	}
	if step := next.Add(common.Vec3{Z: delta.Z}); !c.blocked(step) {
		next = step
	}
	if next == pos {
		return pos
	}

	c.stats.SetPosition(next)
	if c.body != nil {
		c.body.MoveActor(c.stats.ColliderID(), next)
	}
	return next
}

func (c *Controller) blocked(p common.Vec3) bool {
	return c.walls != nil && c.walls.Blocked(p, c.cfg.Radius)
}
