package ecs

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

const (
	categoryWall  uint = 1 << 0
	categoryActor uint = 1 << 1
)

// Box is an axis-aligned wall footprint on the ground plane. Walls are
// treated as infinitely tall for occlusion.
type Box struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// Contains reports whether the planar point lies inside the box.
func (b Box) Contains(p common.Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

type actorBody struct {
	body    *cp.Body
	shape   *cp.Shape
	radius  float64
	inSpace bool
}

// PhysicsWorld owns the Chipmunk space used for line-of-sight and collision
// queries. The simulation is 3D but occluders are vertical, so queries run in
// the XZ plane: world X maps to cp X and world Z maps to cp Y.
type PhysicsWorld struct {
	space  *cp.Space
	logger *log.Logger

	walls         []Box
	nextCollider  component.ColliderID
	shapeCollider map[*cp.Shape]component.ColliderID
	actors        map[component.ColliderID]*actorBody
}

// NewPhysicsWorld creates a physics world with static wall shapes.
func NewPhysicsWorld(walls []Box, logger *log.Logger) *PhysicsWorld {
	if logger == nil {
		logger = log.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 10

	pw := &PhysicsWorld{
		space:         space,
		logger:        logger.With("module", "physics"),
		shapeCollider: make(map[*cp.Shape]component.ColliderID),
		actors:        make(map[component.ColliderID]*actorBody),
	}
	for _, wall := range walls {
		pw.AddWall(wall)
	}
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Walls returns the static wall footprints.
func (pw *PhysicsWorld) Walls() []Box {
	if pw == nil {
		return nil
	}
	return append([]Box(nil), pw.walls...)
}

func (pw *PhysicsWorld) allocCollider() component.ColliderID {
	pw.nextCollider++
	return pw.nextCollider
}

// AddWall adds a static occluder and returns its collider id.
func (pw *PhysicsWorld) AddWall(b Box) component.ColliderID {
	if b.MaxX < b.MinX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MaxZ < b.MinZ {
		b.MinZ, b.MaxZ = b.MaxZ, b.MinZ
	}
	id := pw.allocCollider()
	shape := cp.NewBox2(pw.space.StaticBody, cp.BB{L: b.MinX, B: b.MinZ, R: b.MaxX, T: b.MaxZ}, 0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryWall, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.shapeCollider[shape] = id
	pw.walls = append(pw.walls, b)
	return id
}

// AddActor creates a kinematic circle body for an actor and returns its collider id.
func (pw *PhysicsWorld) AddActor(pos common.Vec3, radius float64) component.ColliderID {
	if radius <= 0 {
		radius = 0.4
	}
	id := pw.allocCollider()
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(collisionTypeActor)
	// Each actor is its own group so its rays can skip its own body.
	shape.SetFilter(cp.NewShapeFilter(uint(id), categoryActor, cp.ALL_CATEGORIES))
	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.shapeCollider[shape] = id
	pw.actors[id] = &actorBody{body: body, shape: shape, radius: radius, inSpace: true}
	return id
}

// MoveActor teleports an actor body. The shape is re-inserted so queries in
// the same tick see the new position without waiting for a Step.
func (pw *PhysicsWorld) MoveActor(id component.ColliderID, pos common.Vec3) {
	a, ok := pw.actors[id]
	if !ok {
		return
	}
	a.body.SetPosition(toCP(pos))
	if a.inSpace {
		pw.space.RemoveShape(a.shape)
		pw.space.AddShape(a.shape)
	}
}

// SetActorActive adds or removes an actor from queries. Inactive actors keep
// their collider id so they can be re-enabled on respawn.
func (pw *PhysicsWorld) SetActorActive(id component.ColliderID, active bool) {
	a, ok := pw.actors[id]
	if !ok || a.inSpace == active {
		return
	}
	if active {
		pw.space.AddBody(a.body)
		pw.space.AddShape(a.shape)
	} else {
		pw.space.RemoveShape(a.shape)
		pw.space.RemoveBody(a.body)
	}
	a.inSpace = active
}

// ActorPosition returns the current position of an actor body on the ground plane.
func (pw *PhysicsWorld) ActorPosition(id component.ColliderID) (common.Vec3, bool) {
	a, ok := pw.actors[id]
	if !ok {
		return common.Vec3{}, false
	}
	return fromCP(a.body.Position(), 0), true
}

// Step advances the Chipmunk space.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Raycast returns the first collider along the ray, walls and actors alike.
func (pw *PhysicsWorld) Raycast(origin, dir common.Vec3, maxDistance float64) (component.RaycastHit, bool) {
	return pw.raycast(origin, dir, maxDistance, cp.SHAPE_FILTER_ALL)
}

// Ignoring returns a raycaster that never reports the given collider, so an
// actor's rays do not stop at its own body.
func (pw *PhysicsWorld) Ignoring(id component.ColliderID) RayQuery {
	return RayQuery{world: pw, filter: cp.NewShapeFilter(uint(id), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)}
}

// RayQuery is a raycaster bound to a shape filter.
type RayQuery struct {
	world  *PhysicsWorld
	filter cp.ShapeFilter
}

func (q RayQuery) Raycast(origin, dir common.Vec3, maxDistance float64) (component.RaycastHit, bool) {
	if q.world == nil {
		return component.RaycastHit{}, false
	}
	return q.world.raycast(origin, dir, maxDistance, q.filter)
}

func (pw *PhysicsWorld) raycast(origin, dir common.Vec3, maxDistance float64, filter cp.ShapeFilter) (component.RaycastHit, bool) {
	if pw == nil || pw.space == nil || maxDistance <= 0 {
		return component.RaycastHit{}, false
	}
	dir = dir.Normalize()
	if dir.Planar().IsZero() {
		return component.RaycastHit{}, false
	}
	end := origin.Add(dir.Scale(maxDistance))
	info := pw.space.SegmentQueryFirst(toCP(origin), toCP(end), 0, filter)
	if info.Shape == nil {
		return component.RaycastHit{}, false
	}
	id, ok := pw.shapeCollider[info.Shape]
	if !ok {
		pw.logger.Debug("raycast hit unregistered shape")
		return component.RaycastHit{}, false
	}
	dist := maxDistance * info.Alpha
	return component.RaycastHit{
		Point:    origin.Add(dir.Scale(dist)),
		Collider: id,
		Distance: dist,
	}, true
}

// Blocked reports whether a circle of the given radius at p overlaps a wall.
func (pw *PhysicsWorld) Blocked(p common.Vec3, radius float64) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryWall)
	info := pw.space.PointQueryNearest(toCP(p), radius, filter)
	return info != nil && info.Shape != nil
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromCP(v cp.Vector, y float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: y, Z: v.Y}
}
