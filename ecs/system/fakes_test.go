package system

import (
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

const (
	targetCollider component.ColliderID = 42
	wallCollider   component.ColliderID = 7
)

type fakeTarget struct {
	pos      common.Vec3
	dead     bool
	collider component.ColliderID
	damage   []float64
	drains   map[string]float64
	stopped  []string
}

func newFakeTarget(pos common.Vec3) *fakeTarget {
	return &fakeTarget{pos: pos, collider: targetCollider, drains: map[string]float64{}}
}

func (t *fakeTarget) Position() common.Vec3               { return t.pos }
func (t *fakeTarget) LookAnchor() common.Vec3             { return t.pos }
func (t *fakeTarget) Died() bool                          { return t.dead }
func (t *fakeTarget) ColliderID() component.ColliderID    { return t.collider }
func (t *fakeTarget) TakeDamage(amount float64)           { t.damage = append(t.damage, amount) }
func (t *fakeTarget) DrainResource(src string, r float64) { t.drains[src] = r }
func (t *fakeTarget) StopDraining(src string) {
	delete(t.drains, src)
	t.stopped = append(t.stopped, src)
}

// fakeRays hits the target unless occluded, in which case a wall half a
// unit in front of the origin is hit first.
type fakeRays struct {
	target   *fakeTarget
	occluded bool
	calls    int
}

func (r *fakeRays) Raycast(origin, dir common.Vec3, maxDistance float64) (component.RaycastHit, bool) {
	r.calls++
	if r.occluded {
		return component.RaycastHit{Point: origin.Add(dir.Scale(0.5)), Collider: wallCollider, Distance: 0.5}, true
	}
	if r.target == nil {
		return component.RaycastHit{}, false
	}
	d := common.Distance(origin, r.target.LookAnchor())
	if d > maxDistance {
		return component.RaycastHit{}, false
	}
	return component.RaycastHit{Point: r.target.LookAnchor(), Collider: r.target.collider, Distance: d}, true
}

type fakeNav struct {
	pos        common.Vec3
	fwd        common.Vec3
	dest       common.Vec3
	hasDest    bool
	destCalls  int
	resets     int
	offSurface bool
	enabled    bool
}

func newFakeNav() *fakeNav {
	return &fakeNav{fwd: common.V3(0, 0, 1), enabled: true}
}

func (n *fakeNav) Position() common.Vec3 { return n.pos }
func (n *fakeNav) Forward() common.Vec3  { return n.fwd }
func (n *fakeNav) SetDestination(p common.Vec3) {
	n.dest = p
	n.hasDest = true
	n.destCalls++
}
func (n *fakeNav) ResetPath() {
	n.hasDest = false
	n.resets++
}
func (n *fakeNav) IsOnNavigableSurface() bool { return !n.offSurface }
func (n *fakeNav) Enabled() bool              { return n.enabled }
func (n *fakeNav) SetEnabled(enabled bool)    { n.enabled = enabled }
func (n *fakeNav) Warp(p common.Vec3) {
	n.pos = p
	n.hasDest = false
}

type fakeText struct {
	texts []string
}

func (f *fakeText) SetText(text string) { f.texts = append(f.texts, text) }

func (f *fakeText) last() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakeBody struct {
	moves  map[component.ColliderID]common.Vec3
	active map[component.ColliderID]bool
}

func newFakeBody() *fakeBody {
	return &fakeBody{moves: map[component.ColliderID]common.Vec3{}, active: map[component.ColliderID]bool{}}
}

func (b *fakeBody) MoveActor(id component.ColliderID, pos common.Vec3) { b.moves[id] = pos }
func (b *fakeBody) SetActorActive(id component.ColliderID, active bool) {
	b.active[id] = active
}

type fakeDecider struct {
	decision PursuitDecision
	inputs   []PursuitInput
}

func (d *fakeDecider) Decide(in PursuitInput) (PursuitDecision, error) {
	d.inputs = append(d.inputs, in)
	return d.decision, nil
}

func soldierArchetype() *component.Archetype {
	return &component.Archetype{
		Name:      "soldier",
		MaxHealth: 100,
		MoveSpeed: 3,
		Perception: component.PerceptionConfig{
			VisionAngleDegrees: 45,
			VisionRange:        7,
		},
		Combat: component.CombatConfig{
			HasWeapon:             true,
			AttackDamage:          10,
			AttackRange:           7,
			AttackCooldownSeconds: 1,
		},
		ChaseDistance: 10,
		StopDistance:  2,
		DrainRate:     5,
	}
}
