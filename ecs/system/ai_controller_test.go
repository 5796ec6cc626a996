package system

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollider component.ColliderID = 3

type rig struct {
	ai     *EnemyAI
	target *fakeTarget
	nav    *fakeNav
	rays   *fakeRays
	text   *fakeText
	body   *fakeBody
	events *ecs.EventQueue
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newRig(t *testing.T, arch *component.Archetype, route component.PatrolRoute, decider PursuitDecider) *rig {
	t.Helper()
	target := newFakeTarget(common.V3(0, 0, 30))
	r := &rig{
		target: target,
		nav:    newFakeNav(),
		rays:   &fakeRays{target: target},
		text:   &fakeText{},
		body:   newFakeBody(),
		events: &ecs.EventQueue{},
	}
	deps := EnemyDeps{
		Target:   target,
		Nav:      r.nav,
		Rays:     r.rays,
		Text:     r.text,
		Body:     r.body,
		Collider: testCollider,
		Pursuit:  decider,
		Events:   r.events,
		Logger:   quietLogger(),
	}
	if arch.Stationary {
		deps.Nav = nil
	}
	ai, err := NewEnemyAI("grunt", arch, common.Vec3{}, 0, route, deps)
	require.NoError(t, err)
	r.ai = ai
	return r
}

func twoPointRoute() component.PatrolRoute {
	return component.PatrolRoute{common.V3(0, 0, -10), common.V3(10, 0, -10)}
}

func (r *rig) id() string {
	return r.ai.Enemy.ID.String()
}

// spot puts the target in plain view and runs one tick so the agent chases.
func (r *rig) spot(t *testing.T, now float64) {
	t.Helper()
	r.target.pos = common.V3(0, 0, 6)
	r.ai.Tick(now)
	require.Equal(t, component.StateChase, r.ai.Enemy.Mode)
}

func TestEnemyInitialState(t *testing.T) {
	withRoute := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	assert.Equal(t, component.StatePatrol, withRoute.ai.Enemy.State)
	assert.Equal(t, "Patrol", withRoute.text.last())
	assert.Equal(t, 100.0, withRoute.ai.Enemy.Health)

	noRoute := newRig(t, soldierArchetype(), nil, nil)
	assert.Equal(t, component.StateNormal, noRoute.ai.Enemy.State)
	assert.Equal(t, "Normal", noRoute.text.last())
}

func TestEnemyPatrolsUntilTargetSeen(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)

	r.ai.Tick(0)
	assert.Equal(t, component.StatePatrol, r.ai.Enemy.State)
	assert.Equal(t, common.V3(0, 0, -10), r.nav.dest)
	assert.False(t, r.ai.Enemy.HasSeenTarget)

	r.spot(t, 0.1)
	e := r.ai.Enemy
	assert.Equal(t, component.StateChase, e.State)
	assert.Equal(t, "Chase", r.text.last())
	assert.True(t, e.HasSeenTarget)
	assert.Equal(t, 5.0, r.target.drains[r.id()])
	assert.Equal(t, common.V3(0, 0, 4), r.nav.dest)
	assert.Equal(t, []float64{10}, r.target.damage)
	assert.Equal(t, component.AttackHit, r.ai.LastAttack())

	var changes []StateChange
	for _, evt := range r.events.Drain() {
		if sc, ok := evt.Data.(StateChange); ok {
			changes = append(changes, sc)
		}
	}
	require.NotEmpty(t, changes)
	assert.Equal(t, StateChange{Enemy: "grunt", From: component.StatePatrol, To: component.StateChase}, changes[len(changes)-1])
}

func TestEnemyChaseAttacksOnCooldown(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	r.spot(t, 0)
	r.ai.Tick(0.5)
	assert.Equal(t, component.AttackNotReady, r.ai.LastAttack())
	r.ai.Tick(1.0)
	assert.Equal(t, component.AttackHit, r.ai.LastAttack())
	assert.Equal(t, []float64{10, 10}, r.target.damage)
}

func TestEnemyTargetDiesReturnsToPatrolNextTick(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	r.ai.Enemy.PatrolIndex = 1
	r.spot(t, 0)

	r.target.dead = true
	r.target.pos = common.V3(0, 0, 3)
	r.ai.Tick(0.1)

	e := r.ai.Enemy
	assert.Equal(t, component.StatePatrol, e.State)
	assert.Equal(t, component.StatePatrol, e.Mode)
	assert.Equal(t, 1, e.PatrolIndex)
	assert.Equal(t, common.V3(10, 0, -10), r.nav.dest)
	assert.False(t, e.HasSeenTarget)
	assert.Empty(t, r.target.drains)
	assert.Contains(t, r.target.stopped, r.id())
}

func TestEnemyIgnoresDeadTarget(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	r.target.dead = true
	r.target.pos = common.V3(0, 0, 6)
	r.ai.Tick(0)
	assert.Equal(t, component.StateNormal, r.ai.Enemy.State)
	assert.Zero(t, r.rays.calls)
}

func TestEnemyChaseHysteresis(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	r.spot(t, 0)

	r.target.pos = common.V3(0, 0, 8)
	r.ai.Tick(0.1)
	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
	assert.Equal(t, common.V3(0, 0, 6), r.nav.dest)
	assert.True(t, r.ai.Enemy.HasSeenTarget)

	r.target.pos = common.V3(0, 0, 11)
	r.ai.Tick(0.2)
	assert.Equal(t, component.StatePatrol, r.ai.Enemy.State)
	assert.False(t, r.ai.Enemy.HasSeenTarget)
	assert.Empty(t, r.target.drains)
	assert.Equal(t, common.V3(0, 0, -10), r.nav.dest)
}

func TestEnemyOccludedInsideChaseDistanceKeepsPursuit(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	r.spot(t, 0)

	r.rays.occluded = true
	r.target.pos = common.V3(0, 0, 5)
	r.ai.Tick(0.1)
	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
	assert.Equal(t, common.V3(0, 0, 3), r.nav.dest)
}

func TestEnemyRecheckPolicy(t *testing.T) {
	arch := soldierArchetype()
	arch.Pursuit = component.PursuitRecheck
	r := newRig(t, arch, nil, nil)
	r.spot(t, 0)

	r.target.pos = common.V3(5, 0, 6)
	r.ai.Tick(0.1)
	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
	assert.Equal(t, common.V3(0, 0, 6), r.nav.dest)

	r.nav.pos = common.V3(0, 0, 5.8)
	r.ai.Tick(0.2)
	assert.Equal(t, component.StateNormal, r.ai.Enemy.State)
}

func TestEnemyScriptPolicy(t *testing.T) {
	arch := soldierArchetype()
	arch.Pursuit = component.PursuitScript
	arch.PursuitScript = "scripts/test.tengo"
	decider := &fakeDecider{decision: DecisionGiveUp}
	r := newRig(t, arch, nil, decider)
	r.spot(t, 0)
	assert.Empty(t, decider.inputs)

	r.target.pos = common.V3(0, 0, 8)
	r.ai.Tick(0.5)
	require.Len(t, decider.inputs, 1)
	assert.InDelta(t, 8.0, decider.inputs[0].Distance, 1e-9)
	assert.InDelta(t, 0.5, decider.inputs[0].SinceSeen, 1e-9)
	assert.Equal(t, component.StateNormal, r.ai.Enemy.State)
}

func TestEnemyDamageIsLabelOnly(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	r.ai.TakeDamage(10)

	e := r.ai.Enemy
	assert.Equal(t, 90.0, e.Health)
	assert.Equal(t, component.StateDamage, e.State)
	assert.Equal(t, component.StatePatrol, e.Mode)
	assert.Equal(t, "Damage", r.text.last())

	r.ai.Tick(0)
	assert.Equal(t, component.StatePatrol, e.State)
	assert.Equal(t, common.V3(0, 0, -10), r.nav.dest)

	r.ai.TakeDamage(0)
	r.ai.TakeDamage(-5)
	assert.Equal(t, 90.0, e.Health)
}

func TestEnemyDeathAndRespawn(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	r.ai.Enemy.PatrolIndex = 1
	r.spot(t, 0)

	r.ai.TakeDamage(150)
	e := r.ai.Enemy
	assert.Equal(t, 0.0, e.Health)
	assert.Equal(t, component.StateDead, e.State)
	assert.False(t, e.Active)
	assert.False(t, e.Alive())
	assert.False(t, r.nav.enabled)
	assert.False(t, r.body.active[testCollider])
	assert.Empty(t, r.target.drains)
	assert.Equal(t, "Dead", r.text.last())

	calls := r.rays.calls
	dests := r.nav.destCalls
	r.ai.Tick(1)
	r.ai.TakeDamage(5)
	assert.Equal(t, calls, r.rays.calls)
	assert.Equal(t, dests, r.nav.destCalls)
	assert.Equal(t, 0.0, e.Health)

	r.nav.pos = common.V3(3, 0, 3)
	r.ai.Respawn()
	assert.Equal(t, 100.0, e.Health)
	assert.Equal(t, component.StatePatrol, e.State)
	assert.Equal(t, 0, e.PatrolIndex)
	assert.False(t, e.HasSeenTarget)
	assert.True(t, e.Alive())
	assert.Equal(t, common.Vec3{}, r.nav.pos)
	assert.True(t, r.nav.enabled)
	assert.True(t, r.body.active[testCollider])
	assert.Equal(t, "Patrol", r.text.last())
}

func TestEnemyRespawnWithoutRouteEntersNormal(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	r.ai.TakeDamage(100)
	require.Equal(t, component.StateDead, r.ai.Enemy.State)

	r.ai.Respawn()
	assert.Equal(t, component.StateNormal, r.ai.Enemy.State)
	assert.Equal(t, 100.0, r.ai.Enemy.Health)
}

func TestEnemyArchetypeSwapOnRespawn(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	tougher := soldierArchetype()
	tougher.MaxHealth = 250
	require.NoError(t, r.ai.SetArchetype(tougher))
	assert.Equal(t, 100.0, r.ai.Archetype().MaxHealth)

	r.ai.Respawn()
	assert.Same(t, tougher, r.ai.Archetype())
	assert.Equal(t, 250.0, r.ai.Enemy.Health)

	assert.Error(t, r.ai.SetArchetype(&component.Archetype{Name: "broken"}))
}

func TestEnemyMissingTargetIsDisabled(t *testing.T) {
	nav := newFakeNav()
	ai, err := NewEnemyAI("lonely", soldierArchetype(), common.Vec3{}, 0, twoPointRoute(), EnemyDeps{Nav: nav, Logger: quietLogger()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, component.ErrMissingDependency))
	require.NotNil(t, ai)
	assert.True(t, ai.Enemy.Disabled)

	ai.Tick(0)
	ai.TakeDamage(10)
	assert.Zero(t, nav.destCalls)
	assert.Equal(t, 100.0, ai.Enemy.Health)
}

func TestEnemyMissingNavigatorIsDisabled(t *testing.T) {
	_, err := NewEnemyAI("legless", soldierArchetype(), common.Vec3{}, 0, nil, EnemyDeps{Target: newFakeTarget(common.Vec3{}), Logger: quietLogger()})
	assert.ErrorIs(t, err, component.ErrMissingDependency)
}

func TestEnemyOffSurfaceSkipsTick(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	r.target.pos = common.V3(0, 0, 6)
	r.nav.offSurface = true

	r.ai.Tick(0)
	assert.Equal(t, component.StatePatrol, r.ai.Enemy.State)
	assert.Zero(t, r.rays.calls)
	assert.Zero(t, r.nav.destCalls)

	r.nav.offSurface = false
	r.ai.Tick(0.1)
	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
}

func TestEnemySetPatrolRoute(t *testing.T) {
	r := newRig(t, soldierArchetype(), nil, nil)
	require.Equal(t, component.StateNormal, r.ai.Enemy.State)

	r.ai.SetPatrolRoute(twoPointRoute())
	assert.Equal(t, component.StatePatrol, r.ai.Enemy.State)
	r.ai.Tick(0)
	assert.Equal(t, common.V3(0, 0, -10), r.nav.dest)

	r.ai.SetPatrolRoute(nil)
	assert.Equal(t, component.StateNormal, r.ai.Enemy.State)
}

func TestStationaryCameraSweepsAndDrains(t *testing.T) {
	arch := soldierArchetype()
	arch.Name = "camera"
	arch.Stationary = true
	arch.Combat = component.CombatConfig{}
	arch.SweepDegrees = 30
	arch.SweepSpeed = 1
	r := newRig(t, arch, twoPointRoute(), nil)
	require.Equal(t, component.StateNormal, r.ai.Enemy.State)

	r.ai.Tick(math.Pi / 2)
	f := r.ai.Enemy.Forward
	want := common.YawForward(30)
	assert.InDelta(t, want.X, f.X, 1e-9)
	assert.InDelta(t, want.Z, f.Z, 1e-9)

	r.target.pos = common.V3(0, 0, 6)
	r.ai.Enemy.Forward = common.V3(0, 0, 1)
	r.ai.Tick(2)
	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
	assert.Equal(t, 5.0, r.target.drains[r.id()])
	assert.Equal(t, component.AttackNoWeapon, r.ai.LastAttack())
	assert.Empty(t, r.target.damage)
}

func TestStationaryAgentHoldsWhenTableSaysPatrol(t *testing.T) {
	fsm, err := CompileFSM(RawFSM{
		Initial: "patrol",
		Transitions: map[string]map[string]string{
			"patrol": {"target_seen": "chase", "killed": "dead"},
			"normal": {"target_seen": "chase", "killed": "dead"},
			"chase":  {"target_lost": "patrol", "target_died": "patrol", "killed": "dead"},
			"dead":   {"respawned": "patrol"},
		},
	})
	require.NoError(t, err)

	arch := soldierArchetype()
	arch.Stationary = true
	arch.Combat = component.CombatConfig{}
	target := newFakeTarget(common.V3(0, 0, 30))
	ai, err := NewEnemyAI("cam", arch, common.Vec3{}, 0, twoPointRoute(), EnemyDeps{
		Target: target,
		Rays:   &fakeRays{target: target},
		FSM:    fsm,
		Events: &ecs.EventQueue{},
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, component.StateNormal, ai.Enemy.Mode)

	assert.NotPanics(t, func() { ai.Tick(0) })

	target.pos = common.V3(0, 0, 6)
	ai.Tick(1)
	require.Equal(t, component.StateChase, ai.Enemy.Mode)

	target.pos = common.V3(0, 0, 30)
	assert.NotPanics(t, func() { ai.Tick(2) })
	assert.Equal(t, component.StateNormal, ai.Enemy.Mode)
	assert.Equal(t, common.Vec3{}, ai.Enemy.Position)

	ai.TakeDamage(1e6)
	ai.Respawn()
	assert.Equal(t, component.StateNormal, ai.Enemy.Mode)
	assert.NotPanics(t, func() { ai.Tick(3) })
}

func TestAISystemUpdateSyncsBodies(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	w := ecs.NewWorld(quietLogger())
	sys := NewAISystem()
	ent := w.CreateEntity()
	sys.Add(ent, r.ai)
	w.AddSystem(sys)

	r.target.pos = common.V3(0, 0, 6)
	w.Update(0.1)

	assert.Equal(t, component.StateChase, r.ai.Enemy.State)
	assert.Equal(t, r.nav.pos, r.body.moves[testCollider])
	got, ok := sys.Get(ent)
	require.True(t, ok)
	assert.Same(t, r.ai, got)
	assert.Equal(t, 1, sys.Len())
}

func TestEnemyGizmos(t *testing.T) {
	r := newRig(t, soldierArchetype(), twoPointRoute(), nil)
	gizmos := r.ai.Gizmos()
	// body, two cone edges, forward ray, two waypoints
	require.Len(t, gizmos, 6)
	assert.Equal(t, GizmoCircle, gizmos[0].Kind)

	r.ai.TakeDamage(500)
	assert.Len(t, r.ai.Gizmos(), 1)
}
