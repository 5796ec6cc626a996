package system

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
)

// BodySync mirrors an agent's position and liveness into the physics world.
type BodySync interface {
	MoveActor(id component.ColliderID, pos common.Vec3)
	SetActorActive(id component.ColliderID, active bool)
}

// Stepper is implemented by navigators that move on their own each tick.
type Stepper interface {
	Step(dt float64)
}

// EnemyDeps are the resolved collaborators of one enemy. Target is required;
// Nav is required unless the archetype is stationary.
type EnemyDeps struct {
	Target   Target
	Nav      Navigator
	Rays     Raycaster
	Text     TextSink
	Body     BodySync
	Collider component.ColliderID
	FSM      *FSMDef
	Pursuit  PursuitDecider
	Events   *ecs.EventQueue
	Logger   *log.Logger
}

// StateChange is the payload of ecs.EventStateChanged.
type StateChange struct {
	Enemy string
	From  component.StateID
	To    component.StateID
}

// AttackEvent is the payload of ecs.EventAttack.
type AttackEvent struct {
	Enemy  string
	Result component.AttackResult
}

// EnemyAI drives one enemy through its lifecycle.
type EnemyAI struct {
	Enemy *component.Enemy

	archetype *component.Archetype
	pending   *component.Archetype
	route     component.PatrolRoute
	deps      EnemyDeps
	fsm       *FSMDef
	logger    *log.Logger

	lastAttack component.AttackResult
}

// NewEnemyAI builds an agent at its spawn point. When a required collaborator
// is missing the agent is returned disabled together with an error wrapping
// component.ErrMissingDependency; a disabled agent ignores every tick.
func NewEnemyAI(name string, archetype *component.Archetype, spawn common.Vec3, yaw float64, route component.PatrolRoute, deps EnemyDeps) (*EnemyAI, error) {
	if err := archetype.Validate(); err != nil {
		return nil, err
	}
	if deps.FSM == nil {
		deps.FSM = DefaultEnemyFSM()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	e := component.NewEnemy(name, archetype, spawn, yaw)
	ai := &EnemyAI{
		Enemy:     e,
		archetype: archetype,
		route:     route,
		deps:      deps,
		fsm:       deps.FSM,
		logger:    logger.With("enemy", name, "id", e.ID.String()[:8]),
	}

	var missing error
	switch {
	case deps.Target == nil:
		missing = fmt.Errorf("enemy %s: target handle: %w", name, component.ErrMissingDependency)
	case deps.Nav == nil && !archetype.Stationary:
		missing = fmt.Errorf("enemy %s: navigation agent: %w", name, component.ErrMissingDependency)
	}
	if missing != nil {
		e.Disabled = true
		ai.logger.Error("enemy disabled", "err", missing)
		return ai, missing
	}

	if archetype.Pursuit == component.PursuitScript && ai.deps.Pursuit == nil {
		policy, err := LoadPursuitScript(archetype.PursuitScript)
		if err != nil {
			ai.logger.Warn("pursuit script unavailable, falling back to persist", "err", err)
		} else {
			ai.deps.Pursuit = policy
		}
	}

	if ai.deps.Nav != nil {
		ai.deps.Nav.Warp(spawn)
		ai.deps.Nav.SetEnabled(true)
	}

	initial := ai.settle(ai.fsm.InitialState(ai.home()))
	e.Mode = initial
	ai.setLabel(initial)
	ai.logger.Info("enemy spawned", "archetype", archetype.Name, "state", initial)
	return ai, nil
}

// Archetype returns the archetype the agent currently runs.
func (ai *EnemyAI) Archetype() *component.Archetype {
	return ai.archetype
}

// Route returns the shared patrol route.
func (ai *EnemyAI) Route() component.PatrolRoute {
	return ai.route
}

// Collider returns the agent's body collider, 0 when it has none.
func (ai *EnemyAI) Collider() component.ColliderID {
	return ai.deps.Collider
}

// Navigator returns the agent's navigation collaborator.
func (ai *EnemyAI) Navigator() Navigator {
	return ai.deps.Nav
}

// LastAttack is the result of the most recent attack attempt.
func (ai *EnemyAI) LastAttack() component.AttackResult {
	return ai.lastAttack
}

// SetPatrolRoute replaces the route. The cursor is clamped on the next tick.
func (ai *EnemyAI) SetPatrolRoute(points []common.Vec3) {
	ai.route = component.PatrolRoute(points)
	e := ai.Enemy
	if e.Mode == component.StatePatrol || e.Mode == component.StateNormal {
		home := ai.home()
		if e.Mode != home {
			if ai.deps.Nav != nil {
				ai.deps.Nav.ResetPath()
			}
			e.Mode = home
			ai.setLabel(home)
		}
	}
}

// SetArchetype schedules a replacement archetype. It takes effect on the next respawn.
func (ai *EnemyAI) SetArchetype(a *component.Archetype) error {
	if err := a.Validate(); err != nil {
		return err
	}
	ai.pending = a
	return nil
}

// SetPursuit swaps the script decider. Deciders hold no per-chase state so
// the swap is immediate.
func (ai *EnemyAI) SetPursuit(d PursuitDecider) {
	ai.deps.Pursuit = d
}

func (ai *EnemyAI) home() component.StateID {
	if len(ai.route) > 0 && !ai.archetype.Stationary && ai.deps.Nav != nil {
		return component.StatePatrol
	}
	return component.StateNormal
}

// settle maps a table-chosen patrol onto normal for agents that cannot patrol.
func (ai *EnemyAI) settle(s component.StateID) component.StateID {
	if s == component.StatePatrol && ai.home() != component.StatePatrol {
		ai.logger.Debug("patrol unavailable, holding position", "err", component.ErrTransientUnavailable)
		return component.StateNormal
	}
	return s
}

// Tick runs one simulation step at time now.
func (ai *EnemyAI) Tick(now float64) {
	e := ai.Enemy
	if e == nil || e.Disabled || !e.Alive() {
		return
	}

	nav := ai.deps.Nav
	if nav != nil {
		if !nav.Enabled() || !nav.IsOnNavigableSurface() {
			ai.logger.Debug("tick skipped", "err", component.ErrTransientUnavailable)
			return
		}
		e.Position = nav.Position()
	}

	target := ai.deps.Target
	if target.Died() {
		if e.Mode == component.StateChase {
			ai.fire(component.EventTargetDied)
		}
		e.HasSeenTarget = false
		ai.runHome(now)
		return
	}

	perception := ai.archetype.Perception
	visible := IsVisible(e.EyePosition(perception), e.Forward, target, perception, ai.deps.Rays)
	if visible {
		e.LastSeenPosition = target.Position()
		e.LastSeenTime = now
	}

	switch e.Mode {
	case component.StatePatrol, component.StateNormal:
		if visible {
			ai.fire(component.EventTargetSeen)
		}
	}

	if e.Mode == component.StateChase {
		decision := ai.pursuit(now, visible)
		if decision == DecisionGiveUp {
			e.HasSeenTarget = false
			ai.fire(component.EventTargetLost)
		} else {
			ai.chase(now, visible, decision)
			return
		}
	}

	ai.runHome(now)
}

func (ai *EnemyAI) runHome(now float64) {
	e := ai.Enemy
	switch e.Mode {
	case component.StatePatrol:
		nav := ai.deps.Nav
		if nav == nil {
			ai.hold(now)
			break
		}
		AdvancePatrol(e, ai.route, nav, ai.archetype.WaypointTolerance)
		if f := nav.Forward(); !f.IsZero() {
			e.Forward = f
		}
	case component.StateNormal:
		ai.hold(now)
	}
	if e.State == component.StateDamage {
		ai.setLabel(e.Mode)
	}
}

// hold keeps a stationary observer in place, sweeping its gaze when configured.
func (ai *EnemyAI) hold(now float64) {
	e := ai.Enemy
	if ai.deps.Nav != nil {
		ai.deps.Nav.ResetPath()
	}
	if ai.archetype.SweepDegrees == 0 || ai.archetype.SweepSpeed == 0 {
		return
	}
	yaw := e.SpawnYaw + ai.archetype.SweepDegrees*math.Sin(now*ai.archetype.SweepSpeed)
	e.Forward = common.YawForward(yaw)
}

// pursuit decides what a chasing agent does. Losing sight beyond the chase
// distance always gives up; inside it the archetype's policy decides.
func (ai *EnemyAI) pursuit(now float64, visible bool) PursuitDecision {
	if visible {
		return DecisionPursue
	}
	e := ai.Enemy
	arch := ai.archetype
	dist := common.PlanarDistance(e.Position, ai.deps.Target.Position())
	if dist > arch.ChaseDistance {
		return DecisionGiveUp
	}

	switch arch.Pursuit {
	case component.PursuitRecheck:
		if common.PlanarDistance(e.Position, e.LastSeenPosition) < arch.WaypointTolerance {
			return DecisionGiveUp
		}
		return DecisionLastKnown
	case component.PursuitScript:
		if ai.deps.Pursuit == nil {
			return DecisionPursue
		}
		decision, err := ai.deps.Pursuit.Decide(PursuitInput{
			Visible:           visible,
			Distance:          dist,
			ChaseDistance:     arch.ChaseDistance,
			VisionRange:       arch.Perception.VisionRange,
			SinceSeen:         now - e.LastSeenTime,
			LastKnownDistance: common.PlanarDistance(e.Position, e.LastSeenPosition),
		})
		if err != nil {
			ai.logger.Warn("pursuit script failed", "err", err)
			return DecisionPursue
		}
		return decision
	}
	return DecisionPursue
}

func (ai *EnemyAI) chase(now float64, visible bool, decision PursuitDecision) {
	e := ai.Enemy
	target := ai.deps.Target

	goal := target.Position()
	if decision == DecisionLastKnown {
		goal = e.LastSeenPosition
	}

	if nav := ai.deps.Nav; nav != nil && !ai.archetype.Stationary {
		stop := ai.archetype.StopDistance
		if decision == DecisionLastKnown {
			stop = 0
		}
		toGoal := goal.Sub(e.Position).Planar()
		if toGoal.Len() <= stop {
			nav.ResetPath()
		} else {
			nav.SetDestination(goal.Sub(toGoal.Normalize().Scale(stop)))
		}
		if f := nav.Forward(); !f.IsZero() {
			e.Forward = f
		}
	}
	if visible {
		if f := target.Position().Sub(e.Position).Planar().Normalize(); !f.IsZero() {
			e.Forward = f
		}
	}

	result := TryAttack(e, target, ai.archetype.Perception, ai.archetype.Combat, now, ai.deps.Rays)
	ai.lastAttack = result
	switch result {
	case component.AttackHit:
		ai.logger.Debug("attack hit", "damage", ai.archetype.Combat.AttackDamage)
		ai.deps.Events.Push(ecs.Event{Type: ecs.EventAttack, Data: AttackEvent{Enemy: e.Name, Result: result}})
	case component.AttackNoWeapon:
		ai.logger.Debug("attack rejected", "err", component.ErrNoWeapon)
	}

	if e.State == component.StateDamage {
		ai.setLabel(e.Mode)
	}
}

// fire applies an FSM event. Behavioral targets change Mode; damage only
// changes the label.
func (ai *EnemyAI) fire(ev component.EventID) bool {
	e := ai.Enemy
	to, ok := ai.fsm.Next(e.Mode, ev, ai.home())
	if !ok {
		return false
	}
	to = ai.settle(to)

	from := e.Mode
	if to.Behavioral() || to == component.StateDead {
		if from == component.StateChase && to != component.StateChase {
			ai.exitChase()
		}
		e.Mode = to
		if to == component.StateChase && from != component.StateChase {
			ai.enterChase()
		}
	}
	ai.setLabel(to)
	return true
}

func (ai *EnemyAI) enterChase() {
	e := ai.Enemy
	e.HasSeenTarget = true
	if rate := ai.archetype.DrainRate; rate > 0 {
		ai.deps.Target.DrainResource(e.ID.String(), rate)
	}
}

func (ai *EnemyAI) exitChase() {
	ai.deps.Target.StopDraining(ai.Enemy.ID.String())
	if ai.deps.Nav != nil {
		ai.deps.Nav.ResetPath()
	}
}

func (ai *EnemyAI) setLabel(s component.StateID) {
	e := ai.Enemy
	if e.State == s {
		return
	}
	from := e.State
	e.State = s
	if ai.deps.Text != nil {
		ai.deps.Text.SetText(s.Label())
	}
	ai.deps.Events.Push(ecs.Event{Type: ecs.EventStateChanged, Data: StateChange{Enemy: e.Name, From: from, To: s}})
	ai.logger.Info("state changed", "from", from, "to", s)
}

// TakeDamage applies damage. Damage to a dead or disabled agent is ignored.
func (ai *EnemyAI) TakeDamage(amount float64) {
	e := ai.Enemy
	if e == nil || e.Disabled || !e.Alive() || amount <= 0 {
		return
	}
	e.Health -= amount
	if e.Health > 0 {
		ai.fire(component.EventDamaged)
		return
	}

	e.Health = 0
	ai.fire(component.EventKilled)
	if e.State != component.StateDead {
		ai.exitChase()
		e.Mode = component.StateDead
		ai.setLabel(component.StateDead)
	}
	e.Active = false
	e.HasSeenTarget = false
	if ai.deps.Nav != nil {
		ai.deps.Nav.ResetPath()
		ai.deps.Nav.SetEnabled(false)
	}
	if ai.deps.Body != nil && ai.deps.Collider != 0 {
		ai.deps.Body.SetActorActive(ai.deps.Collider, false)
	}
	ai.logger.Info("enemy killed")
}

// Respawn restores a dead or living agent to its spawn point at full health.
func (ai *EnemyAI) Respawn() {
	e := ai.Enemy
	if e == nil || e.Disabled {
		return
	}
	if ai.pending != nil {
		ai.archetype = ai.pending
		ai.pending = nil
	}
	if e.Mode == component.StateChase {
		ai.exitChase()
	}

	e.Health = ai.archetype.MaxHealth
	e.Position = e.SpawnPosition
	e.Forward = common.YawForward(e.SpawnYaw)
	e.PatrolIndex = 0
	e.HasSeenTarget = false
	e.NextFireTime = 0
	e.LastSeenPosition = common.Vec3{}
	e.LastSeenTime = 0
	e.Active = true

	if nav := ai.deps.Nav; nav != nil {
		nav.Warp(e.SpawnPosition)
		nav.ResetPath()
		nav.SetEnabled(true)
	}
	if ai.deps.Body != nil && ai.deps.Collider != 0 {
		ai.deps.Body.SetActorActive(ai.deps.Collider, true)
		ai.deps.Body.MoveActor(ai.deps.Collider, e.SpawnPosition)
	}

	home := ai.home()
	if e.Mode == component.StateDead {
		if to, ok := ai.fsm.Next(component.StateDead, component.EventRespawned, home); ok && to.Behavioral() && to != component.StateChase {
			home = ai.settle(to)
		}
	}
	e.Mode = home
	ai.setLabel(home)
	ai.logger.Info("enemy respawned", "state", home)
}

// AISystem ticks every registered enemy in a fixed order.
type AISystem struct {
	agents *ecs.SparseSet[*EnemyAI]
}

func NewAISystem() *AISystem {
	return &AISystem{agents: &ecs.SparseSet[*EnemyAI]{}}
}

// Add registers an agent under an entity.
func (s *AISystem) Add(ent ecs.Entity, ai *EnemyAI) {
	if ai == nil {
		return
	}
	s.agents.Set(ent, ai)
}

// Remove unregisters an agent.
func (s *AISystem) Remove(ent ecs.Entity) bool {
	return s.agents.Remove(ent)
}

// Get returns the agent for an entity.
func (s *AISystem) Get(ent ecs.Entity) (*EnemyAI, bool) {
	return s.agents.Get(ent)
}

// Each visits every agent.
func (s *AISystem) Each(fn func(ecs.Entity, *EnemyAI)) {
	s.agents.Each(fn)
}

// Len returns the number of registered agents.
func (s *AISystem) Len() int {
	return s.agents.Len()
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	dt := w.DT()
	s.agents.Each(func(_ ecs.Entity, ai *EnemyAI) {
		ai.Tick(now)

		e := ai.Enemy
		if !e.Alive() || e.Disabled {
			return
		}
		if nav := ai.deps.Nav; nav != nil {
			if stepper, ok := nav.(Stepper); ok && nav.Enabled() {
				stepper.Step(dt)
			}
			e.Position = nav.Position()
		}
		if ai.deps.Body != nil && ai.deps.Collider != 0 {
			ai.deps.Body.MoveActor(ai.deps.Collider, e.Position)
		}
	})
}
