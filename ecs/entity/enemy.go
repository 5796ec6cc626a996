package entity

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/ecs/system"
	"github.com/milk9111/outpost/navigation"
)

// EnemyParams describe one enemy spawn with its resolved collaborators.
type EnemyParams struct {
	Name      string
	Archetype *component.Archetype
	Spawn     common.Vec3
	Yaw       float64
	Route     component.PatrolRoute
	Grid      *navigation.Grid
	Target    system.Target
	Text      system.TextSink
	FSM       *system.FSMDef
	Pursuit   system.PursuitDecider
	Logger    *log.Logger
}

// NewEnemy creates the enemy's body and navigation agent in w and registers
// the agent with ais. Stationary archetypes get no navigation agent.
func NewEnemy(w *ecs.World, p EnemyParams, ais *system.AISystem) (*system.EnemyAI, error) {
	physics := w.PhysicsWorld()
	if physics == nil {
		return nil, fmt.Errorf("enemy %s: physics world: %w", p.Name, component.ErrMissingDependency)
	}
	if p.Archetype == nil {
		return nil, fmt.Errorf("enemy %s: archetype: %w", p.Name, component.ErrMissingDependency)
	}

	collider := physics.AddActor(p.Spawn, actorRadius)

	var nav system.Navigator
	if !p.Archetype.Stationary && p.Grid != nil {
		nav = navigation.NewAgent(p.Grid, p.Spawn, common.YawForward(p.Yaw), p.Archetype.MoveSpeed, p.Logger)
	}

	ai, err := system.NewEnemyAI(p.Name, p.Archetype, p.Spawn, p.Yaw, p.Route, system.EnemyDeps{
		Target:   p.Target,
		Nav:      nav,
		Rays:     physics.Ignoring(collider),
		Text:     p.Text,
		Body:     physics,
		Collider: collider,
		FSM:      p.FSM,
		Pursuit:  p.Pursuit,
		Events:   w.Events(),
		Logger:   p.Logger,
	})
	if err != nil {
		physics.SetActorActive(collider, false)
		return ai, fmt.Errorf("enemy: build %s: %w", p.Name, err)
	}

	ent := w.CreateEntity()
	ais.Add(ent, ai)
	w.RegisterDamageable(collider, ai)
	return ai, nil
}
