package entity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/ecs/system"
	"github.com/milk9111/outpost/navigation"
	"github.com/milk9111/outpost/player"
	"github.com/milk9111/outpost/prefabs"
	"github.com/milk9111/outpost/ui"
)

const actorRadius = 0.4

// Outpost is a loaded level with every system wired into one world.
type Outpost struct {
	World    *ecs.World
	Physics  *ecs.PhysicsWorld
	Grid     *navigation.Grid
	Player   *player.Player
	AI       *system.AISystem
	Pickups  *system.PickupSystem
	Registry *prefabs.Registry
	Level    prefabs.LevelSpec

	// Labels holds each enemy's state text; HUD holds player-facing messages.
	Labels map[string]*ui.Label
	HUD    *ui.Label

	byName  map[string]*system.EnemyAI
	fsm     *system.FSMCache
	scripts map[string]*system.ScriptPolicy
	logger  *log.Logger
}

// Options tune how a level is loaded.
type Options struct {
	Level      string
	PlayerFile string
	Archetypes []string
	// Sink, when set, also receives every label update.
	Sink   ui.Sink
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Level:      "outpost.yaml",
		PlayerFile: "player.yaml",
		Archetypes: []string{"soldier.yaml", "scout.yaml", "surveillance_camera.yaml"},
	}
}

// LoadOutpost builds the world for a level file.
func LoadOutpost(opts Options) (*Outpost, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	level, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("outpost: %w", err)
	}
	playerCfg, err := prefabs.LoadPlayerSpec(opts.PlayerFile)
	if err != nil {
		return nil, fmt.Errorf("outpost: %w", err)
	}
	registry := prefabs.NewRegistry(logger)
	if err := registry.LoadArchetypes(opts.Archetypes...); err != nil {
		return nil, fmt.Errorf("outpost: %w", err)
	}

	world := ecs.NewWorld(logger)
	physics := ecs.NewPhysicsWorld(level.Walls, logger)
	world.SetPhysicsWorld(physics)
	grid := navigation.NewGrid(level.Bounds, level.CellSize, actorRadius, physics)

	o := &Outpost{
		World:    world,
		Physics:  physics,
		Grid:     grid,
		AI:       system.NewAISystem(),
		Registry: registry,
		Level:    level,
		Labels:   make(map[string]*ui.Label),
		HUD:      ui.NewLabel(""),
		byName:   make(map[string]*system.EnemyAI),
		fsm:      system.NewFSMCache(),
		scripts:  make(map[string]*system.ScriptPolicy),
		logger:   logger,
	}

	o.Player = NewPlayer(world, physics, playerCfg, level.Player, logger)
	o.Pickups = NewPickups(world, level.Pickups, o.Player, ui.Tee(o.HUD, opts.Sink), logger)
	o.Player.SetPickups(o.Pickups)

	for _, spec := range level.Enemies {
		if _, err := o.spawnEnemy(spec, opts.Sink); err != nil {
			return nil, err
		}
	}

	world.AddSystem(o.Player)
	world.AddSystem(o.Pickups)
	world.AddSystem(o.AI)
	world.AddSystem(system.NewPhysicsSystem())

	logger.Info("level loaded", "level", level.Name, "enemies", o.AI.Len(), "pickups", len(level.Pickups), "walls", len(level.Walls))
	return o, nil
}

func (o *Outpost) spawnEnemy(spec prefabs.EnemySpawnSpec, sink ui.Sink) (*system.EnemyAI, error) {
	arch, err := o.Registry.Variant(spec.Archetype, spec.Overrides)
	if err != nil {
		return nil, fmt.Errorf("outpost: enemy %s: %w", spec.Name, err)
	}
	fsm, err := o.fsm.Get(arch.FSM)
	if err != nil {
		return nil, fmt.Errorf("outpost: enemy %s: %w", spec.Name, err)
	}
	pursuit, err := o.pursuitFor(arch)
	if err != nil {
		return nil, fmt.Errorf("outpost: enemy %s: %w", spec.Name, err)
	}

	label := ui.NewLabel("")
	o.Labels[spec.Name] = label

	var route component.PatrolRoute
	if spec.Route != "" {
		route = component.PatrolRoute(o.Level.Routes[spec.Route])
	}

	ai, err := NewEnemy(o.World, EnemyParams{
		Name:      spec.Name,
		Archetype: arch,
		Spawn:     spec.Position,
		Yaw:       spec.Yaw,
		Route:     route,
		Grid:      o.Grid,
		Target:    o.Player.Stats,
		Text:      ui.Tee(label, sink),
		FSM:       fsm,
		Pursuit:   pursuit,
		Logger:    o.logger,
	}, o.AI)
	if err != nil {
		return nil, fmt.Errorf("outpost: %w", err)
	}
	o.byName[spec.Name] = ai
	return ai, nil
}

// pursuitFor compiles each pursuit script once and hands every agent its own clone.
func (o *Outpost) pursuitFor(arch *component.Archetype) (system.PursuitDecider, error) {
	if arch.Pursuit != component.PursuitScript {
		return nil, nil
	}
	policy, ok := o.scripts[arch.PursuitScript]
	if !ok {
		var err error
		policy, err = system.LoadPursuitScript(arch.PursuitScript)
		if err != nil {
			return nil, err
		}
		o.scripts[arch.PursuitScript] = policy
	}
	return policy.Clone(), nil
}

// Reload applies an edited prefab file. Archetype changes reach each
// matching enemy on its next respawn with that enemy's overrides reapplied.
// Script edits are recompiled and swapped in immediately.
func (o *Outpost) Reload(path string) {
	name := prefabs.Name(path)
	if strings.HasSuffix(name, ".tengo") {
		o.reloadScript(strings.TrimPrefix(name, "scripts/"))
		return
	}

	arch, known, err := o.Registry.Reload(name)
	if err != nil {
		return
	}
	if !known {
		o.fsm.Invalidate(name)
		o.logger.Debug("fsm table invalidated", "file", name)
		return
	}
	for _, spec := range o.Level.Enemies {
		if spec.Archetype != arch.Name {
			continue
		}
		ai, ok := o.byName[spec.Name]
		if !ok {
			continue
		}
		variant, err := o.Registry.Variant(spec.Archetype, spec.Overrides)
		if err != nil {
			o.logger.Warn("archetype rejected", "enemy", spec.Name, "err", err)
			continue
		}
		if err := ai.SetArchetype(variant); err != nil {
			o.logger.Warn("archetype rejected", "enemy", spec.Name, "err", err)
		}
	}
}

func (o *Outpost) reloadScript(name string) {
	policy, err := system.LoadPursuitScript(name)
	if err != nil {
		o.logger.Error("pursuit script reload failed", "script", name, "err", err)
		return
	}
	o.scripts[name] = policy
	for _, ai := range o.byName {
		a := ai.Archetype()
		if a.Pursuit == component.PursuitScript && a.PursuitScript == name {
			ai.SetPursuit(policy.Clone())
		}
	}
	o.logger.Info("pursuit script reloaded", "script", name)
}

// Enemy looks an enemy up by its spawn name.
func (o *Outpost) Enemy(name string) (*system.EnemyAI, bool) {
	ai, ok := o.byName[name]
	return ai, ok
}

// RespawnDead brings every dead enemy back.
func (o *Outpost) RespawnDead() int {
	n := 0
	o.AI.Each(func(_ ecs.Entity, ai *system.EnemyAI) {
		if ai.Enemy.State == component.StateDead {
			ai.Respawn()
			n++
		}
	})
	return n
}

// Gizmos collects debug primitives for every enemy.
func (o *Outpost) Gizmos() []system.Gizmo {
	var out []system.Gizmo
	o.AI.Each(func(_ ecs.Entity, ai *system.EnemyAI) {
		out = append(out, ai.Gizmos()...)
	})
	return out
}

// Enemies returns every agent in update order.
func (o *Outpost) Enemies() []*system.EnemyAI {
	out := make([]*system.EnemyAI, 0, o.AI.Len())
	o.AI.Each(func(_ ecs.Entity, ai *system.EnemyAI) {
		out = append(out, ai)
	})
	return out
}

// Step advances the simulation by dt seconds and ages the labels.
func (o *Outpost) Step(dt float64) {
	o.World.Update(dt)
	for _, l := range o.Labels {
		l.Advance(dt)
	}
	o.HUD.Advance(dt)
}

// PlayerSpawn is where the player starts.
func (o *Outpost) PlayerSpawn() common.Vec3 {
	return o.Level.Player.Position
}

// RespawnPlayer restores the player at the level's spawn point.
func (o *Outpost) RespawnPlayer() {
	o.Player.Respawn()
	o.Physics.MoveActor(o.Player.Stats.ColliderID(), o.Player.Stats.Position())
	o.HUD.SetText("")
}
