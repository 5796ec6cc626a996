package player

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
)

// Input is one tick of player intent.
type Input struct {
	Move     common.Vec3
	Turn     float64
	Sprint   bool
	Fire     bool
	Reload   bool
	Interact bool
}

// Interactor collects whatever is in reach of pos.
type Interactor interface {
	Interact(pos common.Vec3) (*component.Pickup, error)
}

// Config is the full player prefab.
type Config struct {
	Stats   StatsConfig `yaml:"stats"`
	Move    MoveConfig  `yaml:"move"`
	Gun     GunConfig   `yaml:"gun"`
	Reserve int         `yaml:"reserve"`
}

// Player ties stats, movement and the gun together and applies queued input
// once per tick.
type Player struct {
	Stats      *Stats
	Controller *Controller
	Gun        *Gun

	rays    Raycaster
	targets DamageableLookup
	pickups Interactor
	logger  *log.Logger
	spawn   common.Vec3
	input   Input
}

// Options are the optional collaborators of a Player.
type Options struct {
	Walls   Blocker
	Body    BodyMover
	Rays    Raycaster
	Targets DamageableLookup
	Pickups Interactor
	Logger  *log.Logger
}

func New(cfg Config, spawn common.Vec3, yaw float64, collider component.ColliderID, opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	stats := NewStats(cfg.Stats, spawn, collider, logger)
	return &Player{
		Stats:      stats,
		Controller: NewController(cfg.Move, stats, opts.Walls, opts.Body, yaw),
		Gun:        NewGun(cfg.Gun, cfg.Reserve),
		rays:       opts.Rays,
		targets:    opts.Targets,
		pickups:    opts.Pickups,
		logger:     logger.With("module", "player"),
		spawn:      spawn,
	}
}

// SetPickups attaches the pickup system after construction.
func (p *Player) SetPickups(i Interactor) {
	p.pickups = i
}

// SetInput queues input for the next Update.
func (p *Player) SetInput(in Input) {
	p.input = in
}

// Heal and AddAmmo let the player receive pickups.
func (p *Player) Heal(amount float64) error {
	return p.Stats.Heal(amount)
}

func (p *Player) AddAmmo(rounds int) error {
	return p.Gun.AddAmmo(rounds)
}

// Respawn puts the player back at its spawn point with full stats.
func (p *Player) Respawn() {
	p.Stats.Respawn(p.spawn)
	p.Gun = NewGun(p.Gun.cfg, p.Gun.cfg.MaxReserve)
}

func (p *Player) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := p.input
	p.input = Input{}
	dt := w.DT()

	if !p.Stats.Died() {
		p.Controller.Turn(in.Turn, dt)
		p.Controller.Move(in.Move, in.Sprint, dt)

		if in.Reload {
			if err := p.Gun.Reload(); err != nil {
				p.logger.Warn("reload rejected", "err", err)
			}
		}
		if in.Fire {
			p.fire(w)
		}
		if in.Interact && p.pickups != nil {
			if _, err := p.pickups.Interact(p.Stats.Position()); err != nil && !errors.Is(err, component.ErrNothingNear) {
				p.logger.Debug("interact rejected", "err", err)
			}
		}
	}

	p.Stats.Update(dt)
}

func (p *Player) fire(w *ecs.World) {
	eye := p.Stats.LookAnchor()
	res, err := p.Gun.Fire(eye, p.Controller.Forward(), w.Now(), p.rays, p.targets)
	if err != nil {
		p.logger.Debug("fire rejected", "err", err)
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventShot, Data: res})
}
