package player

import (
	"fmt"

	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs"
	"github.com/milk9111/outpost/ecs/component"
)

// Raycaster answers first-hit line queries.
type Raycaster interface {
	Raycast(origin, dir common.Vec3, maxDistance float64) (component.RaycastHit, bool)
}

// DamageableLookup resolves a collider to the thing it belongs to.
type DamageableLookup interface {
	Damageable(id component.ColliderID) (ecs.Damageable, bool)
}

type GunConfig struct {
	Damage       float64 `yaml:"damage"`
	Range        float64 `yaml:"range"`
	MagazineSize int     `yaml:"magazine_size"`
	MaxReserve   int     `yaml:"max_reserve"`
	FireInterval float64 `yaml:"fire_interval"`
}

// FireResult describes one shot.
type FireResult struct {
	Hit      bool
	Collider component.ColliderID
	Point    common.Vec3
	Damaged  bool
}

type Gun struct {
	cfg      GunConfig
	ammo     int
	reserve  int
	nextFire float64
}

// NewGun returns a gun with a full magazine and the given reserve.
func NewGun(cfg GunConfig, reserve int) *Gun {
	return &Gun{cfg: cfg, ammo: cfg.MagazineSize, reserve: min(reserve, cfg.MaxReserve)}
}

func (g *Gun) Ammo() int {
	return g.ammo
}

func (g *Gun) Reserve() int {
	return g.reserve
}

// Fire shoots from origin along dir and damages whatever the first hit belongs to.
func (g *Gun) Fire(origin, dir common.Vec3, now float64, rays Raycaster, targets DamageableLookup) (FireResult, error) {
	if g.ammo <= 0 {
		return FireResult{}, component.ErrOutOfAmmo
	}
	if now < g.nextFire {
		return FireResult{}, component.ErrNotReady
	}
	g.ammo--
	g.nextFire = now + g.cfg.FireInterval

	if rays == nil {
		return FireResult{}, nil
	}
	hit, ok := rays.Raycast(origin, dir, g.cfg.Range)
	if !ok {
		return FireResult{}, nil
	}
	res := FireResult{Hit: true, Collider: hit.Collider, Point: hit.Point}
	if targets == nil {
		return res, nil
	}
	if d, ok := targets.Damageable(hit.Collider); ok {
		d.TakeDamage(g.cfg.Damage)
		res.Damaged = true
	}
	return res, nil
}

// Reload refills the magazine from the reserve.
func (g *Gun) Reload() error {
	if g.ammo >= g.cfg.MagazineSize {
		return component.ErrMagazineFull
	}
	if g.reserve <= 0 {
		return fmt.Errorf("reload: no reserve: %w", component.ErrInvalidOperation)
	}
	n := min(g.cfg.MagazineSize-g.ammo, g.reserve)
	g.ammo += n
	g.reserve -= n
	return nil
}

// AddAmmo adds rounds to the reserve.
func (g *Gun) AddAmmo(rounds int) error {
	if g.reserve >= g.cfg.MaxReserve {
		return component.ErrReserveFull
	}
	if rounds <= 0 {
		return fmt.Errorf("add ammo %d: %w", rounds, component.ErrInvalidOperation)
	}
	g.reserve = min(g.cfg.MaxReserve, g.reserve+rounds)
	return nil
}
