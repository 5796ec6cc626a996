package player

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
)

// StatsConfig is the player's immutable tuning.
type StatsConfig struct {
	MaxHealth    float64 `yaml:"max_health"`
	MaxStamina   float64 `yaml:"max_stamina"`
	StaminaRegen float64 `yaml:"stamina_regen"`
	EyeHeight    float64 `yaml:"eye_height"`
}

// Stats is the shared player state every enemy reads and writes. All access
// is serialized so a concurrent host never sees torn health or stamina.
type Stats struct {
	mu     sync.Mutex
	cfg    StatsConfig
	logger *log.Logger

	health   float64
	stamina  float64
	drains   map[string]float64
	position common.Vec3
	collider component.ColliderID
}

func NewStats(cfg StatsConfig, pos common.Vec3, collider component.ColliderID, logger *log.Logger) *Stats {
	if logger == nil {
		logger = log.Default()
	}
	return &Stats{
		cfg:      cfg,
		logger:   logger.With("module", "player"),
		health:   cfg.MaxHealth,
		stamina:  cfg.MaxStamina,
		drains:   make(map[string]float64),
		position: pos,
		collider: collider,
	}
}

func (s *Stats) Config() StatsConfig {
	return s.cfg
}

func (s *Stats) Position() common.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// LookAnchor is the point enemies aim at.
func (s *Stats) LookAnchor() common.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position.Add(common.Vec3{Y: s.cfg.EyeHeight})
}

func (s *Stats) SetPosition(p common.Vec3) {
	s.mu.Lock()
	s.position = p
	s.mu.Unlock()
}

func (s *Stats) ColliderID() component.ColliderID {
	return s.collider
}

func (s *Stats) Died() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health <= 0
}

func (s *Stats) Health() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health
}

func (s *Stats) Stamina() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stamina
}

// Draining reports how many sources are draining stamina.
func (s *Stats) Draining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drains)
}

func (s *Stats) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health <= 0 {
		return
	}
	s.health -= amount
	if s.health <= 0 {
		s.health = 0
		s.drains = make(map[string]float64)
		s.logger.Info("player died")
	}
}

// Heal restores health up to the maximum.
func (s *Stats) Heal(amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health <= 0 {
		return component.ErrDead
	}
	if s.health >= s.cfg.MaxHealth {
		return component.ErrFullHealth
	}
	if amount <= 0 {
		return fmt.Errorf("heal %.1f: %w", amount, component.ErrInvalidOperation)
	}
	s.health = min(s.cfg.MaxHealth, s.health+amount)
	return nil
}

// DrainResource starts or updates a named stamina drain.
func (s *Stats) DrainResource(source string, ratePerSecond float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health <= 0 || ratePerSecond <= 0 {
		return
	}
	s.drains[source] = ratePerSecond
}

func (s *Stats) StopDraining(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drains, source)
}

// SpendStamina consumes stamina and reports whether any was available.
func (s *Stats) SpendStamina(amount float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stamina <= 0 {
		return false
	}
	s.stamina = max(0, s.stamina-amount)
	return true
}

// Update applies drains, or regeneration when nothing drains stamina.
func (s *Stats) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health <= 0 {
		return
	}
	if len(s.drains) == 0 {
		s.stamina = min(s.cfg.MaxStamina, s.stamina+s.cfg.StaminaRegen*dt)
		return
	}
	total := 0.0
	for _, rate := range s.drains {
		total += rate
	}
	s.stamina = max(0, s.stamina-total*dt)
}

// Respawn restores full health and stamina at pos.
func (s *Stats) Respawn(pos common.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = s.cfg.MaxHealth
	s.stamina = s.cfg.MaxStamina
	s.drains = make(map[string]float64)
	s.position = pos
	s.logger.Info("player respawned", "pos", pos)
}
