package component

// CombatConfig describes an archetype's ranged attack.
type CombatConfig struct {
	HasWeapon             bool
	AttackDamage          float64
	AttackRange           float64
	AttackCooldownSeconds float64
}

// AttackResult is the outcome of a single attack attempt.
type AttackResult int

const (
	AttackHit AttackResult = iota
	AttackMiss
	AttackNotReady
	AttackNoWeapon
	AttackOutOfRange
)

func (r AttackResult) String() string {
	switch r {
	case AttackHit:
		return "hit"
	case AttackMiss:
		return "miss"
	case AttackNotReady:
		return "not_ready"
	case AttackNoWeapon:
		return "no_weapon"
	case AttackOutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}
