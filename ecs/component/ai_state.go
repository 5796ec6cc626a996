package component

import "strings"

// StateID identifies an enemy FSM state.
type StateID string

// EventID identifies an enemy FSM event.
type EventID string

const (
	StatePatrol StateID = "patrol"
	StateNormal StateID = "normal"
	StateChase  StateID = "chase"
	StateDamage StateID = "damage"
	StateDead   StateID = "dead"
)

const (
	EventTargetSeen EventID = "target_seen"
	EventTargetLost EventID = "target_lost"
	EventTargetDied EventID = "target_died"
	EventDamaged    EventID = "damaged"
	EventKilled     EventID = "killed"
	EventRespawned  EventID = "respawned"
)

func (s StateID) String() string {
	return string(s)
}

// Behavioral reports whether s drives movement, as opposed to a label
// (damage) or a terminal state (dead).
func (s StateID) Behavioral() bool {
	return s == StatePatrol || s == StateNormal || s == StateChase
}

// Label is the text shown to the player for s.
func (s StateID) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
