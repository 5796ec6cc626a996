package system

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/prefabs"
)

// StateHome is a pseudo-state in transition tables. It resolves to patrol
// when the agent has a route and to normal otherwise.
const StateHome component.StateID = "home"

const DefaultEnemyFSMName = "enemy_default"

// FSMDef is a compiled transition table.
type FSMDef struct {
	Initial     component.StateID
	Transitions map[component.StateID]map[component.EventID]component.StateID
}

// RawFSM is the YAML shape of a transition table.
type RawFSM struct {
	Initial     string                       `yaml:"initial"`
	Transitions map[string]map[string]string `yaml:"transitions"`
}

var knownStates = map[component.StateID]bool{
	component.StatePatrol: true,
	component.StateNormal: true,
	component.StateChase:  true,
	component.StateDamage: true,
	component.StateDead:   true,
	StateHome:             true,
}

var knownEvents = map[component.EventID]bool{
	component.EventTargetSeen: true,
	component.EventTargetLost: true,
	component.EventTargetDied: true,
	component.EventDamaged:    true,
	component.EventKilled:     true,
	component.EventRespawned:  true,
}

// Next is the transition function. It reports false when the table has no
// entry for (from, ev); home resolves StateHome.
func (f *FSMDef) Next(from component.StateID, ev component.EventID, home component.StateID) (component.StateID, bool) {
	if f == nil {
		return from, false
	}
	if from == home {
		if to, ok := f.lookup(from, ev); ok {
			return resolveHome(to, home), true
		}
		from = StateHome
	}
	to, ok := f.lookup(from, ev)
	if !ok {
		return from, false
	}
	return resolveHome(to, home), true
}

// InitialState resolves the table's initial state.
func (f *FSMDef) InitialState(home component.StateID) component.StateID {
	if f == nil || f.Initial == "" {
		return home
	}
	return resolveHome(f.Initial, home)
}

func (f *FSMDef) lookup(from component.StateID, ev component.EventID) (component.StateID, bool) {
	events, ok := f.Transitions[from]
	if !ok {
		return "", false
	}
	to, ok := events[ev]
	return to, ok
}

func resolveHome(s, home component.StateID) component.StateID {
	if s == StateHome {
		return home
	}
	return s
}

// DefaultEnemyFSM is the patrol/normal -> chase -> dead lifecycle. Damage is
// a label transition and never changes the behavioral branch.
func DefaultEnemyFSM() *FSMDef {
	return &FSMDef{
		Initial: StateHome,
		Transitions: map[component.StateID]map[component.EventID]component.StateID{
			StateHome: {
				component.EventTargetSeen: component.StateChase,
				component.EventDamaged:    component.StateDamage,
				component.EventKilled:     component.StateDead,
			},
			component.StateChase: {
				component.EventTargetLost: StateHome,
				component.EventTargetDied: StateHome,
				component.EventDamaged:    component.StateDamage,
				component.EventKilled:     component.StateDead,
			},
			component.StateDead: {
				component.EventRespawned: StateHome,
			},
		},
	}
}

// CompileFSM validates a raw table.
func CompileFSM(raw RawFSM) (*FSMDef, error) {
	initial := component.StateID(raw.Initial)
	if initial == "" {
		initial = StateHome
	}
	if !knownStates[initial] {
		return nil, fmt.Errorf("fsm: unknown initial state %q", raw.Initial)
	}
	if len(raw.Transitions) == 0 {
		return nil, fmt.Errorf("fsm: no transitions")
	}

	transitions := make(map[component.StateID]map[component.EventID]component.StateID, len(raw.Transitions))
	for from, events := range raw.Transitions {
		fromID := component.StateID(from)
		if !knownStates[fromID] {
			return nil, fmt.Errorf("fsm: unknown state %q", from)
		}
		transitions[fromID] = make(map[component.EventID]component.StateID, len(events))
		for ev, to := range events {
			evID := component.EventID(ev)
			if !knownEvents[evID] {
				return nil, fmt.Errorf("fsm: unknown event %q in state %s", ev, from)
			}
			toID := component.StateID(to)
			if !knownStates[toID] {
				return nil, fmt.Errorf("fsm: unknown target state %q for %s.%s", to, from, ev)
			}
			transitions[fromID][evID] = toID
		}
	}

	if _, ok := transitions[component.StateDead]; !ok {
		return nil, fmt.Errorf("fsm: dead state has no respawn transition")
	}

	return &FSMDef{Initial: initial, Transitions: transitions}, nil
}

// LoadFSMFromPrefab reads and compiles a transition table from the prefabs.
func LoadFSMFromPrefab(path string) (*FSMDef, error) {
	data, err := prefabs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("fsm: load %s: %w", path, err)
	}
	var raw RawFSM
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fsm: unmarshal %s: %w", path, err)
	}
	return CompileFSM(raw)
}

// FSMCache memoizes compiled tables by prefab name.
type FSMCache struct {
	defs map[string]*FSMDef
}

func NewFSMCache() *FSMCache {
	return &FSMCache{defs: map[string]*FSMDef{DefaultEnemyFSMName: DefaultEnemyFSM()}}
}

// Get returns the named table, loading it on first use. An empty name is the default table.
func (c *FSMCache) Get(name string) (*FSMDef, error) {
	if name == "" {
		name = DefaultEnemyFSMName
	}
	if def, ok := c.defs[name]; ok {
		return def, nil
	}
	def, err := LoadFSMFromPrefab(name)
	if err != nil {
		return nil, err
	}
	c.defs[name] = def
	return def, nil
}

// Invalidate drops a cached table so the next Get reloads it.
func (c *FSMCache) Invalidate(name string) {
	if name == DefaultEnemyFSMName {
		return
	}
	delete(c.defs, name)
}
