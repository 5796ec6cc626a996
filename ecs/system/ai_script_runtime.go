package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/outpost/prefabs"
)

// PursuitDecision is what a chasing enemy does this tick.
type PursuitDecision string

const (
	DecisionPursue    PursuitDecision = "pursue"
	DecisionLastKnown PursuitDecision = "last_known"
	DecisionGiveUp    PursuitDecision = "give_up"
)

// PursuitInput is the information a pursuit policy sees.
type PursuitInput struct {
	Visible           bool
	Distance          float64
	ChaseDistance     float64
	VisionRange       float64
	SinceSeen         float64
	LastKnownDistance float64
}

// PursuitDecider chooses a pursuit decision for one tick.
type PursuitDecider interface {
	Decide(in PursuitInput) (PursuitDecision, error)
}

// ScriptPolicy runs a tengo script that assigns the global `decision`.
// A ScriptPolicy is not safe for concurrent use; clone it per agent.
type ScriptPolicy struct {
	path     string
	compiled *tengo.Compiled
}

var scriptInputs = []string{"visible", "distance", "chase_distance", "vision_range", "since_seen", "last_known_distance"}

// CompilePursuitScript compiles tengo source into a policy.
func CompilePursuitScript(path string, src []byte) (*ScriptPolicy, error) {
	script := tengo.NewScript(src)
	_ = script.Add("visible", false)
	for _, name := range scriptInputs[1:] {
		_ = script.Add(name, 0.0)
	}
	_ = script.Add("decision", string(DecisionPursue))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pursuit script %s: %w", path, err)
	}
	return &ScriptPolicy{path: path, compiled: compiled}, nil
}

// LoadPursuitScript compiles a script from the prefab scripts directory.
func LoadPursuitScript(path string) (*ScriptPolicy, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("pursuit script %s: %w", path, err)
	}
	return CompilePursuitScript(path, src)
}

// Clone returns an independent copy with its own globals.
func (p *ScriptPolicy) Clone() *ScriptPolicy {
	if p == nil || p.compiled == nil {
		return nil
	}
	return &ScriptPolicy{path: p.path, compiled: p.compiled.Clone()}
}

func (p *ScriptPolicy) Decide(in PursuitInput) (PursuitDecision, error) {
	if p == nil || p.compiled == nil {
		return DecisionPursue, fmt.Errorf("pursuit script: not compiled")
	}
	values := map[string]any{
		"visible":             in.Visible,
		"distance":            in.Distance,
		"chase_distance":      in.ChaseDistance,
		"vision_range":        in.VisionRange,
		"since_seen":          in.SinceSeen,
		"last_known_distance": in.LastKnownDistance,
		"decision":            string(DecisionPursue),
	}
	for name, v := range values {
		if err := p.compiled.Set(name, v); err != nil {
			return DecisionPursue, fmt.Errorf("pursuit script %s: set %s: %w", p.path, name, err)
		}
	}
	if err := p.compiled.Run(); err != nil {
		return DecisionPursue, fmt.Errorf("pursuit script %s: %w", p.path, err)
	}

	out := PursuitDecision(strings.TrimSpace(p.compiled.Get("decision").String()))
	switch out {
	case DecisionPursue, DecisionLastKnown, DecisionGiveUp:
		return out, nil
	default:
		return DecisionPursue, fmt.Errorf("pursuit script %s: unknown decision %q", p.path, out)
	}
}
