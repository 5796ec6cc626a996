package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cautiousSource = `
if visible {
	decision = "pursue"
} else if since_seen > 2.0 {
	decision = "give_up"
} else if last_known_distance > 0.5 {
	decision = "last_known"
} else {
	decision = "give_up"
}
`

func TestScriptPolicyDecide(t *testing.T) {
	policy, err := CompilePursuitScript("cautious.tengo", []byte(cautiousSource))
	require.NoError(t, err)

	cases := []struct {
		name string
		in   PursuitInput
		want PursuitDecision
	}{
		{"visible", PursuitInput{Visible: true, Distance: 3}, DecisionPursue},
		{"recent_far_from_last_known", PursuitInput{SinceSeen: 1, LastKnownDistance: 4}, DecisionLastKnown},
		{"reached_last_known", PursuitInput{SinceSeen: 1, LastKnownDistance: 0.1}, DecisionGiveUp},
		{"stale", PursuitInput{SinceSeen: 3, LastKnownDistance: 4}, DecisionGiveUp},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := policy.Decide(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestScriptPolicyCloneIsIndependent(t *testing.T) {
	policy, err := CompilePursuitScript("cautious.tengo", []byte(cautiousSource))
	require.NoError(t, err)
	clone := policy.Clone()
	require.NotNil(t, clone)

	a, err := policy.Decide(PursuitInput{SinceSeen: 3})
	require.NoError(t, err)
	b, err := clone.Decide(PursuitInput{Visible: true})
	require.NoError(t, err)
	assert.Equal(t, DecisionGiveUp, a)
	assert.Equal(t, DecisionPursue, b)
}

func TestScriptPolicyErrors(t *testing.T) {
	_, err := CompilePursuitScript("broken.tengo", []byte(`decision = (`))
	assert.Error(t, err)

	policy, err := CompilePursuitScript("odd.tengo", []byte(`decision = "dance"`))
	require.NoError(t, err)
	got, err := policy.Decide(PursuitInput{})
	assert.Error(t, err)
	assert.Equal(t, DecisionPursue, got)

	var nilPolicy *ScriptPolicy
	_, err = nilPolicy.Decide(PursuitInput{})
	assert.Error(t, err)
}

func TestLoadPursuitScriptFromPrefabs(t *testing.T) {
	policy, err := LoadPursuitScript("cautious_pursuit.tengo")
	require.NoError(t, err)

	got, err := policy.Decide(PursuitInput{Visible: false, Distance: 9, ChaseDistance: 20, VisionRange: 14, SinceSeen: 1, LastKnownDistance: 3})
	require.NoError(t, err)
	assert.Equal(t, DecisionPursue, got)

	got, err = policy.Decide(PursuitInput{Distance: 16, ChaseDistance: 20, VisionRange: 14, SinceSeen: 1, LastKnownDistance: 3})
	require.NoError(t, err)
	assert.Equal(t, DecisionLastKnown, got)

	got, err = policy.Decide(PursuitInput{Distance: 9, ChaseDistance: 20, VisionRange: 14, SinceSeen: 5, LastKnownDistance: 3})
	require.NoError(t, err)
	assert.Equal(t, DecisionGiveUp, got)
}
