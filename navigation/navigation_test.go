package navigation

import (
	"testing"

	"github.com/milk9111/outpost/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wallBlocker blocks a vertical wall at x in [4,5] for z < 8.
type wallBlocker struct{}

func (wallBlocker) Blocked(p common.Vec3, radius float64) bool {
	return p.X+radius > 4 && p.X-radius < 5 && p.Z-radius < 8
}

func testGrid() *Grid {
	return NewGrid(Bounds{MinX: 0, MinZ: 0, MaxX: 10, MaxZ: 10}, 0.5, 0.2, wallBlocker{})
}

func TestGridWalkable(t *testing.T) {
	g := testGrid()
	cases := []struct {
		name string
		p    common.Vec3
		want bool
	}{
		{"open", common.V3(1, 0, 1), true},
		{"inside_wall", common.V3(4.5, 0, 2), false},
		{"above_wall", common.V3(4.5, 0, 9), true},
		{"out_of_bounds", common.V3(-1, 0, 1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, g.Walkable(c.p))
		})
	}
}

func TestFindPathAroundWall(t *testing.T) {
	g := testGrid()
	start := common.V3(1, 0, 1)
	goal := common.V3(9, 0, 1)

	path := g.FindPath(start, goal)
	require.NotEmpty(t, path)
	assert.Equal(t, goal, path[len(path)-1])

	crossedAbove := false
	for _, p := range path {
		assert.True(t, g.Walkable(p), "waypoint %v is blocked", p)
		if p.Z > 8 {
			crossedAbove = true
		}
	}
	assert.True(t, crossedAbove, "path should go around the wall")
}

func TestFindPathSameCell(t *testing.T) {
	g := testGrid()
	path := g.FindPath(common.V3(1, 0, 1), common.V3(1.1, 0, 1.1))
	assert.Equal(t, []common.Vec3{common.V3(1.1, 0, 1.1)}, path)
}

func TestFindPathUnreachable(t *testing.T) {
	all := NewGrid(Bounds{MaxX: 2, MaxZ: 2}, 0.5, 0, blockAll{})
	assert.Nil(t, all.FindPath(common.V3(0.1, 0, 0.1), common.V3(1.9, 0, 1.9)))
}

type blockAll struct{}

func (blockAll) Blocked(common.Vec3, float64) bool { return true }

func TestAgentStepFollowsPath(t *testing.T) {
	g := NewGrid(Bounds{MaxX: 10, MaxZ: 10}, 0.5, 0.2, nil)
	a := NewAgent(g, common.V3(1.25, 0, 1.25), common.V3(0, 0, 1), 2, nil)

	a.SetDestination(common.V3(5.25, 0, 1.25))
	require.NotEmpty(t, a.Path())

	for i := 0; i < 10; i++ {
		a.Step(0.1)
	}
	assert.InDelta(t, 3.25, a.Position().X, 1e-6)
	assert.InDelta(t, 1.25, a.Position().Z, 1e-6)
	assert.InDelta(t, 1.0, a.Forward().X, 1e-6)

	for i := 0; i < 20; i++ {
		a.Step(0.1)
	}
	assert.InDelta(t, 0.0, common.PlanarDistance(a.Position(), common.V3(5.25, 0, 1.25)), 1e-6)
	assert.Empty(t, a.Path())
}

func TestAgentDisabledDoesNotMove(t *testing.T) {
	g := NewGrid(Bounds{MaxX: 10, MaxZ: 10}, 0.5, 0.2, nil)
	a := NewAgent(g, common.V3(1, 0, 1), common.V3(0, 0, 1), 2, nil)
	a.SetDestination(common.V3(5, 0, 1))
	a.SetEnabled(false)
	a.Step(1)

	assert.Equal(t, common.V3(1, 0, 1), a.Position())
	_, ok := a.Destination()
	assert.False(t, ok)
}

func TestAgentWarpAndSurface(t *testing.T) {
	g := testGrid()
	a := NewAgent(g, common.V3(1, 0, 1), common.V3(0, 0, 1), 2, nil)
	assert.True(t, a.IsOnNavigableSurface())

	a.Warp(common.V3(4.5, 0, 2))
	assert.False(t, a.IsOnNavigableSurface())
	assert.Empty(t, a.Path())
}
