package navigation

import (
	"container/heap"
	"math"

	"github.com/milk9111/outpost/common"
)

// FindPath returns waypoints from start to goal through open cells. The last
// waypoint is goal itself; intermediate points are cell centres. A blocked
// goal is moved to the nearest open cell. It returns nil when no path exists.
func (g *Grid) FindPath(start, goal common.Vec3) []common.Vec3 {
	if g == nil {
		return nil
	}
	s, ok := g.nearestOpen(g.cell(start))
	if !ok {
		return nil
	}
	gc := g.cell(goal)
	goalOpen := !g.blocked[gc.y*g.w+gc.x]
	gc, ok = g.nearestOpen(gc)
	if !ok {
		return nil
	}

	cells := astarPath(s, gc, g.blocked, g.w, g.h)
	if len(cells) == 0 {
		return nil
	}
	out := make([]common.Vec3, 0, len(cells))
	for _, c := range cells[1:] {
		p := g.center(c)
		p.Y = goal.Y
		out = append(out, p)
	}
	end := goal
	if !goalOpen {
		end = g.center(gc)
		end.Y = goal.Y
	}
	if len(out) > 0 {
		out[len(out)-1] = end
	} else {
		out = append(out, end)
	}
	return smooth(out)
}

// smooth drops collinear interior points.
func smooth(path []common.Vec3) []common.Vec3 {
	if len(path) < 3 {
		return path
	}
	out := []common.Vec3{path[0]}
	for i := 1; i < len(path)-1; i++ {
		a := path[i].Sub(out[len(out)-1]).Normalize()
		b := path[i+1].Sub(path[i]).Normalize()
		if a.Sub(b).Len() > 1e-6 {
			out = append(out, path[i])
		}
	}
	return append(out, path[len(path)-1])
}

func astarPath(start, goal gridPos, blocked []bool, gridW, gridH int) []gridPos {
	if start.x < 0 || start.y < 0 || goal.x < 0 || goal.y < 0 {
		return nil
	}
	if start.x >= gridW || start.y >= gridH || goal.x >= gridW || goal.y >= gridH {
		return nil
	}
	if blocked[start.y*gridW+start.x] || blocked[goal.y*gridW+goal.x] {
		return nil
	}

	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*gridH)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*gridH)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	startIdx := start.y*gridW + start.x
	goalIdx := goal.y*gridW + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem).pos
		curIdx := cur.y*gridW + cur.x
		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx)
		}

		for _, n := range neighbors(cur, gridW, gridH) {
			idx := n.y*gridW + n.x
			if blocked[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + 1
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				heap.Push(open, &openItem{pos: n, f: tentativeG + heuristic(n, goal)})
			}
		}
	}
	return nil
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []gridPos {
	if startIdx == goalIdx {
		return []gridPos{{x: startIdx % gridW, y: startIdx / gridW}}
	}
	if cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]gridPos, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, gridPos{x: cur % gridW, y: cur / gridW})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p gridPos, gridW, gridH int) []gridPos {
	out := make([]gridPos, 0, 4)
	if p.x > 0 {
		out = append(out, gridPos{x: p.x - 1, y: p.y})
	}
	if p.x < gridW-1 {
		out = append(out, gridPos{x: p.x + 1, y: p.y})
	}
	if p.y > 0 {
		out = append(out, gridPos{x: p.x, y: p.y - 1})
	}
	if p.y < gridH-1 {
		out = append(out, gridPos{x: p.x, y: p.y + 1})
	}
	return out
}

func heuristic(a, b gridPos) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}

type openItem struct {
	pos   gridPos
	f     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
