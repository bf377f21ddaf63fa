// Package autopilot steers a snake without a player. It is used to exercise
// the engine over many games.
package autopilot

import (
	"snake-grid/internal/core"
	"snake-grid/internal/snake"
)

const unreachable = -1

var directions = [...]snake.Direction{snake.Up, snake.Down, snake.Left, snake.Right}

// Pilot picks moves from a breadth-first distance field toward the food.
// Buffers are reused between calls; a Pilot is not safe for concurrent use.
type Pilot struct {
	grid    core.Grid
	blocked []bool
	dist    []int
	queue   []int
}

// New returns a Pilot for boards of g.
func New(g core.Grid) *Pilot {
	n := g.Area()
	return &Pilot{
		grid:    g,
		blocked: make([]bool, n),
		dist:    make([]int, n),
		queue:   make([]int, 0, n),
	}
}

// Next returns the key to press before the next tick. Among moves that
// neither leave the board nor enter the body, it prefers those whose free
// region can hold the snake, then the shortest path to the food. When no
// safe move exists it keeps the current direction.
func (p *Pilot) Next(s snake.State) snake.Key {
	clear(p.blocked)
	for _, c := range s.Snake {
		p.blocked[p.grid.Index(c)] = true
	}
	p.distances(s.Food)

	best := s.Direction
	bestRoomy := false
	bestDist := 0
	found := false
	head := s.Head()
	for _, d := range directions {
		if d == s.Direction.Opposite() {
			continue
		}
		dx, dy := d.Delta()
		c := head.Add(dx, dy)
		if !p.grid.InBounds(c) || p.blocked[p.grid.Index(c)] {
			continue
		}
		roomy := p.region(c, s.Len()) >= s.Len()
		dist := p.dist[p.grid.Index(c)]
		if dist == unreachable {
			dist = p.grid.Area()
		}
		if !found || better(roomy, dist, bestRoomy, bestDist) {
			best, bestRoomy, bestDist, found = d, roomy, dist, true
		}
	}
	return snake.KeyFor(best)
}

func better(roomy bool, dist int, bestRoomy bool, bestDist int) bool {
	if roomy != bestRoomy {
		return roomy
	}
	return dist < bestDist
}

// distances fills dist with step counts from target over free cells.
func (p *Pilot) distances(target core.Cell) {
	for i := range p.dist {
		p.dist[i] = unreachable
	}
	start := p.grid.Index(target)
	p.dist[start] = 0
	p.queue = append(p.queue[:0], start)
	for head := 0; head < len(p.queue); head++ {
		idx := p.queue[head]
		cur := p.grid.At(idx)
		for _, d := range directions {
			dx, dy := d.Delta()
			n := cur.Add(dx, dy)
			if !p.grid.InBounds(n) {
				continue
			}
			ni := p.grid.Index(n)
			if p.blocked[ni] || p.dist[ni] != unreachable {
				continue
			}
			p.dist[ni] = p.dist[idx] + 1
			p.queue = append(p.queue, ni)
		}
	}
}

// region counts free cells reachable from start, stopping once limit is hit.
func (p *Pilot) region(start core.Cell, limit int) int {
	seen := make(map[int]bool, limit)
	si := p.grid.Index(start)
	seen[si] = true
	queue := []int{si}
	for len(queue) > 0 && len(seen) < limit {
		cur := p.grid.At(queue[0])
		queue = queue[1:]
		for _, d := range directions {
			dx, dy := d.Delta()
			n := cur.Add(dx, dy)
			if !p.grid.InBounds(n) {
				continue
			}
			ni := p.grid.Index(n)
			if p.blocked[ni] || seen[ni] {
				continue
			}
			seen[ni] = true
			queue = append(queue, ni)
		}
	}
	return len(seen)
}
