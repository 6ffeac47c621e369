package corridor

import (
	"container/heap"
	"context"
	"math"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

type gridCell struct{ col, row int }

var cardinalSteps = []gridCell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonalSteps = []gridCell{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

type openEntry struct {
	cell    gridCell
	g, h, f float64
	seq     int // insertion order, for stable tie-breaking
}

type openHeap []*openEntry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)        { *h = append(*h, x.(*openEntry)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func heuristic(a, b gridCell, cfg floorplan.CorridorCfg) float64 {
	dx := math.Abs(float64(a.col - b.col))
	dy := math.Abs(float64(a.row - b.row))
	if !cfg.Diagonal {
		return dx + dy
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return hi + (cfg.DiagonalCost-1)*lo
}

// AStar finds a path from start to goal on grid, returning grid-cell
// centers in order. Tie-breaking on equal f prefers smaller h, then
// insertion order.
func AStar(ctx context.Context, grid *NavGrid, start, goal gridCell, cfg floorplan.CorridorCfg) ([]geomkernel.Point, error) {
	if !grid.Walkable(start.col, start.row) || !grid.Walkable(goal.col, goal.row) {
		return nil, floorplan.NewPathNotFoundError("start or goal cell is not walkable")
	}
	if start == goal {
		return []geomkernel.Point{grid.CellCenter(start.col, start.row)}, nil
	}

	gScore := map[gridCell]float64{start: 0}
	cameFrom := map[gridCell]gridCell{}
	closed := map[gridCell]bool{}

	open := &openHeap{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &openEntry{cell: start, g: 0, h: heuristic(start, goal, cfg), f: heuristic(start, goal, cfg), seq: seq})

	expansions := 0
	for open.Len() > 0 {
		if expansions%64 == 0 && ctx.Err() != nil {
			return nil, floorplan.NewPathNotFoundError("A* cancelled before reaching goal")
		}
		if expansions >= cfg.MaxNodes {
			return nil, floorplan.NewPathNotFoundError("A* exceeded max_nodes expansion cap")
		}

		current := heap.Pop(open).(*openEntry)
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true
		expansions++

		if current.cell == goal {
			return reconstructPath(grid, cameFrom, current.cell), nil
		}

		for _, step := range cardinalSteps {
			tryNeighbor(grid, cfg, current, gridCell{current.cell.col + step.col, current.cell.row + step.row}, 1.0, goal, gScore, cameFrom, closed, open, &seq)
		}
		if cfg.Diagonal {
			for _, step := range diagonalSteps {
				tryNeighbor(grid, cfg, current, gridCell{current.cell.col + step.col, current.cell.row + step.row}, cfg.DiagonalCost, goal, gScore, cameFrom, closed, open, &seq)
			}
		}
	}

	return nil, floorplan.NewPathNotFoundError("A* exhausted open set without reaching goal")
}

func tryNeighbor(grid *NavGrid, cfg floorplan.CorridorCfg, current *openEntry, neighbor gridCell, stepCost float64, goal gridCell, gScore map[gridCell]float64, cameFrom map[gridCell]gridCell, closed map[gridCell]bool, open *openHeap, seq *int) {
	if !grid.Walkable(neighbor.col, neighbor.row) || closed[neighbor] {
		return
	}
	tentativeG := current.g + stepCost
	if existing, ok := gScore[neighbor]; ok && existing <= tentativeG {
		return
	}
	gScore[neighbor] = tentativeG
	cameFrom[neighbor] = current.cell
	h := heuristic(neighbor, goal, cfg)
	*seq++
	heap.Push(open, &openEntry{cell: neighbor, g: tentativeG, h: h, f: tentativeG + h, seq: *seq})
}

func reconstructPath(grid *NavGrid, cameFrom map[gridCell]gridCell, goal gridCell) []geomkernel.Point {
	cells := []gridCell{goal}
	for {
		prev, ok := cameFrom[cells[len(cells)-1]]
		if !ok {
			break
		}
		cells = append(cells, prev)
	}
	points := make([]geomkernel.Point, len(cells))
	for i, c := range cells {
		points[len(cells)-1-i] = grid.CellCenter(c.col, c.row)
	}
	return points
}
