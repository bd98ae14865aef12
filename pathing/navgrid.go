package pathing

import (
	"math"

	astar "github.com/beefsack/go-astar"
	"github.com/solarlune/resolv"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// NavGrid represents the walkable areas of the arena
type NavGrid struct {
	Width, Height int
	CellSize      float64
	Nodes         [][]*NavNode // 2D grid of nodes
}

// NavNode represents a single cell in the navigation grid
// Implements astar.Pather interface
type NavNode struct {
	X, Y     int
	Walkable bool
	Grid     *NavGrid
}

var neighborDirs = []struct{ dx, dy int }{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, // Cardinal
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, // Diagonal
}

// PathNeighbors returns adjacent walkable nodes (implements astar.Pather)
func (n *NavNode) PathNeighbors() []astar.Pather {
	neighbors := make([]astar.Pather, 0, 8)
	for _, d := range neighborDirs {
		nx, ny := n.X+d.dx, n.Y+d.dy
		if !n.Grid.Walkable(nx, ny) {
			continue
		}
		// No cutting corners past a blocked cardinal cell
		if d.dx != 0 && d.dy != 0 {
			if !n.Grid.Walkable(n.X+d.dx, n.Y) || !n.Grid.Walkable(n.X, n.Y+d.dy) {
				continue
			}
		}
		neighbors = append(neighbors, n.Grid.Nodes[ny][nx])
	}
	return neighbors
}

// PathNeighborCost returns the movement cost between adjacent nodes (implements astar.Pather)
func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	dx := float64(toNode.X - n.X)
	dy := float64(toNode.Y - n.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PathEstimatedCost returns heuristic distance to target (implements astar.Pather)
func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	dx := float64(toNode.X - n.X)
	dy := float64(toNode.Y - n.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// NewNavGrid builds a navigation grid covering width x height world units.
// Cells overlapping any object carrying one of blockingTags are unwalkable.
func NewNavGrid(space *resolv.Space, width, height, cellSize float64, blockingTags ...string) *NavGrid {
	if cellSize <= 0 {
		cellSize = cfg.Pathfinding.CellSize
	}
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(height / cellSize))

	grid := &NavGrid{
		Width:    gridW,
		Height:   gridH,
		CellSize: cellSize,
		Nodes:    make([][]*NavNode, gridH),
	}
	for y := 0; y < gridH; y++ {
		grid.Nodes[y] = make([]*NavNode, gridW)
		for x := 0; x < gridW; x++ {
			grid.Nodes[y][x] = &NavNode{X: x, Y: y, Walkable: true, Grid: grid}
		}
	}

	if space != nil {
		grid.Rasterize(space, blockingTags...)
	}
	return grid
}

// Rasterize marks every cell overlapped by a blocking object as unwalkable.
func (g *NavGrid) Rasterize(space *resolv.Space, blockingTags ...string) {
	for _, obj := range space.Objects() {
		if len(blockingTags) > 0 && !obj.HasTags(blockingTags...) {
			continue
		}
		g.Block(gamemath.Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H})
	}
}

// Block marks the cells overlapped by r as unwalkable.
func (g *NavGrid) Block(r gamemath.Rect) {
	minX := clampInt(int(math.Floor(r.X/g.CellSize)), 0, g.Width-1)
	maxX := clampInt(int(math.Ceil((r.X+r.W)/g.CellSize))-1, 0, g.Width-1)
	minY := clampInt(int(math.Floor(r.Y/g.CellSize)), 0, g.Height-1)
	maxY := clampInt(int(math.Ceil((r.Y+r.H)/g.CellSize))-1, 0, g.Height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			g.Nodes[y][x].Walkable = false
		}
	}
}

// Walkable reports whether the cell exists and can be walked through.
func (g *NavGrid) Walkable(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.Nodes[y][x].Walkable
}

// FindPath uses go-astar to find a path between world positions. The
// returned corners start at from and end at to; straight runs through the
// grid are collapsed into single segments.
func (g *NavGrid) FindPath(from, to gamemath.Vec2) (Polyline, bool) {
	if g.Width == 0 || g.Height == 0 {
		return nil, false
	}
	sx, sy := g.WorldToGrid(from)
	gx, gy := g.WorldToGrid(to)

	startNode := g.Nodes[sy][sx]
	goalNode := g.Nodes[gy][gx]

	// Handle case where start or goal is in solid geometry
	if !startNode.Walkable {
		startNode = g.findNearestWalkable(sx, sy)
	}
	if !goalNode.Walkable {
		goalNode = g.findNearestWalkable(gx, gy)
	}
	if startNode == nil || goalNode == nil {
		return nil, false
	}
	if startNode == goalNode {
		return Polyline{from, to}, true
	}

	path, _, found := astar.Path(startNode, goalNode)
	if !found || len(path) == 0 {
		return nil, false
	}

	nodes := make([]*NavNode, len(path))
	for i, p := range path {
		nodes[i] = p.(*NavNode)
	}
	// go-astar returns the path goal first
	if nodes[0] != startNode {
		for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
			nodes[i], nodes[j] = nodes[j], nodes[i]
		}
	}

	return g.corners(from, to, nodes), true
}

func (g *NavGrid) corners(from, to gamemath.Vec2, nodes []*NavNode) Polyline {
	points := make([]gamemath.Vec2, 0, len(nodes)+2)
	points = append(points, from)
	for _, n := range nodes[1 : len(nodes)-1] {
		points = append(points, g.GridToWorld(n.X, n.Y))
	}
	points = append(points, to)

	out := Polyline{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if gamemath.Collinear(out[len(out)-1], points[i], points[i+1]) {
			continue
		}
		out = append(out, points[i])
	}
	return append(out, points[len(points)-1])
}

// findNearestWalkable finds the nearest walkable node to the given cell
func (g *NavGrid) findNearestWalkable(x, y int) *NavNode {
	for radius := 1; radius <= cfg.Pathfinding.SnapRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if g.Walkable(x+dx, y+dy) {
					return g.Nodes[y+dy][x+dx]
				}
			}
		}
	}
	return nil
}

// WorldToGrid converts a world position to clamped grid coordinates
func (g *NavGrid) WorldToGrid(p gamemath.Vec2) (int, int) {
	return clampInt(int(math.Floor(p.X/g.CellSize)), 0, g.Width-1),
		clampInt(int(math.Floor(p.Y/g.CellSize)), 0, g.Height-1)
}

// GridToWorld converts grid coordinates to world coordinates (center of cell)
func (g *NavGrid) GridToWorld(gridX, gridY int) gamemath.Vec2 {
	return gamemath.Vec2{
		X: float64(gridX)*g.CellSize + g.CellSize/2,
		Y: float64(gridY)*g.CellSize + g.CellSize/2,
	}
}

func clampInt(v, minVal, maxVal int) int {
	return max(minVal, min(maxVal, v))
}
