package model

import "fmt"

// NewGrid allocates a rows x rows grid of Default cells drawn into a square of
// width pixels. Each cell is width/rows pixels wide; the remainder is margin.
func NewGrid(rows, width int) *Grid {
	if rows <= 0 {
		panic(fmt.Sprintf("model: grid needs at least one row, got %d", rows))
	}
	g := &Grid{
		Rows:  rows,
		Width: width,
		Gap:   width / rows,
		cells: make([]Cell, rows*rows),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < rows; c++ {
			g.cells[r*rows+c] = Cell{Row: r, Col: c}
		}
	}
	return g
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Rows
}

// Index returns the backing index of (row, col). It panics when out of bounds.
func (g *Grid) Index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("model: cell (%d,%d) outside %dx%d grid", row, col, g.Rows, g.Rows))
	}
	return row*g.Rows + col
}

// CellAt returns the cell at (row, col). It panics when out of bounds.
func (g *Grid) CellAt(row, col int) *Cell {
	return &g.cells[g.Index(row, col)]
}

// At returns the cell stored at a backing index.
func (g *Grid) At(index int) *Cell {
	return &g.cells[index]
}

// Len is the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Each visits cells in row-major order.
func (g *Grid) Each(f func(index int, c *Cell)) {
	for i := range g.cells {
		f(i, &g.cells[i])
	}
}

// Tags copies the tag of every cell in row-major order.
func (g *Grid) Tags() []Tag {
	tags := make([]Tag, len(g.cells))
	for i := range g.cells {
		tags[i] = g.cells[i].Tag
	}
	return tags
}

// RecomputeNeighbors rebuilds the neighbor lists of every cell.
func (g *Grid) RecomputeNeighbors() {
	for i := range g.cells {
		g.cells[i].RecomputeNeighbors(g)
	}
}

func (c *Cell) Position() Pos {
	return Pos{Row: c.Row, Col: c.Col}
}

func (c *Cell) IsWall() bool   { return c.Tag == Wall }
func (c *Cell) IsStart() bool  { return c.Tag == Start }
func (c *Cell) IsEnd() bool    { return c.Tag == End }
func (c *Cell) IsOpen() bool   { return c.Tag == Open }
func (c *Cell) IsClosed() bool { return c.Tag == Closed }
func (c *Cell) IsPath() bool   { return c.Tag == Path }

func (c *Cell) Reset()      { c.Tag = Default }
func (c *Cell) MakeStart()  { c.Tag = Start }
func (c *Cell) MakeEnd()    { c.Tag = End }
func (c *Cell) MakeWall()   { c.Tag = Wall }
func (c *Cell) MakeOpen()   { c.Tag = Open }
func (c *Cell) MakeClosed() { c.Tag = Closed }
func (c *Cell) MakePath()   { c.Tag = Path }

// Neighbors returns the grid indices of the passable orthogonal neighbors as of
// the last RecomputeNeighbors call.
func (c *Cell) Neighbors() []int {
	return c.neighbors
}

// RecomputeNeighbors checks down, up, right and left, in that order, and keeps
// every in-bounds cell that is not currently a Wall. Wall edits made afterwards
// are not seen until the next call.
func (c *Cell) RecomputeNeighbors(g *Grid) {
	c.neighbors = make([]int, 0, 4)
	if c.Row < g.Rows-1 && !g.CellAt(c.Row+1, c.Col).IsWall() {
		c.neighbors = append(c.neighbors, g.Index(c.Row+1, c.Col))
	}
	if c.Row > 0 && !g.CellAt(c.Row-1, c.Col).IsWall() {
		c.neighbors = append(c.neighbors, g.Index(c.Row-1, c.Col))
	}
	if c.Col < g.Rows-1 && !g.CellAt(c.Row, c.Col+1).IsWall() {
		c.neighbors = append(c.neighbors, g.Index(c.Row, c.Col+1))
	}
	if c.Col > 0 && !g.CellAt(c.Row, c.Col-1).IsWall() {
		c.neighbors = append(c.neighbors, g.Index(c.Row, c.Col-1))
	}
}
