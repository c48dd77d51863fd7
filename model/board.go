package model

// Board is a Grid plus the user's start and end selections. It enforces the
// painting rules: at most one Start and one End, and neither can be painted
// over with a Wall.
type Board struct {
	Grid  *Grid
	start *Pos
	end   *Pos
}

func NewBoard(rows, width int) *Board {
	return &Board{Grid: NewGrid(rows, width)}
}

func (b *Board) Start() (Pos, bool) {
	if b.start == nil {
		return Pos{}, false
	}
	return *b.start, true
}

func (b *Board) End() (Pos, bool) {
	if b.end == nil {
		return Pos{}, false
	}
	return *b.end, true
}

// Ready reports whether both endpoints are set.
func (b *Board) Ready() bool {
	return b.start != nil && b.end != nil
}

func (b *Board) isStart(p Pos) bool { return b.start != nil && *b.start == p }
func (b *Board) isEnd(p Pos) bool   { return b.end != nil && *b.end == p }

// Paint applies a primary click: the first click places Start, the second
// places End, every later click places a Wall.
func (b *Board) Paint(row, col int) {
	p := Pos{Row: row, Col: col}
	cell := b.Grid.CellAt(row, col)
	switch {
	case b.start == nil && !b.isEnd(p):
		b.start = &p
		cell.MakeStart()
	case b.end == nil && !b.isStart(p):
		b.end = &p
		cell.MakeEnd()
	case !b.isStart(p) && !b.isEnd(p):
		cell.MakeWall()
	}
}

// Erase applies a secondary click: the cell goes back to Default and stops
// being an endpoint.
func (b *Board) Erase(row, col int) {
	p := Pos{Row: row, Col: col}
	b.Grid.CellAt(row, col).Reset()
	if b.isStart(p) {
		b.start = nil
	} else if b.isEnd(p) {
		b.end = nil
	}
}

// Clear replaces the grid with a fresh one of the same size.
func (b *Board) Clear() {
	b.Grid = NewGrid(b.Grid.Rows, b.Grid.Width)
	b.start = nil
	b.end = nil
}

// ClearSearch wipes Open, Closed and Path marks left by a previous run and
// restores the endpoint tags.
func (b *Board) ClearSearch() {
	b.Grid.Each(func(_ int, c *Cell) {
		switch c.Tag {
		case Open, Closed, Path:
			c.Reset()
		}
	})
	if b.start != nil {
		b.Grid.CellAt(b.start.Row, b.start.Col).MakeStart()
	}
	if b.end != nil {
		b.Grid.CellAt(b.end.Row, b.end.Col).MakeEnd()
	}
}

// Prepare recomputes the adjacency of every cell before a search run.
func (b *Board) Prepare() {
	b.Grid.RecomputeNeighbors()
}

// CellAtPixel maps a window coordinate onto the grid. Points in the margin
// left over by width % rows are reported as outside.
func (b *Board) CellAtPixel(x, y int) (row, col int, ok bool) {
	gap := b.Grid.Gap
	if gap <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/gap, x/gap
	if !b.Grid.InBounds(row, col) {
		return 0, 0, false
	}
	return row, col, true
}
