package model

import "fmt"

// Tag is the traversal state of a Cell.
type Tag int

const (
	Default Tag = iota
	Start
	End
	Wall
	Open
	Closed
	Path
)

func (t Tag) Name() string {
	switch t {
	case Default:
		return "DEFAULT"
	case Start:
		return "START"
	case End:
		return "END"
	case Wall:
		return "WALL"
	case Open:
		return "OPEN"
	case Closed:
		return "CLOSED"
	case Path:
		return "PATH"
	default:
		return fmt.Sprintf("N/A(%d)", int(t))
	}
}

// Pos addresses a cell by row and column.
type Pos struct {
	Row, Col int
}

type Cell struct {
	Row, Col int
	Tag      Tag
	// indices into the owning Grid's cells
	neighbors []int
}

// Grid is a square arrangement of Cells stored row-major.
type Grid struct {
	Rows  int
	Width int
	Gap   int
	cells []Cell
}
