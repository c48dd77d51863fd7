package model

// ClientMessage asks the server to search a board given in layout text.
type ClientMessage struct {
	Layout string
}

// ServerMessage is one gob frame on the search socket. Exactly one of the
// slices is non-empty.
type ServerMessage struct {
	Setup  []Setup
	Frames []Frame
	Finish []Finish
}

type Setup struct {
	SessionId string
	Rows      int
	Tags      []Tag
}

// Frame lists the cells whose tag changed during one search step.
type Frame struct {
	Step    int
	Changes []Change
}

type Change struct {
	Row, Col int
	Tag      Tag
}

type Finish struct {
	Found    bool
	Path     []Pos
	Expanded int
	Steps    int
	Error    string
}

// Diff reports the cells whose tag differs between two row-major snapshots of
// the same grid.
func Diff(rows int, before, after []Tag) []Change {
	changes := make([]Change, 0)
	for i := range after {
		if i < len(before) && before[i] == after[i] {
			continue
		}
		changes = append(changes, Change{Row: i / rows, Col: i % rows, Tag: after[i]})
	}
	return changes
}
