package astar

import "github.com/zucenko/pathviz/model"

// reconstruct walks cameFrom back from end. Every cell walked calls step; the
// cells between start and end are tagged Path. The start has no predecessor,
// so it keeps its tag, and end is never retagged here.
func reconstruct(grid *model.Grid, cameFrom map[int]int, end int, step func()) []model.Pos {
	path := []model.Pos{grid.At(end).Position()}
	current := end
	for {
		previous, ok := cameFrom[current]
		if !ok {
			break
		}
		current = previous
		cell := grid.At(current)
		if _, hasPrevious := cameFrom[current]; hasPrevious {
			cell.MakePath()
		}
		path = append(path, cell.Position())
		step()
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reconstruct rebuilds and marks the path ending at end from a predecessor
// mapping keyed by position.
func Reconstruct(grid *model.Grid, predecessors map[model.Pos]model.Pos, end model.Pos, onStep StepFunc) []model.Pos {
	cameFrom := make(map[int]int, len(predecessors))
	for to, from := range predecessors {
		cameFrom[grid.Index(to.Row, to.Col)] = grid.Index(from.Row, from.Col)
	}
	if onStep == nil {
		onStep = func() {}
	}
	return reconstruct(grid, cameFrom, grid.Index(end.Row, end.Col), onStep)
}
