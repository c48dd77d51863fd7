package astar

import (
	"container/heap"
	"context"
	"errors"
	"math"

	mapset "github.com/deckarep/golang-set"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/model"
)

// ErrMissingEndpoint is returned by SearchBoard when start or end is unset.
var ErrMissingEndpoint = errors.New("start and end must both be set")

// SearchBoard runs Search between the board's endpoints. Neighbor lists are
// used as they are; call Board.Prepare first to pick up wall edits.
func SearchBoard(ctx context.Context, board *model.Board, onStep StepFunc, options ...Option) (Result, error) {
	start, ok := board.Start()
	if !ok {
		return Result{}, ErrMissingEndpoint
	}
	end, ok := board.End()
	if !ok {
		return Result{}, ErrMissingEndpoint
	}
	return Search(ctx, board.Grid, start, end, onStep, options...)
}

// Search runs A* from start to end over grid, tagging cells Open and Closed as
// it goes and Path once the end is reached. onStep is called once per frontier
// pop and once per reconstructed cell. ctx is polled before every pop; when it
// is done the search stops and returns ctx.Err().
//
// Exhausting the frontier is not an error: the Result has Found == false.
func Search(
	ctx context.Context,
	grid *model.Grid,
	start model.Pos,
	end model.Pos,
	onStep StepFunc,
	options ...Option,
) (Result, error) {
	searchOptions := Options{Heuristic: Manhattan}
	for _, option := range options {
		option(&searchOptions)
	}
	if onStep == nil {
		onStep = func() {}
	}
	trace := searchOptions.Trace
	if trace == nil {
		trace = func(TraceEvent) {}
	}
	h := searchOptions.Heuristic

	startIndex := grid.Index(start.Row, start.Col)
	endIndex := grid.Index(end.Row, end.Col)

	gScore := make([]float64, grid.Len())
	fScore := make([]float64, grid.Len())
	for i := range gScore {
		gScore[i] = math.Inf(1)
		fScore[i] = math.Inf(1)
	}
	gScore[startIndex] = 0
	fScore[startIndex] = h(start, end)

	cameFrom := make(map[int]int)
	openSet := make(frontier, 0)
	heap.Init(&openSet)
	queued := mapset.NewThreadUnsafeSet()

	count := 0
	heap.Push(&openSet, frontierItem{f: fScore[startIndex], seq: count, cell: startIndex})
	queued.Add(startIndex)
	trace(TraceEvent{Kind: EventPush, Cell: start, G: 0, F: fScore[startIndex], Seq: count})

	result := Result{}
	step := func() {
		result.Steps++
		onStep()
	}

	for openSet.Len() > 0 {
		if err := ctx.Err(); err != nil {
			log.WithFields(log.Fields{"expanded": result.Expanded, "steps": result.Steps}).Debug("search cancelled")
			return result, err
		}

		item := heap.Pop(&openSet).(frontierItem)
		current := item.cell
		queued.Remove(current)
		currentCell := grid.At(current)
		result.Expanded++
		trace(TraceEvent{Kind: EventPop, Cell: currentCell.Position(), G: gScore[current], F: item.f, Seq: item.seq})

		// the end check must precede expansion
		if current == endIndex {
			result.Path = reconstruct(grid, cameFrom, endIndex, step)
			grid.At(endIndex).MakeEnd()
			result.Found = true
			log.WithFields(log.Fields{
				"length":   result.Length(),
				"expanded": result.Expanded,
				"steps":    result.Steps,
			}).Debug("search found path")
			return result, nil
		}

		for _, neighbor := range currentCell.Neighbors() {
			tentativeG := gScore[current] + 1
			if tentativeG >= gScore[neighbor] {
				continue
			}
			neighborCell := grid.At(neighbor)
			cameFrom[neighbor] = current
			gScore[neighbor] = tentativeG
			fScore[neighbor] = tentativeG + h(neighborCell.Position(), end)
			trace(TraceEvent{Kind: EventRelax, Cell: neighborCell.Position(), G: tentativeG, F: fScore[neighbor]})
			if !queued.Contains(neighbor) {
				count++
				heap.Push(&openSet, frontierItem{f: fScore[neighbor], seq: count, cell: neighbor})
				queued.Add(neighbor)
				neighborCell.MakeOpen()
				trace(TraceEvent{Kind: EventPush, Cell: neighborCell.Position(), G: tentativeG, F: fScore[neighbor], Seq: count})
			}
		}

		step()

		if current != startIndex {
			currentCell.MakeClosed()
		}
	}

	log.WithFields(log.Fields{"expanded": result.Expanded, "steps": result.Steps}).Debug("search exhausted")
	return result, nil
}
