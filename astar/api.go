package astar

import (
	"github.com/zucenko/pathviz/model"
)

// StepFunc is the render hook invoked after every expansion and every
// reconstruction step. It must return promptly.
type StepFunc func()

// Heuristic estimates the remaining cost between two positions.
type Heuristic func(from, to model.Pos) float64

// Manhattan is |dr| + |dc|, admissible and consistent on a 4-connected
// unit-cost grid.
func Manhattan(from, to model.Pos) float64 {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return float64(dr + dc)
}

// Result is the outcome of one Search call.
type Result struct {
	Found bool
	// Path runs from start to end inclusive; nil when nothing was found.
	Path []model.Pos
	// Expanded counts frontier pops.
	Expanded int
	// Steps counts onStep invocations.
	Steps int
}

// Length is the number of unit moves along Path.
func (r Result) Length() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// EventKind classifies a TraceEvent.
type EventKind int

const (
	EventPush EventKind = iota + 1
	EventRelax
	EventPop
)

func (k EventKind) Name() string {
	switch k {
	case EventPush:
		return "PUSH"
	case EventRelax:
		return "RELAX"
	case EventPop:
		return "POP"
	default:
		return "N/A"
	}
}

// TraceEvent reports one change to the search state.
type TraceEvent struct {
	Kind EventKind
	Cell model.Pos
	G    float64
	F    float64
	// Seq is the insertion sequence; only meaningful for EventPush and EventPop.
	Seq int
}

// Options defines parameters for the search.
type Options struct {
	Heuristic Heuristic
	Trace     func(TraceEvent)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the Manhattan heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) { options.Heuristic = h }
}

// WithTrace registers a callback receiving every push, relax and pop.
func WithTrace(trace func(TraceEvent)) Option {
	return func(options *Options) { options.Trace = trace }
}
