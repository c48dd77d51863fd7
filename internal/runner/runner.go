// Package runner drives one A* search at a time on a background goroutine.
//
// The search owns the board while it computes a step and parks between
// steps, so readers going through View always see a whole frame. A host
// releases steps with Tick, which never blocks, or Step, which waits until the
// step has been applied.
package runner

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/model"
)

var ErrRunning = errors.New("a search is already running")

type Runner struct {
	mu      sync.Mutex
	board   *model.Board
	options []astar.Option

	steps   chan chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	last    astar.Result
	lastErr error
}

func New(board *model.Board, options ...astar.Option) *Runner {
	done := make(chan struct{})
	close(done)
	return &Runner{
		board:   board,
		options: options,
		steps:   make(chan chan struct{}),
		done:    done,
	}
}

// Start clears marks from any previous run, recomputes adjacency and launches
// the search. Nothing is expanded until the first Tick or Step.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrRunning
	}
	if !r.board.Ready() {
		return astar.ErrMissingEndpoint
	}
	r.board.ClearSearch()
	r.board.Prepare()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true
	r.last, r.lastErr = astar.Result{}, nil
	go r.run(ctx, cancel, r.done)
	return nil
}

func (r *Runner) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	var pending chan struct{}
	release := func() {
		if pending != nil {
			close(pending)
			pending = nil
		}
	}
	wait := func() {
		select {
		case pending = <-r.steps:
		case <-ctx.Done():
		}
	}
	onStep := func() {
		r.mu.Unlock()
		release()
		wait()
		r.mu.Lock()
	}

	wait()
	r.mu.Lock()
	res, err := astar.SearchBoard(ctx, r.board, onStep, r.options...)
	r.last, r.lastErr = res, err
	r.running = false
	r.mu.Unlock()
	release()

	fields := log.Fields{"found": res.Found, "length": res.Length(), "expanded": res.Expanded, "steps": res.Steps}
	if err != nil {
		log.WithFields(fields).Warnf("search stopped: %v", err)
		return
	}
	log.WithFields(fields).Info("search finished")
}

// Tick releases one step if the search is parked waiting for it. It never
// blocks.
func (r *Runner) Tick() bool {
	select {
	case r.steps <- nil:
		return true
	default:
		return false
	}
}

// Step releases one step and waits until it has been applied. The release
// after the last step lets the search return; Step returns false once it has.
func (r *Runner) Step() bool {
	done := r.Done()
	reply := make(chan struct{})
	select {
	case r.steps <- reply:
	case <-done:
		return false
	}
	select {
	case <-reply:
	case <-done:
	}
	return true
}

// Cancel stops a running search at its next step.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done is closed when the current search, if any, has returned.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the outcome of the most recent finished search.
func (r *Runner) Last() (astar.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.lastErr
}

// View calls f with exclusive access to the board.
func (r *Runner) View(f func(*model.Board)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f(r.board)
}

// Edit is View for mutations; it refuses while a search is running.
func (r *Runner) Edit(f func(*model.Board)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	f(r.board)
	return true
}
