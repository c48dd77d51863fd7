// Package visual holds the interactive side of the visualizer that does not
// touch the window: what clicks and keys do to the board, when search steps
// are released, and how each cell should be coloured.
package visual

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/internal/runner"
	"github.com/zucenko/pathviz/model"
)

type Controller struct {
	State         State
	StepsPerFrame int

	ctx    context.Context
	runner *runner.Runner
	fades  *Fades
	tags   []model.Tag
	status string
}

func NewController(ctx context.Context, board *model.Board, stepsPerFrame int) *Controller {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	c := &Controller{
		State:         IDLE,
		StepsPerFrame: stepsPerFrame,
		ctx:           ctx,
		runner:        runner.New(board),
		fades:         NewFades(),
	}
	c.runner.View(func(b *model.Board) { c.tags = b.Grid.Tags() })
	return c
}

// Paint applies a left click at window coordinates. Clicks are ignored while
// a search runs or outside the grid.
func (c *Controller) Paint(x, y int) {
	c.edit(x, y, (*model.Board).Paint)
}

// Erase applies a right click at window coordinates.
func (c *Controller) Erase(x, y int) {
	c.edit(x, y, (*model.Board).Erase)
}

func (c *Controller) edit(x, y int, apply func(b *model.Board, row, col int)) {
	c.runner.Edit(func(b *model.Board) {
		row, col, ok := b.CellAtPixel(x, y)
		if !ok {
			return
		}
		apply(b, row, col)
	})
}

// Run starts a search between the painted endpoints.
func (c *Controller) Run() {
	err := c.runner.Start(c.ctx)
	switch {
	case errors.Is(err, astar.ErrMissingEndpoint):
		c.status = "place a start and an end first"
		return
	case errors.Is(err, runner.ErrRunning):
		return
	case err != nil:
		log.Warnf("cannot start search: %v", err)
		c.status = err.Error()
		return
	}
	c.fades.Reset()
	c.State = SEARCHING
	c.status = ""
}

// Clear empties the board.
func (c *Controller) Clear() {
	if c.runner.Edit(func(b *model.Board) { b.Clear() }) {
		c.fades.Reset()
		c.State = IDLE
		c.status = ""
	}
}

// ClearMarks removes the marks left by the last search and keeps walls and
// endpoints.
func (c *Controller) ClearMarks() {
	if c.runner.Edit(func(b *model.Board) { b.ClearSearch() }) {
		c.fades.Reset()
		c.State = IDLE
		c.status = ""
	}
}

// Escape cancels a running search. It reports true when nothing was running,
// which the window treats as a request to quit.
func (c *Controller) Escape() bool {
	if c.runner.Running() {
		c.runner.Cancel()
		<-c.runner.Done()
		return false
	}
	return true
}

// Frame advances the search by up to StepsPerFrame steps and the animations
// by dt seconds.
func (c *Controller) Frame(dt float32) {
	if c.State == SEARCHING {
		for i := 0; i < c.StepsPerFrame; i++ {
			if !c.runner.Step() {
				break
			}
		}
	}

	var tags []model.Tag
	var rows int
	c.runner.View(func(b *model.Board) {
		tags = b.Grid.Tags()
		rows = b.Grid.Rows
	})
	if len(tags) == len(c.tags) {
		for _, change := range model.Diff(rows, c.tags, tags) {
			if change.Tag == model.Path {
				c.fades.FadeIn(model.Pos{Row: change.Row, Col: change.Col})
			}
		}
	}
	c.tags = tags

	if c.State == SEARCHING && !c.runner.Running() {
		c.finish()
	}
	c.fades.Update(dt)
}

func (c *Controller) finish() {
	res, err := c.runner.Last()
	switch {
	case err != nil:
		c.State = CANCELLED
		c.status = "search cancelled"
	case res.Found:
		c.State = FOUND
		c.status = fmt.Sprintf("length %d, expanded %d", res.Length(), res.Expanded)
		c.fades.Pulse(res.Path[len(res.Path)-1])
	default:
		c.State = NO_PATH
		c.status = fmt.Sprintf("no path, expanded %d", res.Expanded)
	}
}

// Status is the text for the line under the grid.
func (c *Controller) Status() string {
	if c.status == "" {
		return c.State.Name()
	}
	return c.State.Name() + "  " + c.status
}

// EachCell calls f with the current colour of every cell, row by row.
func (c *Controller) EachCell(f func(row, col int, colour color.RGBA)) {
	c.runner.View(func(b *model.Board) {
		b.Grid.Each(func(_ int, cell *model.Cell) {
			colour := TagColour(cell.Tag)
			if alpha := c.fades.Alpha(cell.Position()); alpha < 1 {
				colour = Blend(COLOR_DEFAULT, colour, alpha)
			}
			f(cell.Row, cell.Col, colour)
		})
	})
}

// Geometry returns the row count and cell size in pixels.
func (c *Controller) Geometry() (rows, gap int) {
	c.runner.View(func(b *model.Board) {
		rows, gap = b.Grid.Rows, b.Grid.Gap
	})
	return
}

func (c *Controller) Running() bool {
	return c.runner.Running()
}
