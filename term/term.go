// Package term draws boards as coloured text, for the headless solve command.
package term

import (
	"bufio"
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/model"
)

type Renderer struct {
	out    io.Writer
	au     aurora.Aurora
	frames int
	err    error
}

// New returns a Renderer writing to out. With color false the output is the
// plain layout format.
func New(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, au: aurora.NewAurora(color)}
}

func (r *Renderer) paint(t model.Tag) interface{} {
	ch := string(t.Rune())
	switch t {
	case model.Start:
		return r.au.Bold(r.au.Brown(ch))
	case model.End:
		return r.au.Bold(r.au.Cyan(ch))
	case model.Wall:
		return r.au.Black(ch)
	case model.Open:
		return r.au.Green(ch)
	case model.Closed:
		return r.au.Red(ch)
	case model.Path:
		return r.au.Bold(r.au.Magenta(ch))
	default:
		return ch
	}
}

// Render writes the board followed by a blank line.
func (r *Renderer) Render(b *model.Board) error {
	w := bufio.NewWriter(r.out)
	g := b.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Rows; col++ {
			fmt.Fprint(w, r.paint(g.CellAt(row, col).Tag))
		}
		w.WriteByte('\n')
	}
	w.WriteByte('\n')
	return w.Flush()
}

// Frames returns a step hook that renders b after every search step, each
// frame headed by its number. The first write error stops further output and
// is reported by Err.
func (r *Renderer) Frames(b *model.Board) astar.StepFunc {
	return func() {
		if r.err != nil {
			return
		}
		r.frames++
		if _, err := fmt.Fprintf(r.out, "step %d\n", r.frames); err != nil {
			r.err = err
			return
		}
		r.err = r.Render(b)
	}
}

func (r *Renderer) Err() error {
	return r.err
}

// Summary writes a one-line outcome of res.
func (r *Renderer) Summary(res astar.Result) error {
	var err error
	if res.Found {
		_, err = fmt.Fprintf(r.out, "%s length=%d expanded=%d steps=%d\n",
			r.au.Green("path found"), res.Length(), res.Expanded, res.Steps)
	} else {
		_, err = fmt.Fprintf(r.out, "%s expanded=%d steps=%d\n",
			r.au.Red("no path"), res.Expanded, res.Steps)
	}
	return err
}
