package term

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/model"
)

func TestRenderPlain(t *testing.T) {
	b, err := model.ParseLayout(strings.NewReader("S.\n#E\n"), 0)
	require.NoError(t, err)
	b.Grid.CellAt(0, 1).MakeOpen()

	var out bytes.Buffer
	require.NoError(t, New(&out, false).Render(b))
	assert.Equal(t, "So\n#E\n\n", out.String())
}

func TestRenderColoured(t *testing.T) {
	b, err := model.ParseLayout(strings.NewReader("S.\n.E\n"), 0)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, New(&out, true).Render(b))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "S")
}

func TestFramesDuringSearch(t *testing.T) {
	b, err := model.ParseLayout(strings.NewReader("S..\n.#.\n..E\n"), 0)
	require.NoError(t, err)
	b.Prepare()

	var out bytes.Buffer
	r := New(&out, false)
	res, err := astar.SearchBoard(context.Background(), b, r.Frames(b))
	require.NoError(t, err)
	require.NoError(t, r.Err())

	assert.Equal(t, res.Steps, strings.Count(out.String(), "step "))
	assert.True(t, strings.HasPrefix(out.String(), "step 1\n"))
	frames := strings.Split(out.String(), "step ")
	assert.Contains(t, frames[len(frames)-1], "*")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestFramesStopAfterWriteError(t *testing.T) {
	b := model.NewBoard(2, 2)
	r := New(failingWriter{}, false)
	step := r.Frames(b)
	step()
	step()
	assert.EqualError(t, r.Err(), "closed")
	assert.Equal(t, 1, r.frames)
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, false)
	require.NoError(t, r.Summary(astar.Result{Found: true, Path: make([]model.Pos, 5), Expanded: 7, Steps: 9}))
	require.NoError(t, r.Summary(astar.Result{Expanded: 3, Steps: 3}))
	assert.Equal(t, "path found length=4 expanded=7 steps=9\nno path expanded=3 steps=3\n", out.String())
}
