package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/internal/config"
	"github.com/zucenko/pathviz/model"
)

func writeLayout(t *testing.T, layout string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.txt")
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o644))
	return path
}

func execute(t *testing.T, visualize Visualize, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	if visualize == nil {
		visualize = func(context.Context, config.Config, *model.Board) error { return nil }
	}
	cmd := NewRootCmd(visualize)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "pathviz "+Version+"\n", out)
}

func TestSolveFound(t *testing.T) {
	path := writeLayout(t, "S..\n.#.\n..E\n")
	out, err := execute(t, nil, "solve", "--layout", path, "--color=false")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "path found length=4 expanded=8 steps=11\n"), out)
	assert.Contains(t, out, "#")
	assert.Equal(t, 3, strings.Count(out, "*"))
}

func TestSolveAnimated(t *testing.T) {
	path := writeLayout(t, "S.\n.E\n")
	out, err := execute(t, nil, "solve", "--layout", path, "--animate", "--color=false", "--step_delay=0s")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "step 1\n"), out)
	assert.Contains(t, out, "path found length=2")
}

func TestSolveNoPath(t *testing.T) {
	path := writeLayout(t, ".S.\n###\n.E.\n")
	out, err := execute(t, nil, "solve", "--layout", path, "--color=false")
	require.NoError(t, err)
	assert.Contains(t, out, "no path expanded=3")
}

func TestSolveErrors(t *testing.T) {
	_, err := execute(t, nil, "solve")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, nil, "solve", "--layout", writeLayout(t, "S.\n"))
	assert.ErrorIs(t, err, model.ErrLayout)

	_, err = execute(t, nil, "solve", "--layout", writeLayout(t, "S.\n..\n"))
	assert.ErrorIs(t, err, astar.ErrMissingEndpoint)

	_, err = execute(t, nil, "solve", "--layout", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRootOpensVisualizer(t *testing.T) {
	var gotCfg config.Config
	var gotBoard *model.Board
	visualize := func(_ context.Context, cfg config.Config, board *model.Board) error {
		gotCfg, gotBoard = cfg, board
		return nil
	}

	_, err := execute(t, visualize, "--rows", "10", "--width", "200", "--steps_per_frame", "4")
	require.NoError(t, err)
	assert.Equal(t, 4, gotCfg.StepsPerFrame)
	require.NotNil(t, gotBoard)
	assert.Equal(t, 10, gotBoard.Grid.Rows)
	assert.Equal(t, 20, gotBoard.Grid.Gap)
	assert.False(t, gotBoard.Ready())
}

func TestRootWithLayout(t *testing.T) {
	var gotBoard *model.Board
	visualize := func(_ context.Context, _ config.Config, board *model.Board) error {
		gotBoard = board
		return nil
	}
	path := writeLayout(t, "S...\n.##.\n....\n...E\n")
	_, err := execute(t, visualize, "--layout", path, "--width", "400")
	require.NoError(t, err)
	require.NotNil(t, gotBoard)
	assert.True(t, gotBoard.Ready())
	assert.Equal(t, 100, gotBoard.Grid.Gap)
}

func TestRootRejectsBadConfig(t *testing.T) {
	_, err := execute(t, nil, "--rows", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
