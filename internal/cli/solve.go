package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/internal/config"
	"github.com/zucenko/pathviz/term"
)

func newSolveCmd(a *app) *cobra.Command {
	var animate, colour bool
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search a layout file and print the result",
		Long: `solve reads a layout ('.' empty, '#' wall, 'S' start, 'E' end, one row per
line), runs A* on it and prints the board with the search marks. With
--animate every step is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Layout == "" {
				return fmt.Errorf("%w: solve needs --layout", config.ErrInvalid)
			}
			board, err := LoadBoard(a.cfg.Layout, a.cfg.Width)
			if err != nil {
				return err
			}
			board.Prepare()

			out := term.New(cmd.OutOrStdout(), colour)
			var onStep astar.StepFunc
			if animate {
				frames := out.Frames(board)
				delay := a.cfg.StepDelay
				onStep = func() {
					frames()
					if delay > 0 {
						time.Sleep(delay)
					}
				}
			}

			res, err := astar.SearchBoard(cmd.Context(), board, onStep)
			if err != nil {
				return err
			}
			if err := out.Err(); err != nil {
				return err
			}
			if !animate {
				if err := out.Render(board); err != nil {
					return err
				}
			}
			return out.Summary(res)
		},
	}
	cmd.Flags().BoolVar(&animate, "animate", false, "print every search step")
	cmd.Flags().BoolVar(&colour, "color", true, "colour the output")
	return cmd
}
