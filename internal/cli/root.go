// Package cli wires the pathviz command line: the interactive window as the
// root command, plus solve and version.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zucenko/pathviz/internal/config"
	"github.com/zucenko/pathviz/model"
)

// Version is overridden at build time through -ldflags.
var Version = "v0.1.0"

// Visualize opens the interactive window on board and blocks until it closes.
type Visualize func(ctx context.Context, cfg config.Config, board *model.Board) error

type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
}

func NewRootCmd(visualize Visualize) *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "pathviz",
		Short: "Interactive A* pathfinding on a square grid",
		Long: `pathviz opens a window with a square grid. Left click places the start,
then the end, then walls; right click erases. Space runs A* step by step,
R clears the search marks, C clears the board, Esc cancels or quits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.ApplyLogging()
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.board()
			if err != nil {
				return err
			}
			return visualize(cmd.Context(), a.cfg, board)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./pathviz.yaml or ~/.pathviz/pathviz.yaml)")
	flags.Int(config.KeyRows, config.DefaultRows, "cells per side")
	flags.Int(config.KeyWidth, config.DefaultWidth, "grid size in pixels")
	flags.String(config.KeyLayout, "", "layout file to start from")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "log level")
	flags.Duration(config.KeyStepDelay, config.DefaultStepDelay, "pause between animated steps")
	rootCmd.Flags().Int(config.KeyStepsPerFrame, config.DefaultStepsPerFrame, "search steps per drawn frame")
	for _, key := range []string{config.KeyRows, config.KeyWidth, config.KeyLayout, config.KeyLogLevel, config.KeyStepDelay} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	_ = a.v.BindPFlag(config.KeyStepsPerFrame, rootCmd.Flags().Lookup(config.KeyStepsPerFrame))

	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// board is the layout file when one is configured, an empty grid otherwise.
func (a *app) board() (*model.Board, error) {
	if a.cfg.Layout == "" {
		return model.NewBoard(a.cfg.Rows, a.cfg.Width), nil
	}
	return LoadBoard(a.cfg.Layout, a.cfg.Width)
}

// LoadBoard parses the layout file at path.
func LoadBoard(path string, width int) (*model.Board, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer file.Close()
	board, err := model.ParseLayout(file, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return board, nil
}
