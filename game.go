package main

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/pathviz/internal/config"
	"github.com/zucenko/pathviz/internal/visual"
	"github.com/zucenko/pathviz/model"
)

const title = "Pathfinding Visualizer"

// errQuit ends ebiten.Run when Esc is pressed with no search running.
var errQuit = errors.New("quit")

type Game struct {
	ctrl  *visual.Controller
	width int
	font  font.Face
	last  time.Time
}

func loadFont() (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    16,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.ctrl.Escape() {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Run()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.ClearMarks()
	}

	// held buttons paint while dragging
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Paint(ebiten.CursorPosition())
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.ctrl.Erase(ebiten.CursorPosition())
	}
	return nil
}

func (g *Game) update(screen *ebiten.Image) error {
	if err := g.handleInput(); err != nil {
		return err
	}

	now := time.Now()
	g.ctrl.Frame(float32(now.Sub(g.last).Seconds()))
	g.last = now

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	if err := screen.Fill(visual.COLOR_DEFAULT); err != nil {
		log.Warnf("fill %v", err)
	}

	rows, gap := g.ctrl.Geometry()
	g.ctrl.EachCell(func(row, col int, colour color.RGBA) {
		ebitenutil.DrawRect(screen, float64(col*gap), float64(row*gap), float64(gap), float64(gap), colour)
	})
	size := float64(rows * gap)
	for i := 0; i <= rows; i++ {
		p := float64(i * gap)
		ebitenutil.DrawLine(screen, 0, p, size, p, visual.COLOR_GRID)
		ebitenutil.DrawLine(screen, p, 0, p, size, visual.COLOR_GRID)
	}

	ebitenutil.DrawRect(screen, 0, float64(g.width), float64(g.width), config.HudHeight, visual.COLOR_HUD)
	text.Draw(screen, g.ctrl.Status(), g.font, 8, g.width+config.HudHeight-8, color.White)
}

// visualize runs the window until it is closed or Esc is pressed while idle.
func visualize(ctx context.Context, cfg config.Config, board *model.Board) error {
	face, err := loadFont()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &Game{
		ctrl:  visual.NewController(ctx, board, cfg.StepsPerFrame),
		width: cfg.Width,
		font:  face,
		last:  time.Now(),
	}
	log.WithFields(log.Fields{"rows": board.Grid.Rows, "width": cfg.Width}).Info("opening window")
	err = ebiten.Run(g.update, cfg.Width, cfg.Width+config.HudHeight, 1, title)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
