// Package window runs a game in a desktop window using ebiten.
package window

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/alieninvasion/internal/game"
	"github.com/tomz197/alieninvasion/internal/input"
	"github.com/tomz197/alieninvasion/internal/object"
)

// Font sizes per text kind, in logical pixels.
const (
	hudFontSize    = 40
	buttonFontSize = 40
	hintFontSize   = 18
)

// Window adapts a game.Game to ebiten.Game.
type Window struct {
	game    *game.Game
	surface *imageSurface

	cursorVisible bool
	cursorSet     bool
}

var _ ebiten.Game = (*Window)(nil)

// New creates a window frontend for g.
func New(g *game.Game) (*Window, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Window{
		game:    g,
		surface: newImageSurface(source),
	}, nil
}

// Run opens the window and plays until the player quits or closes it.
func Run(g *game.Game, title string) error {
	w, err := New(g)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(g.Screen.Width), int(g.Screen.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(game.TickRate)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	in := inputFrom(pollKeys())
	w.game.Update(in)

	if !w.game.Running() {
		return ebiten.Termination
	}

	if visible := w.game.CursorVisible(); !w.cursorSet || visible != w.cursorVisible {
		if visible {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeHidden)
		}
		w.cursorVisible = visible
		w.cursorSet = true
	}
	return nil
}

// Draw redraws the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.game.Settings.BgColor)

	w.surface.dst = screen
	w.game.Draw(object.DrawContext{Surface: w.surface, Settings: w.game.Settings})
	w.surface.dst = nil
}

// Layout keeps the logical playfield size whatever the window size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(w.game.Screen.Width), int(w.game.Screen.Height)
}

// keys is the raw device state sampled once per tick.
type keys struct {
	closing     bool
	quit        bool
	left, right bool
	fire        bool
	start       bool
	clicked     bool
	cursor      image.Point
}

// pollKeys samples ebiten's input state.
func pollKeys() keys {
	k := keys{
		closing: ebiten.IsWindowBeingClosed(),
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ),
		left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		fire:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		start:   inpututil.IsKeyJustPressed(ebiten.KeyP),
		clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	if k.clicked {
		x, y := ebiten.CursorPosition()
		k.cursor = image.Pt(x, y)
	}
	return k
}

// inputFrom translates sampled device state into game input.
func inputFrom(k keys) input.Input {
	in := input.Input{
		Quit:  k.closing || k.quit,
		Left:  k.left,
		Right: k.right,
		Start: k.start,
	}
	if k.fire {
		in.Fire = 1
	}
	if k.clicked {
		in.Click = &input.Click{X: float64(k.cursor.X), Y: float64(k.cursor.Y)}
	}
	return in
}

// scaleColor converts c to the premultiplied float components used by vertices.
func scaleColor(c color.Color) (r, g, b, a float32) {
	cr, cg, cb, ca := c.RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}
