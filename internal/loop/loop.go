// Package loop runs a game in a terminal with the standard
// Input → Update → Draw cycle.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/alieninvasion/internal/draw"
	"github.com/tomz197/alieninvasion/internal/game"
	"github.com/tomz197/alieninvasion/internal/input"
	"github.com/tomz197/alieninvasion/internal/loop/config"
	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Options configures a terminal session.
type Options struct {
	Settings     *settings.Settings // nil uses the defaults
	TermSizeFunc draw.TermSizeFunc  // nil reads the size of os.Stdout
	Logger       *log.Logger        // nil discards logs
	Listener     game.Listener      // extra observer of game events
	Renderer     *lipgloss.Renderer // nil creates one for the output writer

	// IdleTimeout ends the session after this long without input. Zero
	// disables it. A warning is shown for the last stretch before the cut.
	IdleTimeout time.Duration
}

// Session holds the per-terminal state around one game.
type Session struct {
	game         *game.Game
	settings     *settings.Settings
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	surface      *termSurface
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	idleTimeout time.Duration
	lastInput   time.Time
	isInactive  bool
	wasInactive bool
	mouseOn     bool
}

// NewSession creates a session reading input from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	s := opts.Settings
	if s == nil {
		s = settings.Default()
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, s.ScreenWidth, s.ScreenHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, s.ScreenWidth, s.ScreenHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Session{
		game:         game.New(s, game.Options{Logger: logger, Listener: opts.Listener}),
		settings:     s,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		surface:      newTermSurface(canvas, renderer, s),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
	}
}

// Game returns the game played by the session.
func (s *Session) Game() *game.Game {
	return s.game
}

// Run plays a game in the terminal until the player quits, the input ends,
// the session idles out or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// Run starts the session loop. Blocks until the game stops running.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	defer draw.DisableMouse(s.writer)
	draw.ClearScreen(s.writer)

	for s.game.Running() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		in := s.processInput(frameStart)
		if s.idledOut(frameStart) {
			s.logger.Info("disconnecting idle session", "idle", frameStart.Sub(s.lastInput).Round(time.Second))
			break
		}

		// ===== UPDATE PHASE =====
		s.updateScreen()
		wasActive := s.game.Active()
		s.game.Update(in)
		if !wasActive && s.game.Active() {
			s.inputStream.Reset()
		}

		// ===== DRAW PHASE =====
		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < game.TickTime {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(game.TickTime - elapsed):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// processInput drains pending input and maps clicks from terminal cells to
// the logical playfield.
func (s *Session) processInput(now time.Time) input.Input {
	in := input.ReadInput(s.inputStream)
	if len(in.Pressed) > 0 {
		s.lastInput = now
	}

	if in.Click != nil {
		x, y, ok := s.canvas.TerminalToLogical(int(in.Click.X), int(in.Click.Y))
		if ok {
			in.Click = &input.Click{X: x, Y: y}
		} else {
			in.Click = nil
		}
	}
	return in
}

// idledOut updates the inactivity flags and reports whether the session
// should be dropped.
func (s *Session) idledOut(now time.Time) bool {
	if s.idleTimeout <= 0 {
		return false
	}
	idle := now.Sub(s.lastInput)
	warnAfter := s.idleTimeout - (config.InactivityDisconnectUser - config.InactivityWarnUser)
	s.isInactive = idle >= max(warnAfter, 0)
	return idle >= s.idleTimeout
}

// updateScreen handles terminal resize, fitting the playfield into the
// terminal. On actual size changes, clears the terminal to remove residual
// output outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, s.settings.ScreenWidth, s.settings.ScreenHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.chunkWriter)
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitTermSize picks the largest render area that fits the terminal, is no
// larger than the max render resolution and keeps the playfield's aspect
// ratio with square half-block pixels. It returns the area and the offset
// that centers it.
func fitTermSize(termWidth, termHeight int, logicalWidth, logicalHeight float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	maxWidth := min(termWidth, config.MaxTermWidth)
	maxHeight := min(termHeight, config.MaxTermHeight)
	if maxWidth <= 0 || maxHeight <= 0 || logicalWidth <= 0 || logicalHeight <= 0 {
		return 0, 0, 0, 0
	}

	aspect := logicalWidth / logicalHeight
	renderWidth = maxWidth
	renderHeight = int(float64(renderWidth) / aspect / 2)
	if renderHeight > maxHeight {
		renderHeight = maxHeight
		renderWidth = int(float64(renderHeight) * 2 * aspect)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	if s.isInactive != s.wasInactive {
		draw.ClearScreen(s.chunkWriter)
		s.wasInactive = s.isInactive
	}

	// Mouse reporting stands in for the pointer: on only while it is visible.
	if visible := s.game.CursorVisible(); visible != s.mouseOn {
		if visible {
			draw.EnableMouse(s.chunkWriter)
		} else {
			draw.DisableMouse(s.chunkWriter)
		}
		s.mouseOn = visible
	}

	s.canvas.Clear()
	s.surface.reset()

	ctx := object.DrawContext{
		Surface:  s.surface,
		Settings: s.settings,
	}
	s.game.Draw(ctx)

	// Render canvas, then the text on top of it
	s.canvas.Render(s.chunkWriter, s.surface.profile(), s.settings.BgColor)
	s.canvas.RenderBorder(s.chunkWriter)
	s.surface.renderLabels(s.chunkWriter)

	if s.isInactive {
		s.drawInactivityScreen()
	}

	return s.chunkWriter.Flush()
}

// drawInactivityScreen draws the inactivity warning on top of the frame.
func (s *Session) drawInactivityScreen() {
	remaining := s.idleTimeout - time.Since(s.lastInput)
	lines := []string{
		"INACTIVITY WARNING",
		fmt.Sprintf("You will be disconnected in %d seconds.", int(max(remaining, 0).Seconds())),
		"Press any key to continue",
	}
	s.surface.renderBanner(s.chunkWriter, lines)
}
