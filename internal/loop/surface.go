package loop

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/alieninvasion/internal/draw"
	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// termSurface draws shapes onto the canvas and collects labels to be
// written as styled text once the canvas has been rendered.
type termSurface struct {
	canvas   *draw.Canvas
	renderer *lipgloss.Renderer
	settings *settings.Settings
	labels   []object.Label
}

var _ object.Surface = (*termSurface)(nil)

func newTermSurface(canvas *draw.Canvas, renderer *lipgloss.Renderer, s *settings.Settings) *termSurface {
	return &termSurface{
		canvas:   canvas,
		renderer: renderer,
		settings: s,
	}
}

func (ts *termSurface) FillRect(r physics.Rect, c color.Color) {
	ts.canvas.FillRect(r, c)
}

func (ts *termSurface) FillPolygon(points []physics.Point, c color.Color) {
	ts.canvas.FillPolygon(points, c)
}

func (ts *termSurface) DrawLabel(l object.Label) {
	ts.labels = append(ts.labels, l)
}

// reset drops the labels of the previous frame.
func (ts *termSurface) reset() {
	clear(ts.labels)
	ts.labels = ts.labels[:0]
}

func (ts *termSurface) profile() termenv.Profile {
	return ts.renderer.ColorProfile()
}

// style returns the text style for a label kind.
func (ts *termSurface) style(l object.Label) lipgloss.Style {
	style := ts.renderer.NewStyle().
		Foreground(lipgloss.Color(hex(l.Color))).
		Background(lipgloss.Color(ts.settings.BgColor.Hex()))

	switch l.Kind {
	case object.TextHUD:
		style = style.Bold(true)
	case object.TextButton:
		style = style.Bold(true).Background(lipgloss.Color(ts.settings.ButtonColor.Hex()))
	case object.TextHint:
		style = style.Faint(true)
	}
	return style
}

// renderLabels writes the collected labels at the cells matching their
// logical anchors. Labels are cut to the render area width.
func (ts *termSurface) renderLabels(cw *draw.ChunkWriter) {
	width := ts.canvas.TerminalWidth()
	if width <= 0 {
		return
	}
	for _, l := range ts.labels {
		text := l.Value
		if lipgloss.Width(text) > width {
			text = lipgloss.NewStyle().MaxWidth(width).Render(text)
		}
		col, row := ts.canvas.LogicalToTerminal(l.X, l.Y)
		col = labelColumn(col, lipgloss.Width(text), width, l.Align)
		row = min(max(row, 1), ts.canvas.TerminalHeight())
		cw.WriteAt(col, row, ts.style(l).Render(text))
	}
}

// renderBanner writes centered lines over the middle of the render area.
func (ts *termSurface) renderBanner(cw *draw.ChunkWriter, lines []string) {
	style := ts.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ts.settings.ButtonTextColor.Hex())).
		Background(lipgloss.Color(ts.settings.ButtonColor.Hex()))

	width := ts.canvas.TerminalWidth()
	centerX := width/2 + 1
	centerY := ts.canvas.TerminalHeight() / 2
	for i, line := range lines {
		col := labelColumn(centerX, lipgloss.Width(line), width, object.AlignCenter)
		cw.WriteAt(col, centerY-len(lines)+2*i+1, style.Render(line))
	}
}

// labelColumn returns the first column of a text of the given width anchored
// at col, shifted so that it stays inside [1, areaWidth].
func labelColumn(col, textWidth, areaWidth int, align object.Align) int {
	switch align {
	case object.AlignCenter:
		col -= textWidth / 2
	case object.AlignRight:
		col -= textWidth
	}
	col = min(col, areaWidth-textWidth+1)
	return max(col, 1)
}

// hex formats a color as #rrggbb.
func hex(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	if sc, ok := c.(settings.Color); ok {
		return sc.Hex()
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
