package draw

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/tomz197/alieninvasion/internal/physics"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func setPixels(c *Canvas) map[[2]int]bool {
	set := make(map[[2]int]bool)
	for y := 0; y < c.subPixelHeight; y++ {
		for x := 0; x < c.termWidth; x++ {
			if _, ok := c.At(x, y); ok {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func TestFillRectCoversPixelCenters(t *testing.T) {
	c := NewCanvas(10, 5) // 10x10 pixels, 1:1
	c.FillRect(physics.NewRect(2, 2, 3, 2), red)

	set := setPixels(c)
	if len(set) != 6 {
		t.Fatalf("set pixels = %d, want 6", len(set))
	}
	for x := 2; x < 5; x++ {
		for y := 2; y < 4; y++ {
			if !set[[2]int{x, y}] {
				t.Errorf("pixel (%d,%d) not set", x, y)
			}
		}
	}
	got, _ := c.At(2, 2)
	if got != red {
		t.Errorf("pixel color = %v, want %v", got, red)
	}
}

func TestFillRectScaled(t *testing.T) {
	tests := []struct {
		name string
		rect physics.Rect
		want int
	}{
		{"full playfield", physics.NewRect(0, 0, 1200, 800), 120 * 80},
		{"alien", physics.NewRect(60, 58, 60, 58), 6 * 6},
		{"thin bullet stays visible", physics.NewRect(600, 400, 3, 15), 1},
		{"off screen", physics.NewRect(-100, -100, 50, 50), 0},
		{"empty", physics.NewRect(10, 10, 0, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewScaledCanvas(120, 40, 1200, 800)
			c.FillRect(tt.rect, white)
			if got := len(setPixels(c)); got != tt.want {
				t.Errorf("set pixels = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillPolygon([]Point{{X: 5, Y: 0}, {X: 9, Y: 9}, {X: 1, Y: 9}}, red)

	set := setPixels(c)
	if !set[[2]int{5, 5}] {
		t.Error("interior pixel not set")
	}
	if set[[2]int{0, 0}] || set[[2]int{9, 0}] {
		t.Error("pixel outside the triangle set")
	}
}

func TestFillPolygonTooFewPoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillPolygon([]Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, red)
	if len(setPixels(c)) != 0 {
		t.Error("degenerate polygon drew pixels")
	}
}

func TestClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(physics.NewRect(0, 0, 4, 4), red)
	c.Clear()
	if len(setPixels(c)) != 0 {
		t.Error("pixels survived Clear")
	}
}

func TestResizeKeepsLogicalSize(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.Resize(60, 20)
	if c.TerminalWidth() != 60 || c.TerminalHeight() != 20 {
		t.Fatalf("size = %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
	c.FillRect(physics.NewRect(0, 0, 1200, 800), red)
	if got := len(setPixels(c)); got != 60*40 {
		t.Errorf("set pixels = %d, want %d", got, 60*40)
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetOffset(3, 2)

	x, y, ok := c.TerminalToLogical(4, 3) // top-left cell of the render area
	if !ok {
		t.Fatal("top-left cell reported outside")
	}
	if math.Abs(x-5) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("logical = (%v,%v), want (5,10)", x, y)
	}

	col, row := c.LogicalToTerminal(x, y)
	if col != 1 || row != 1 {
		t.Errorf("terminal = (%d,%d), want (1,1)", col, row)
	}

	if _, _, ok := c.TerminalToLogical(3, 3); ok {
		t.Error("cell in the left margin reported inside")
	}
	if _, _, ok := c.TerminalToLogical(4+120, 3); ok {
		t.Error("cell past the right edge reported inside")
	}
}

func TestRenderAscii(t *testing.T) {
	c := NewCanvas(3, 1)
	c.FillRect(physics.NewRect(0, 0, 1, 2), red) // full cell
	c.FillRect(physics.NewRect(1, 0, 1, 1), red) // top half

	var buf bytes.Buffer
	c.Render(&buf, termenv.Ascii, white)

	want := "\033[1;1H" + string(BlockFull) + string(BlockUpperHalf) + " "
	if buf.String() != want {
		t.Errorf("render = %q, want %q", buf.String(), want)
	}
}

func TestRenderTrueColor(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(4, 1)
	c.FillRect(physics.NewRect(0, 0, 1, 1), red)

	var buf bytes.Buffer
	c.Render(&buf, termenv.TrueColor, white)
	out := buf.String()

	if !strings.HasPrefix(out, "\033[2;5H") {
		t.Errorf("render does not start at the offset: %q", out)
	}
	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("foreground red missing: %q", out)
	}
	if !strings.Contains(out, "48;2;255;255;255") {
		t.Errorf("background fill missing: %q", out)
	}
	if strings.Count(out, string(BlockUpperHalf)) != 2 {
		t.Errorf("want one glyph per cell: %q", out)
	}
	if !strings.HasSuffix(out, resetSequence) {
		t.Errorf("row not reset: %q", out)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(2, 1)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Errorf("border drawn without margins: %q", buf.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	for _, s := range []string{"┌──┐", "└──┘", "│"} {
		if !strings.Contains(out, s) {
			t.Errorf("border missing %q: %q", s, out)
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if buf.Len() != 0 {
		t.Error("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\033[4;3Hhi"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != big {
		t.Errorf("flushed %d bytes, want %d", buf.Len(), len(big))
	}
}
