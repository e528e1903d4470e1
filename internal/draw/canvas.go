package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/tomz197/alieninvasion/internal/physics"
)

// Point represents a 2D coordinate in logical space.
type Point = physics.Point

// filled marks a packed pixel as set. Unset pixels show the background.
const filled = 1 << 24

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], packed RGB with the filled bit

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	sequences       map[seqKey]string
}

type seqKey struct {
	profile termenv.Profile
	color   uint32
	bg      bool
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		sequences:     make(map[seqKey]string),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	if c.pixels == nil || termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint32, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels to the background.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// pack converts a color to the packed pixel form. Fully transparent colors
// pack to the background.
func pack(col color.Color) uint32 {
	r, g, b, a := col.RGBA()
	if a == 0 {
		return 0
	}
	return filled | (r>>8)<<16 | (g>>8)<<8 | b>>8
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, v uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = v
	}
}

// At returns the color of the pixel at terminal pixel coordinates and
// whether it is set.
func (c *Canvas) At(x, y int) (color.RGBA, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}, false
	}
	v := c.pixels[y*c.termWidth+x]
	return unpack(v), v&filled != 0
}

func unpack(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// span returns the pixels [from, to) whose centers lie in [lo, hi). A span
// narrower than one pixel still covers the pixel under its middle.
func span(lo, hi float64) (from, to int) {
	from = int(math.Ceil(lo - 0.5))
	to = int(math.Ceil(hi - 0.5))
	if to <= from {
		from = int(math.Floor((lo + hi) / 2))
		to = from + 1
	}
	return from, to
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(r physics.Rect, col color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	v := pack(col)
	x0, x1 := span(r.Left()*c.scaleX, r.Right()*c.scaleX)
	y0, y1 := span(r.Top()*c.scaleY, r.Bottom()*c.scaleY)

	x0, x1 = max(x0, 0), min(x1, c.termWidth)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		for x := x0; x < x1; x++ {
			row[x] = v
		}
	}
}

// drawLine draws a line using Bresenham's algorithm. Coordinates are in
// logical space and get scaled to pixels.
func (c *Canvas) drawLine(p1, p2 Point, v uint32) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, v)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon and traces its outline so that shapes smaller
// than a pixel stay visible.
func (c *Canvas) FillPolygon(points []Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	v := pack(col)
	c.fillPolygon(points, v)

	n := len(points)
	for i := 0; i < n; i++ {
		c.drawLine(points[i], points[(i+1)%n], v)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, v uint32) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Ceil(intersections[i+1] - 0.5))
			for x := xStart; x < xEnd; x++ {
				c.setPixel(x, y, v)
			}
		}
	}
}

// Render outputs every cell of the canvas to the writer using half-block
// characters. Unset pixels are painted with bg. With the Ascii profile no
// color is emitted and set pixels show as blocks on the terminal's own
// background.
func (c *Canvas) Render(w io.Writer, profile termenv.Profile, bg color.Color) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12) // Estimate ~12 bytes per cell

	bgv := pack(bg) | filled
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, 1+c.offsetCol)

		var lastFg, lastBg uint32 // never a valid pixel, both lack the filled bit
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			if profile == termenv.Ascii {
				c.renderBuf.WriteRune(halfBlock(top&filled != 0, bottom&filled != 0))
				continue
			}

			if top == 0 {
				top = bgv
			}
			if bottom == 0 {
				bottom = bgv
			}
			if top != lastFg {
				c.renderBuf.WriteString(c.sequence(profile, top, false))
				lastFg = top
			}
			if bottom != lastBg {
				c.renderBuf.WriteString(c.sequence(profile, bottom, true))
				lastBg = bottom
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
		if profile != termenv.Ascii {
			c.renderBuf.WriteString(resetSequence)
		}
	}

	// Chunked like ChunkWriter.Flush.
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// halfBlock picks the character showing the given top and bottom pixels.
func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// sequence returns the SGR escape selecting v as foreground or background
// color in the given profile.
func (c *Canvas) sequence(profile termenv.Profile, v uint32, bg bool) string {
	key := seqKey{profile: profile, color: v, bg: bg}
	if s, ok := c.sequences[key]; ok {
		return s
	}
	var s string
	if seq := profile.Color(fmt.Sprintf("#%06x", v&0xffffff)).Sequence(bg); seq != "" {
		s = "\033[" + seq + "m"
	}
	c.sequences[key] = s
	return s
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the render area on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based position
// (col, row) inside the render area, offset not included.
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen cell, offset included, to the
// logical coordinates of the cell's center. ok is false for cells outside
// the render area.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	col -= c.offsetCol + 1
	row -= c.offsetRow + 1
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) / c.scaleX
	y = float64(row*2+1) / c.scaleY
	return x, y, true
}
