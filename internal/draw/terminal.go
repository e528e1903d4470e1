package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize caps a single write so a frame leaves in packet-sized pieces
// over SSH.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output (canvas rows, labels,
// banners and mode toggles) and sends it in one Flush. Cursor positions
// passed to MoveCursor and WriteAt are relative to the render area.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	seqBuf [32]byte // cursor move scratch
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter returns a frame writer on w for a render area whose top-left
// cell sits offsetCol columns and offsetRow rows into the terminal.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, typically after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to the 1-based cell (col, row) of the
// render area.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	b := cw.seqBuf[:0]
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row+cw.offRow), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col+cw.offCol), 10)
	b = append(b, 'H')
	cw.frame.Write(b)
}

// Write queues raw bytes.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString queues s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt queues s starting at cell (col, row) of the render area.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// Flush sends the queued frame in chunks of at most maxChunkSize bytes and
// starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen resets colors, clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, resetSequence+"\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on click reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns click reporting off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}
