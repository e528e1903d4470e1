// Package input defines the per-tick player input and reads it from a raw
// terminal byte stream.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press. Terminals only report key-down (plus auto-repeat), never key-up.
const keyHoldDuration = 100 * time.Millisecond

// Click is a primary-button mouse press. Terminal streams report it in 1-based
// cell coordinates; the frontend converts it to logical coordinates before
// handing the input to the game.
type Click struct {
	X, Y float64
}

// Input represents the current tick's input state.
type Input struct {
	Quit    bool
	Left    bool   // move-left intent is held
	Right   bool   // move-right intent is held
	Fire    int    // fire key-down events since the previous tick
	Start   bool   // start key pressed
	Click   *Click // primary mouse press, nil if none
	Pressed []byte // raw bytes read this tick
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has reached EOF or failed.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// builds this tick's input. A closed stream is reported as a quit request.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// Reset forgets held movement keys.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// parse decodes buf, updates the held-key timestamps and returns the input
// as seen at now.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// SGR mouse report: ESC [ < btn ; col ; row (M|m)
			if buf[i+2] == '<' {
				if n, click := parseSGRMouse(buf[i+3:]); n > 0 {
					if click != nil {
						in.Click = click
					}
					i += 2 + n
					continue
				}
			}

			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are not used
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case ' ':
			in.Fire++
		case 'p', 'P':
			in.Start = true
		}
	}

	in.Left = !state.left.IsZero() && now.Sub(state.left) < keyHoldDuration
	in.Right = !state.right.IsZero() && now.Sub(state.right) < keyHoldDuration
	return in
}

// parseSGRMouse parses the body of an SGR mouse report (after "ESC [ <").
// It returns the number of bytes consumed, or 0 if buf does not hold a
// complete report. Only primary-button presses yield a Click.
func parseSGRMouse(buf []byte) (int, *Click) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return 0, nil
	}
	fields := bytes.Split(buf[:end], []byte{';'})
	if len(fields) != 3 {
		return 0, nil
	}
	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return 0, nil
		}
		vals[i] = v
	}

	consumed := end + 1
	pressed := buf[end] == 'M'
	// Low two bits select the button; bit 5 marks motion events.
	if !pressed || vals[0]&0b11 != 0 || vals[0]&32 != 0 {
		return consumed, nil
	}
	return consumed, &Click{X: float64(vals[1]), Y: float64(vals[2])}
}
