package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/alieninvasion/internal/input"
	"github.com/tomz197/alieninvasion/internal/loop/config"
	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/settings"
)

func fixedSize(width, height int) func() (int, int, error) {
	return func() (int, int, error) { return width, height, nil }
}

func newTestSession(t *testing.T, in string, out *bytes.Buffer) *Session {
	t.Helper()
	s := settings.Default()
	s.StartActive = false
	return NewSession(bufio.NewReader(strings.NewReader(in)), out, Options{
		Settings:     s,
		TermSizeFunc: fixedSize(120, 40),
	})
}

func TestFitTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		termWidth, termHeight  int
		wantWidth, wantHeight  int
		wantOffCol, wantOffRow int
	}{
		{"exact", 120, 40, 120, 40, 0, 0},
		{"too wide", 200, 40, 120, 40, 40, 0},
		{"too tall", 120, 60, 120, 40, 0, 10},
		{"capped", 400, 200, 240, 80, 80, 60},
		{"tiny", 3, 1, 3, 1, 0, 0},
		{"empty", 0, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := fitTermSize(tt.termWidth, tt.termHeight, 1200, 800)
			if w != tt.wantWidth || h != tt.wantHeight || oc != tt.wantOffCol || or != tt.wantOffRow {
				t.Errorf("fitTermSize(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termWidth, tt.termHeight, w, h, oc, or,
					tt.wantWidth, tt.wantHeight, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

func TestLabelColumn(t *testing.T) {
	tests := []struct {
		col, textWidth, areaWidth int
		align                     object.Align
		want                      int
	}{
		{10, 4, 100, object.AlignLeft, 10},
		{10, 4, 100, object.AlignCenter, 8},
		{10, 4, 100, object.AlignRight, 6},
		{2, 10, 100, object.AlignRight, 1},
		{98, 10, 100, object.AlignLeft, 91},
	}
	for _, tt := range tests {
		if got := labelColumn(tt.col, tt.textWidth, tt.areaWidth, tt.align); got != tt.want {
			t.Errorf("labelColumn(%d, %d, %d, %v) = %d, want %d",
				tt.col, tt.textWidth, tt.areaWidth, tt.align, got, tt.want)
		}
	}
}

func TestRunQuitsWhenInputEnds(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), &out, Options{
		TermSizeFunc: fixedSize(120, 40),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor not restored")
	}
}

func TestRunQuitKey(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, "pq", &out)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if s.Game().Running() {
		t.Error("game still running")
	}
}

func TestRunCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedSize(120, 40)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestDrawFrameTogglesMouse(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, "", &out)

	if err := s.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[?1000h") {
		t.Error("mouse reporting not enabled on the Play screen")
	}
	if !strings.Contains(out.String(), "Play") {
		t.Error("Play button label not written")
	}

	out.Reset()
	s.game.Update(input.Input{Start: true})
	if err := s.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[?1000l") {
		t.Error("mouse reporting not disabled during play")
	}
	if strings.Contains(out.String(), "Play") {
		t.Error("Play button drawn during play")
	}
}

func TestDefaultSessionStartsInPlay(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(bufio.NewReader(strings.NewReader("")), &out, Options{
		TermSizeFunc: fixedSize(120, 40),
	})
	if !s.game.Active() {
		t.Fatal("default session not in play")
	}
	if err := s.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "\033[?1000h") {
		t.Error("mouse reporting enabled during play")
	}
	if strings.Contains(out.String(), "Play") {
		t.Error("Play button drawn during play")
	}
}

func TestClickMappedToPlayfield(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, "", &out)

	// The Play button sits in the middle of a 120x40 render area.
	x, y, ok := s.canvas.TerminalToLogical(61, 21)
	if !ok {
		t.Fatal("center cell outside the render area")
	}
	s.game.Update(input.Input{Click: &input.Click{X: x, Y: y}})
	if !s.game.Active() {
		t.Errorf("click at logical (%v, %v) did not hit Play", x, y)
	}
}

func TestIdledOut(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, "", &out)
	now := time.Now()

	s.lastInput = now
	if s.idledOut(now.Add(time.Hour)) {
		t.Error("idled out with the timeout disabled")
	}

	s.idleTimeout = config.InactivityDisconnectUser
	if s.idledOut(now.Add(time.Second)) || s.isInactive {
		t.Error("fresh session flagged idle")
	}
	if s.idledOut(now.Add(config.InactivityWarnUser)) {
		t.Error("disconnected at the warning mark")
	}
	if !s.isInactive {
		t.Error("no warning at the warning mark")
	}
	if !s.idledOut(now.Add(config.InactivityDisconnectUser)) {
		t.Error("not disconnected after the timeout")
	}
}
