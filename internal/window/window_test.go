package window

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/tomz197/alieninvasion/internal/object"
)

func TestInputFrom(t *testing.T) {
	for _, k := range []keys{{closing: true}, {quit: true}} {
		if in := inputFrom(k); !in.Quit {
			t.Errorf("inputFrom(%+v).Quit = false", k)
		}
	}

	in := inputFrom(keys{left: true, fire: true, start: true})
	if !in.Left || in.Right || in.Fire != 1 || !in.Start || in.Quit {
		t.Errorf("inputFrom() = %+v", in)
	}
	if in.Click != nil {
		t.Error("click reported without a press")
	}

	in = inputFrom(keys{clicked: true, cursor: image.Pt(600, 400)})
	if in.Click == nil || in.Click.X != 600 || in.Click.Y != 400 {
		t.Errorf("click = %+v, want (600, 400)", in.Click)
	}
	if in.Fire != 0 {
		t.Errorf("fire = %d without a key press", in.Fire)
	}
}

func TestTextAlign(t *testing.T) {
	tests := []struct {
		in   object.Align
		want text.Align
	}{
		{object.AlignLeft, text.AlignStart},
		{object.AlignCenter, text.AlignCenter},
		{object.AlignRight, text.AlignEnd},
	}
	for _, tt := range tests {
		if got := textAlign(tt.in); got != tt.want {
			t.Errorf("textAlign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScaleColor(t *testing.T) {
	r, g, b, a := scaleColor(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	if r != 1 || g != 0 || b != 1 || a != 1 {
		t.Errorf("scaleColor() = %v %v %v %v", r, g, b, a)
	}
}
