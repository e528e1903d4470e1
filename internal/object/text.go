package object

import (
	"image/color"

	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Align is the horizontal anchor of a label.
type Align int

const (
	AlignLeft   Align = iota // X is the left edge of the text
	AlignCenter              // X is the horizontal center of the text
	AlignRight               // X is the right edge of the text
)

// TextKind selects how a surface styles a label.
type TextKind int

const (
	TextHUD    TextKind = iota // Scoreboard values
	TextButton                 // Text on a button face
	TextHint                   // Secondary help text
)

// Label is a line of text anchored at (X, Y), where Y is the vertical
// center of the line.
type Label struct {
	X, Y  float64
	Value string
	Align Align
	Kind  TextKind
	Color color.Color
}

// Draw hands the label to the surface.
func (l Label) Draw(ctx DrawContext) {
	if l.Value == "" {
		return
	}
	ctx.Surface.DrawLabel(l)
}

// Update is a no-op for static text.
func (l Label) Update(ctx UpdateContext) bool {
	return false
}

// Button dimensions.
const (
	ButtonWidth  = 200
	ButtonHeight = 50
)

// Button is a clickable rectangle with a centered label.
type Button struct {
	Rect  physics.Rect
	Color color.Color
	Label Label
}

// NewButton creates a button centered on the screen.
func NewButton(s *settings.Settings, screen Screen, msg string) *Button {
	rect := physics.NewRect(
		screen.Width/2-ButtonWidth/2,
		screen.Height/2-ButtonHeight/2,
		ButtonWidth,
		ButtonHeight,
	)
	return &Button{
		Rect:  rect,
		Color: s.ButtonColor,
		Label: Label{
			X:     rect.CenterX(),
			Y:     rect.CenterY(),
			Value: msg,
			Align: AlignCenter,
			Kind:  TextButton,
			Color: s.ButtonTextColor,
		},
	}
}

// Clicked reports whether the point (x, y) lies on the button.
func (b *Button) Clicked(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw renders the button face and its label.
func (b *Button) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(b.Rect, b.Color)
	b.Label.Draw(ctx)
}
