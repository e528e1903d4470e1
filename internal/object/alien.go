package object

import (
	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// alienSprite is the pixel pattern drawn inside an alien's rect.
var alienSprite = [...]string{
	"..X.....X..",
	"...X...X...",
	"..XXXXXXX..",
	".XX.XXX.XX.",
	"XXXXXXXXXXX",
	"X.XXXXXXX.X",
	"X.X.....X.X",
	"...XX.XX...",
}

// Alien is a single member of the fleet. The fleet direction is shared and
// lives in the settings, not on the alien.
type Alien struct {
	X         float64 // Horizontal position of the left edge, kept as a real value
	Rect      physics.Rect
	destroyed bool
}

// NewAlien creates an alien near the top left of the screen.
func NewAlien(s *settings.Settings) *Alien {
	return NewAlienAt(s, s.AlienWidth, s.AlienHeight)
}

// NewAlienAt creates an alien with its top-left corner at (x, y).
func NewAlienAt(s *settings.Settings, x, y float64) *Alien {
	return &Alien{
		X:    x,
		Rect: physics.NewRect(x, y, s.AlienWidth, s.AlienHeight),
	}
}

// CheckEdges returns true if the alien is at a horizontal edge of the screen.
func (a *Alien) CheckEdges(screen Screen) bool {
	bounds := screen.Rect()
	return a.Rect.Right() >= bounds.Right() || a.Rect.Left() <= bounds.Left()
}

// Drop moves the alien down by dy.
func (a *Alien) Drop(dy float64) {
	a.Rect.Y += dy
}

// MarkDestroyed marks the alien for removal (implements Destructible).
func (a *Alien) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the alien is marked for destruction (implements Destructible).
func (a *Alien) IsDestroyed() bool {
	return a.destroyed
}

// Update moves the alien sideways in the current fleet direction.
func (a *Alien) Update(ctx UpdateContext) bool {
	a.X += ctx.Settings.AlienSpeed * float64(ctx.Settings.FleetDirection)
	a.Rect.X = a.X
	return a.destroyed
}

// Draw renders the alien sprite scaled into its rect, one run of set pixels
// per rectangle.
func (a *Alien) Draw(ctx DrawContext) {
	rows := len(alienSprite)
	cols := len(alienSprite[0])
	cellW := a.Rect.W / float64(cols)
	cellH := a.Rect.H / float64(rows)

	for row, line := range alienSprite {
		y := a.Rect.Y + float64(row)*cellH
		for col := 0; col < cols; {
			if line[col] != 'X' {
				col++
				continue
			}
			start := col
			for col < cols && line[col] == 'X' {
				col++
			}
			run := physics.NewRect(a.Rect.X+float64(start)*cellW, y, float64(col-start)*cellW, cellH)
			ctx.Surface.FillRect(run, ctx.Settings.AlienColor)
		}
	}
}
