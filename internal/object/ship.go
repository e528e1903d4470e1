package object

import (
	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Ship is the player-controlled ship at the bottom of the screen.
type Ship struct {
	X    float64 // Horizontal position of the left edge, kept as a real value
	Rect physics.Rect

	MovingLeft  bool
	MovingRight bool
}

// NewShip creates a ship centered at the bottom of the screen.
func NewShip(s *settings.Settings, screen Screen) *Ship {
	ship := &Ship{
		Rect: physics.NewRect(0, 0, s.ShipWidth, s.ShipHeight),
	}
	ship.Center(screen)
	return ship
}

// Center puts the ship at the bottom center of the screen.
func (s *Ship) Center(screen Screen) {
	s.Rect.X = screen.Width/2 - s.Rect.W/2
	s.Rect.Y = screen.Height - s.Rect.H
	s.X = s.Rect.X
}

// Update moves the ship according to its movement flags. Both flags apply
// independently, so holding left and right together cancels out.
func (s *Ship) Update(ctx UpdateContext) bool {
	speed := ctx.Settings.ShipSpeed
	var dx float64
	if s.MovingRight && s.Rect.Right() < ctx.Screen.Width {
		dx += speed
	}
	if s.MovingLeft && s.Rect.Left() > 0 {
		dx -= speed
	}
	s.X += dx
	s.Rect.X = s.X
	return false
}

// Draw renders the ship as a triangle pointing up.
func (s *Ship) Draw(ctx DrawContext) {
	r := s.Rect
	body := []physics.Point{
		{X: r.CenterX(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
	ctx.Surface.FillPolygon(body, ctx.Settings.ShipColor)
}
