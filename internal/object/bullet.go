package object

import (
	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Bullet is a shot fired upward from the ship.
type Bullet struct {
	Y         float64 // Vertical position of the top edge, kept as a real value
	Rect      physics.Rect
	destroyed bool
}

// NewBullet creates a bullet at the ship's current midtop.
func NewBullet(s *settings.Settings, ship *Ship) *Bullet {
	rect := physics.NewRect(
		ship.Rect.CenterX()-s.BulletWidth/2,
		ship.Rect.Top(),
		s.BulletWidth,
		s.BulletHeight,
	)
	return &Bullet{Y: rect.Y, Rect: rect}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Update moves the bullet up the screen. The bullet is removed once its
// bottom edge reaches the top of the screen.
func (b *Bullet) Update(ctx UpdateContext) bool {
	b.Y -= ctx.Settings.BulletSpeed
	b.Rect.Y = b.Y
	return b.destroyed || b.Rect.Bottom() <= 0
}

// Draw renders the bullet as a filled rectangle.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(b.Rect, ctx.Settings.BulletColor)
}
