// Package object defines the game entities and the contexts they are updated
// and drawn with.
package object

import (
	"image/color"
	"time"

	"github.com/tomz197/alieninvasion/internal/physics"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Screen is the logical playfield.
type Screen struct {
	Width  float64
	Height float64
}

// NewScreen returns the playfield described by the settings.
func NewScreen(s *settings.Settings) Screen {
	return Screen{Width: s.ScreenWidth, Height: s.ScreenHeight}
}

// Rect returns the playfield bounds.
func (s Screen) Rect() physics.Rect {
	return physics.NewRect(0, 0, s.Width, s.Height)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta    time.Duration // length of one tick
	Settings *settings.Settings
	Screen   Screen
	Spawner  Spawner
}

// Surface is a frontend drawing target in logical coordinates.
type Surface interface {
	FillRect(r physics.Rect, c color.Color)
	FillPolygon(points []physics.Point, c color.Color)
	DrawLabel(l Label)
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface  Surface
	Settings *settings.Settings
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
