package game

import (
	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/physics"
)

// collideBulletsAliens marks colliding bullet/alien pairs destroyed and
// returns the aliens that were hit. Each bullet takes at most one alien, the
// first live one it overlaps in fleet order.
func collideBulletsAliens(bullets []*object.Bullet, aliens []*object.Alien) []*object.Alien {
	var killed []*object.Alien
	for _, b := range bullets {
		if b.IsDestroyed() {
			continue
		}
		for _, a := range aliens {
			if a.IsDestroyed() {
				continue
			}
			if physics.Overlap(b.Rect, a.Rect) {
				b.MarkDestroyed()
				a.MarkDestroyed()
				killed = append(killed, a)
				break
			}
		}
	}
	return killed
}

// shipCollides reports whether any alien overlaps the ship.
func shipCollides(ship *object.Ship, aliens []*object.Alien) bool {
	for _, a := range aliens {
		if physics.Overlap(ship.Rect, a.Rect) {
			return true
		}
	}
	return false
}

// aliensReachedBottom reports whether any alien touches the bottom of the screen.
func aliensReachedBottom(aliens []*object.Alien, screen object.Screen) bool {
	bottom := screen.Rect().Bottom()
	for _, a := range aliens {
		if a.Rect.Bottom() >= bottom {
			return true
		}
	}
	return false
}

// removeDestroyed keeps the items that are not marked destroyed, preserving order.
func removeDestroyed[T object.Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
