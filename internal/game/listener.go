package game

// Listener observes game events. Methods are called synchronously from
// Game.Update and must not block.
type Listener interface {
	GameStarted()
	BulletFired()
	AliensDestroyed(count int)
	FleetCleared(level int)
	ShipHit(shipsLeft int)
	GameOver(score, highScore int)
}

// NopListener ignores every event.
type NopListener struct{}

// GameStarted ignores the start of a game.
func (NopListener) GameStarted() {}

// BulletFired ignores a fired bullet.
func (NopListener) BulletFired() {}

// AliensDestroyed ignores the aliens destroyed in a tick.
func (NopListener) AliensDestroyed(int) {}

// FleetCleared ignores a cleared fleet.
func (NopListener) FleetCleared(int) {}

// ShipHit ignores a lost ship.
func (NopListener) ShipHit(int) {}

// GameOver ignores the end of a game.
func (NopListener) GameOver(int, int) {}
