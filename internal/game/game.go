// Package game implements the Alien Invasion controller: it owns the ship,
// bullets, fleet, stats and scoreboard and advances them one tick at a time.
package game

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/alieninvasion/internal/input"
	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Simulation rate. All speeds in the settings are per tick.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Explosion tuning for destroyed aliens.
const (
	explosionParticles = 8
	explosionSpeed     = 180.0 // units per second
	explosionLifetime  = 0.4   // seconds
)

// Options configures a Game.
type Options struct {
	Logger   *log.Logger // nil discards logs
	Listener Listener    // nil ignores events
}

// Game manages game assets and behavior.
type Game struct {
	Settings   *settings.Settings
	Stats      *GameStats
	Scoreboard *Scoreboard
	Screen     object.Screen
	PlayButton *object.Button

	Ship    *object.Ship
	Bullets []*object.Bullet
	Aliens  []*object.Alien
	Effects []object.Object

	toSpawn       []object.Object // effects added after the current tick
	hint          object.Label
	pauseTicks    int
	cursorVisible bool
	running       bool

	logger   *log.Logger
	listener Listener
}

// New creates a game. The game starts active unless StartActive is off, in
// which case it waits behind the Play button.
func New(s *settings.Settings, opts Options) *Game {
	if s == nil {
		s = settings.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	listener := opts.Listener
	if listener == nil {
		listener = NopListener{}
	}

	screen := object.NewScreen(s)
	stats := NewGameStats(s)

	g := &Game{
		Settings:      s,
		Stats:         stats,
		Scoreboard:    NewScoreboard(s, stats, screen),
		Screen:        screen,
		PlayButton:    object.NewButton(s, screen, "Play"),
		Ship:          object.NewShip(s, screen),
		cursorVisible: true,
		running:       true,
		logger:        logger,
		listener:      listener,
	}
	g.hint = object.Label{
		X:     screen.Width / 2,
		Y:     g.PlayButton.Rect.Bottom() + g.PlayButton.Rect.H,
		Value: "click Play or press P to start, arrows to move, space to fire, Q to quit",
		Align: object.AlignCenter,
		Kind:  object.TextHint,
		Color: s.TextColor,
	}
	g.Aliens = object.NewFleet(s, screen)

	if s.StartActive {
		g.startGame()
	}
	return g
}

// Running reports whether the game wants to keep going. It turns false on a
// quit request and never turns back.
func (g *Game) Running() bool {
	return g.running
}

// Active reports whether a game is in progress.
func (g *Game) Active() bool {
	return g.Stats.GameActive
}

// Paused reports whether the game is frozen after the ship was hit.
func (g *Game) Paused() bool {
	return g.pauseTicks > 0
}

// CursorVisible reports whether the frontend should show the pointer.
func (g *Game) CursorVisible() bool {
	return g.cursorVisible
}

// Spawn queues an effect to be added after the current tick (implements object.Spawner).
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// Update advances the game by one tick using the input gathered since the
// previous tick.
func (g *Game) Update(in input.Input) {
	if in.Quit {
		if g.running {
			g.logger.Info("quit requested", "score", g.Stats.Score, "high_score", g.Stats.HighScore)
		}
		g.running = false
		return
	}
	if !g.running {
		return
	}

	g.Ship.MovingLeft = in.Left
	g.Ship.MovingRight = in.Right

	g.updateEffects()
	defer g.flushSpawned()

	if g.pauseTicks > 0 {
		g.pauseTicks--
		return
	}

	if !g.Stats.GameActive {
		g.checkPlay(in)
		return
	}

	for i := 0; i < in.Fire; i++ {
		g.fireBullet()
	}
	g.Ship.Update(g.updateContext())
	g.updateBullets()
	g.updateAliens()
}

// Draw renders everything but the background onto ctx.Surface.
func (g *Game) Draw(ctx object.DrawContext) {
	if ctx.Settings == nil {
		ctx.Settings = g.Settings
	}

	g.Ship.Draw(ctx)
	for _, b := range g.Bullets {
		b.Draw(ctx)
	}
	for _, a := range g.Aliens {
		a.Draw(ctx)
	}
	for _, e := range g.Effects {
		e.Draw(ctx)
	}

	g.Scoreboard.ShowScore(ctx)

	if !g.Stats.GameActive {
		g.PlayButton.Draw(ctx)
		g.hint.Draw(ctx)
	}
}

func (g *Game) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Delta:    TickTime,
		Settings: g.Settings,
		Screen:   g.Screen,
		Spawner:  g,
	}
}

// checkPlay starts a new game when the player clicks Play or presses the start key.
func (g *Game) checkPlay(in input.Input) {
	clicked := in.Click != nil && g.PlayButton.Clicked(in.Click.X, in.Click.Y)
	if clicked || in.Start {
		g.startGame()
	}
}

// startGame resets settings and stats and deals a fresh fleet.
func (g *Game) startGame() {
	g.Settings.InitializeDynamicSettings()
	g.Stats.ResetStats()
	g.Stats.GameActive = true
	g.Scoreboard.PrepImages()

	g.cursorVisible = false

	g.Bullets = nil
	g.Aliens = object.NewFleet(g.Settings, g.Screen)
	g.Ship.Center(g.Screen)
	g.pauseTicks = 0

	g.logger.Info("game started", "ships", g.Stats.ShipsLeft, "aliens", len(g.Aliens))
	g.listener.GameStarted()
}

// fireBullet creates a new bullet unless the limit is reached.
func (g *Game) fireBullet() bool {
	if len(g.Bullets) >= g.Settings.BulletsAllowed {
		return false
	}
	g.Bullets = append(g.Bullets, object.NewBullet(g.Settings, g.Ship))
	g.listener.BulletFired()
	return true
}

// updateBullets moves bullets, drops the ones that left the screen and
// resolves hits.
func (g *Game) updateBullets() {
	ctx := g.updateContext()

	kept := g.Bullets[:0] // reuse backing array
	for _, b := range g.Bullets {
		if !b.Update(ctx) {
			kept = append(kept, b)
		}
	}
	clear(g.Bullets[len(kept):])
	g.Bullets = kept

	g.checkBulletAlienCollisions()
}

// checkBulletAlienCollisions scores hits and starts a new level once the
// fleet is gone.
func (g *Game) checkBulletAlienCollisions() {
	killed := collideBulletsAliens(g.Bullets, g.Aliens)
	if len(killed) == 0 {
		return
	}

	for _, a := range killed {
		object.SpawnExplosion(a.Rect.CenterX(), a.Rect.CenterY(),
			explosionParticles, explosionSpeed, explosionLifetime, g.Settings.AlienColor, g)
	}
	g.Bullets = removeDestroyed(g.Bullets)
	g.Aliens = removeDestroyed(g.Aliens)

	g.Stats.Score = addScore(g.Stats.Score, g.Settings.AlienPoints, len(killed))
	g.Scoreboard.PrepScore()
	g.Scoreboard.CheckHighScore()
	g.listener.AliensDestroyed(len(killed))

	if len(g.Aliens) == 0 {
		g.startNewLevel()
	}
}

// startNewLevel destroys the remaining bullets, deals a new fleet and speeds up.
func (g *Game) startNewLevel() {
	g.Bullets = nil
	g.Aliens = object.NewFleet(g.Settings, g.Screen)
	g.Settings.IncreaseSpeed()

	g.Stats.Level++
	g.Scoreboard.PrepLevel()

	g.logger.Info("fleet cleared", "level", g.Stats.Level, "score", g.Stats.Score)
	g.listener.FleetCleared(g.Stats.Level)
}

// updateAliens turns the fleet at the edges, moves it and checks whether it
// reached the ship or the bottom of the screen.
func (g *Game) updateAliens() {
	g.checkFleetEdges()

	ctx := g.updateContext()
	for _, a := range g.Aliens {
		a.Update(ctx)
	}

	if shipCollides(g.Ship, g.Aliens) || aliensReachedBottom(g.Aliens, g.Screen) {
		g.shipHit()
	}
}

// checkFleetEdges turns the fleet once if any alien has reached an edge.
func (g *Game) checkFleetEdges() {
	for _, a := range g.Aliens {
		if a.CheckEdges(g.Screen) {
			g.changeFleetDirection()
			break
		}
	}
}

// changeFleetDirection drops the entire fleet and changes its direction.
func (g *Game) changeFleetDirection() {
	for _, a := range g.Aliens {
		a.Drop(g.Settings.FleetDropSpeed)
	}
	g.Settings.ChangeFleetDirection()
}

// shipHit consumes a ship. The last ship ends the game; otherwise the
// board is reset and the game pauses briefly.
func (g *Game) shipHit() {
	if g.Stats.ShipsLeft > 0 {
		g.Stats.ShipsLeft--
		g.Scoreboard.PrepShips()
	}
	g.logger.Info("ship hit", "ships_left", g.Stats.ShipsLeft, "level", g.Stats.Level)
	g.listener.ShipHit(g.Stats.ShipsLeft)

	if g.Stats.ShipsLeft == 0 {
		g.gameOver()
		return
	}

	g.Bullets = nil
	g.Aliens = object.NewFleet(g.Settings, g.Screen)
	g.Ship.Center(g.Screen)
	g.pauseTicks = pauseTicks(g.Settings.HitPause)
}

// gameOver returns to the Play screen.
func (g *Game) gameOver() {
	g.Stats.GameActive = false
	g.cursorVisible = true
	g.pauseTicks = 0

	g.logger.Info("game over", "score", g.Stats.Score, "high_score", g.Stats.HighScore, "level", g.Stats.Level)
	g.listener.GameOver(g.Stats.Score, g.Stats.HighScore)
}

// updateEffects advances particles and drops the expired ones.
func (g *Game) updateEffects() {
	ctx := g.updateContext()

	kept := g.Effects[:0]
	for _, e := range g.Effects {
		if e.Update(ctx) {
			object.ReleaseObject(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(g.Effects[len(kept):])
	g.Effects = kept
}

// flushSpawned adds all queued effects and clears the queue.
func (g *Game) flushSpawned() {
	g.Effects = append(g.Effects, g.toSpawn...)
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

// addScore returns score plus points for each kill, saturating at math.MaxInt.
func addScore(score, points, kills int) int {
	if kills <= 0 || points <= 0 {
		return score
	}
	if points > (math.MaxInt-score)/kills {
		return math.MaxInt
	}
	return score + points*kills
}

// pauseTicks converts a pause duration to whole ticks, rounding up.
func pauseTicks(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds() * TickRate))
}
