package game

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/settings"
)

// Scoreboard layout in logical units.
const (
	scoreMargin   = 20 // distance of the score from the right and top edges
	scoreLineY    = 40 // vertical center of the score and high score
	levelLineY    = 90 // vertical center of the level, below the score
	shipIconInset = 10
)

// Scoreboard keeps the rendered form of the scoring information. The Prep
// methods must be called after every change to the values they show.
type Scoreboard struct {
	settings *settings.Settings
	stats    *GameStats
	screen   object.Screen
	printer  *message.Printer

	ScoreLabel     object.Label
	HighScoreLabel object.Label
	LevelLabel     object.Label
	Ships          []*object.Ship
}

// NewScoreboard creates a scoreboard with every label prepared.
func NewScoreboard(s *settings.Settings, stats *GameStats, screen object.Screen) *Scoreboard {
	sb := &Scoreboard{
		settings: s,
		stats:    stats,
		screen:   screen,
		printer:  message.NewPrinter(language.English),
	}
	sb.PrepImages()
	return sb
}

// PrepImages prepares every label and the ship icons.
func (sb *Scoreboard) PrepImages() {
	sb.PrepScore()
	sb.PrepHighScore()
	sb.PrepLevel()
	sb.PrepShips()
}

// PrepScore renders the current score in the top right corner.
func (sb *Scoreboard) PrepScore() {
	sb.ScoreLabel = object.Label{
		X:     sb.screen.Width - scoreMargin,
		Y:     scoreLineY,
		Value: sb.formatScore(sb.stats.Score),
		Align: object.AlignRight,
		Kind:  object.TextHUD,
		Color: sb.settings.TextColor,
	}
}

// PrepHighScore renders the high score at the top center.
func (sb *Scoreboard) PrepHighScore() {
	sb.HighScoreLabel = object.Label{
		X:     sb.screen.Width / 2,
		Y:     scoreLineY,
		Value: sb.formatScore(sb.stats.HighScore),
		Align: object.AlignCenter,
		Kind:  object.TextHUD,
		Color: sb.settings.TextColor,
	}
}

// PrepLevel renders the level below the score.
func (sb *Scoreboard) PrepLevel() {
	sb.LevelLabel = object.Label{
		X:     sb.screen.Width - scoreMargin,
		Y:     levelLineY,
		Value: fmt.Sprint(sb.stats.Level),
		Align: object.AlignRight,
		Kind:  object.TextHUD,
		Color: sb.settings.TextColor,
	}
}

// PrepShips lays out one ship icon per remaining ship along the top left.
func (sb *Scoreboard) PrepShips() {
	sb.Ships = sb.Ships[:0]
	for i := 0; i < sb.stats.ShipsLeft; i++ {
		ship := object.NewShip(sb.settings, sb.screen)
		ship.X = shipIconInset + float64(i)*ship.Rect.W
		ship.Rect.X = ship.X
		ship.Rect.Y = shipIconInset
		sb.Ships = append(sb.Ships, ship)
	}
}

// CheckHighScore checks to see if there's a new high score.
func (sb *Scoreboard) CheckHighScore() {
	if sb.stats.Score > sb.stats.HighScore {
		sb.stats.HighScore = sb.stats.Score
		sb.PrepHighScore()
	}
}

// ShowScore draws the scores, level and ships. It changes no state.
func (sb *Scoreboard) ShowScore(ctx object.DrawContext) {
	sb.ScoreLabel.Draw(ctx)
	sb.HighScoreLabel.Draw(ctx)
	sb.LevelLabel.Draw(ctx)
	for _, ship := range sb.Ships {
		ship.Draw(ctx)
	}
}

// formatScore rounds to the nearest ten (ties to even) and adds thousands separators.
func (sb *Scoreboard) formatScore(score int) string {
	rounded := math.RoundToEven(float64(score)/10) * 10
	if rounded >= math.MaxInt {
		return sb.printer.Sprintf("%d", math.MaxInt)
	}
	return sb.printer.Sprintf("%d", int(rounded))
}
