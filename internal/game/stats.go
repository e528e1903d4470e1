package game

import "github.com/tomz197/alieninvasion/internal/settings"

// GameStats tracks the statistics of a play session.
type GameStats struct {
	settings *settings.Settings

	ShipsLeft  int
	Score      int
	Level      int
	HighScore  int // survives ResetStats
	GameActive bool
}

// NewGameStats creates stats for a fresh session. GameActive starts false.
func NewGameStats(s *settings.Settings) *GameStats {
	st := &GameStats{settings: s}
	st.ResetStats()
	return st
}

// ResetStats initializes the statistics that change during a game. It leaves
// HighScore and GameActive alone.
func (st *GameStats) ResetStats() {
	st.ShipsLeft = st.settings.ShipLimit
	st.Score = 0
	st.Level = 1
}
