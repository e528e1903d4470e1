package object

import (
	"math"

	"github.com/tomz197/alieninvasion/internal/settings"
)

// FleetSize returns how many aliens fit in a row and how many rows fit above
// the ship. Aliens are spaced one alien width apart, with one alien width of
// margin on each side, one alien height above the fleet and two alien
// heights plus the ship's height below it. Counts never go negative.
func FleetSize(screen Screen, alienW, alienH, shipH float64) (cols, rows int) {
	if alienW <= 0 || alienH <= 0 {
		return 0, 0
	}

	availableX := screen.Width - 2*alienW
	availableY := screen.Height - 3*alienH - shipH

	cols = int(math.Floor(availableX / (2 * alienW)))
	rows = int(math.Floor(availableY / (2 * alienH)))
	return max(cols, 0), max(rows, 0)
}

// NewFleet lays out a full fleet of aliens, row by row from the top left.
func NewFleet(s *settings.Settings, screen Screen) []*Alien {
	cols, rows := FleetSize(screen, s.AlienWidth, s.AlienHeight, s.ShipHeight)

	fleet := make([]*Alien, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := s.AlienWidth + 2*s.AlienWidth*float64(col)
			y := s.AlienHeight + 2*s.AlienHeight*float64(row)
			fleet = append(fleet, NewAlienAt(s, x, y))
		}
	}
	return fleet
}
