// Package draw renders the playfield onto a terminal using half-block
// characters and writes the escape sequences that control the terminal.
package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// resetSequence restores the default colors and attributes.
const resetSequence = "\033[0m"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
