// Package draw renders to ANSI terminals using half-block characters.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI SGR sequences used by the HUD and overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorRed        = "\033[31m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
	ColorSalmon     = "\033[38;5;209m"
)
