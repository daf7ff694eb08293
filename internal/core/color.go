package core

// Color names what a screen cell shows rather than how it looks. The
// terminal front end picks the actual shade for each one.
type Color uint8

// Interface colors.
const (
	ColorDefault Color = iota
	ColorGray          // grid lines and hints
	ColorTitle         // mode title
	ColorRecord        // best score while it is being set
	ColorPop           // tiles placed this turn
	ColorWarning       // messages the player must act on

	// Tile colors, one per value from 2 to 2048.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // 4096 and above
)

// TileColor returns the color of a tile exponent; 0 is an empty cell.
func TileColor(exp int) Color {
	switch {
	case exp <= 0:
		return ColorDefault
	case exp >= 12:
		return ColorTileSuper
	default:
		return ColorTile2 + Color(exp-1)
	}
}
