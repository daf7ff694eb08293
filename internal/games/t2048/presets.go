// Package t2048 implements the 2048 sliding puzzle on top of the board
// simulation in the core subpackage, with presets and an endless mode.
package t2048

// Preset defines a board size and the tile that wins on it.
type Preset struct {
	ID      int
	Name    string
	Size    int // Board dimension
	WinTile int // Tile value that wins
}

// Presets lists the selectable boards, smallest first.
// Targets grow with the board so each preset takes a similar effort.
var Presets = []Preset{
	{ID: 1, Name: "Mini", Size: 3, WinTile: 256},
	{ID: 2, Name: "Classic", Size: 4, WinTile: 2048},
	{ID: 3, Name: "Big", Size: 5, WinTile: 4096},
	{ID: 4, Name: "Huge", Size: 6, WinTile: 8192},
}

// ClassicPreset is the 1-based ID of the standard 4×4 board.
const ClassicPreset = 2

// PresetCount returns the number of presets.
func PresetCount() int {
	return len(Presets)
}

// GetPreset returns the preset at the given index (0-based).
// Returns nil if index is out of range.
func GetPreset(index int) *Preset {
	if index < 0 || index >= len(Presets) {
		return nil
	}
	return &Presets[index]
}

// PresetNames returns the names of all presets.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// PresetForSize returns the preset with the given board size, or nil.
func PresetForSize(size int) *Preset {
	for i := range Presets {
		if Presets[i].Size == size {
			return &Presets[i]
		}
	}
	return nil
}
