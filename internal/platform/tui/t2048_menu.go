package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// T2048Selection holds the user's selection from the board menu.
type T2048Selection struct {
	Preset int // 1-based preset ID, 0 = board from the config file
}

// T2048PresetModel lets users choose the board for a 2048 game.
type T2048PresetModel struct {
	cursor    int
	endless   bool
	width     int
	height    int
	keyMapper *KeyMapper
	selection T2048Selection
	choosing  bool
	quitting  bool
	back      bool
}

// NewT2048PresetModel creates a new board selection model. Endless mode
// hides the win tiles.
func NewT2048PresetModel(width, height int, endless bool) T2048PresetModel {
	return T2048PresetModel{
		cursor:    t2048.ClassicPreset - 1,
		endless:   endless,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// optionCount is the presets plus the "from config" entry.
func (m T2048PresetModel) optionCount() int {
	return t2048.PresetCount() + 1
}

// Init initializes the model.
func (m T2048PresetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m T2048PresetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m T2048PresetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		preset := m.cursor + 1
		if preset > t2048.PresetCount() {
			preset = 0
		}
		m.selection = T2048Selection{Preset: preset}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the board selection.
func (m T2048PresetModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select board:", m.width))
	b.WriteString("\n\n")

	for i := 0; i < m.optionCount(); i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		if p := t2048.GetPreset(i); p != nil {
			line = fmt.Sprintf("%s%-8s %dx%d", cursor, p.Name, p.Size, p.Size)
			if !m.endless {
				line += fmt.Sprintf("  (Goal: %d)", p.WinTile)
			}
		} else {
			line = cursor + "From config file"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m T2048PresetModel) Selected() *T2048Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m T2048PresetModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m T2048PresetModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m T2048PresetModel) WantsBack() bool {
	return m.back
}

// RunT2048PresetSelector runs the board selection and returns the selection.
func RunT2048PresetSelector(cfg core.RuntimeConfig, endless bool) (*T2048Selection, core.RuntimeConfig, error) {
	model := NewT2048PresetModel(cfg.ScreenW, cfg.ScreenH, endless)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(T2048PresetModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	cfg.ScreenW = m.width
	cfg.ScreenH = m.height
	return m.Selected(), cfg, nil
}
