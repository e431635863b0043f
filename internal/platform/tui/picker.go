package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twenty48/internal/storage"
	"github.com/vovakirdan/twenty48/internal/variant"
)

// pickerItem is one selectable variant with its best recorded score.
type pickerItem struct {
	def  variant.Variant
	best int
}

// PickerModel is the Bubble Tea model for the variant picker.
type PickerModel struct {
	items          []pickerItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	keyMapper      *KeyMapper
	quitting       bool
	selected       *variant.Variant // Set when user picks a variant
	openScoreboard bool             // True if user pressed Tab for scoreboard
}

// NewPickerModel creates a picker listing every registered variant.
// The cursor starts on defaultID when it is registered.
func NewPickerModel(store *storage.Store, width, height int, defaultID string) PickerModel {
	defs := variant.List()
	items := make([]pickerItem, 0, len(defs))
	cursor := 0

	for i, def := range defs {
		best := 0
		if store != nil {
			if hs, err := store.HighScore(def.ID); err == nil {
				best = hs
			}
		}
		if def.ID == defaultID {
			cursor = i
		}
		items = append(items, pickerItem{def: def, best: best})
	}

	return PickerModel{
		items:     items,
		cursor:    cursor,
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor].def
			m.selected = &selected
			return m, tea.Quit // Exit picker to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit picker to show scoreboard
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a variant", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		bestStr := ""
		if item.best > 0 {
			bestStr = fmt.Sprintf("  best %d", item.best)
		}

		line := fmt.Sprintf("%s%-10s %dx%d, goal %d%s",
			cursor, item.def.Title, item.def.Size, item.def.Size, item.def.WinTile, bestStr)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked variant, or nil if none picked.
func (m PickerModel) Selected() *variant.Variant {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m PickerModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// PickerResult holds the result of running the picker.
type PickerResult struct {
	VariantID       string
	WantsScoreboard bool
	Quit            bool
}

// RunPicker runs the variant picker and returns the selection result.
func RunPicker(store *storage.Store, width, height int, defaultID string) (PickerResult, error) {
	model := NewPickerModel(store, width, height, defaultID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickerResult{Quit: true}, nil
	}

	result := PickerResult{}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.VariantID = m.Selected().ID
	} else {
		result.Quit = true
	}

	return result, nil
}
