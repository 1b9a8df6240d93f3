// Package tui provides an interactive review step for parsed booth entries
// before they are written to storage.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// KeyMap defines the review screen's keyboard shortcuts.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/Space", "toggle booth"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "keep all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "keep none"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "import kept booths"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "abort"),
		),
	}
}

var (
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F28AB2"))
	keptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Strikethrough(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// Model is the bubbletea model for the import review screen.
type Model struct {
	entries   []model.BoothEntry
	kept      []bool
	keymap    KeyMap
	cursor    int
	confirmed bool
	quitting  bool
}

// NewModel creates a review model with every entry kept.
func NewModel(entries []model.BoothEntry) Model {
	kept := make([]bool, len(entries))
	for i := range kept {
		kept[i] = true
	}
	return Model{
		entries: entries,
		kept:    kept,
		keymap:  DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keymap.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keymap.Toggle):
		if len(m.kept) > 0 {
			m.kept[m.cursor] = !m.kept[m.cursor]
		}
	case key.Matches(keyMsg, m.keymap.All):
		for i := range m.kept {
			m.kept[i] = true
		}
	case key.Matches(keyMsg, m.keymap.None):
		for i := range m.kept {
			m.kept[i] = false
		}
	case key.Matches(keyMsg, m.keymap.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.confirmed {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("导入预览（%d 摊位，保留 %d）", len(m.entries), m.keptCount())))
	b.WriteString("\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %s  %s", venue.Label(e.Type, e.Number), e.Number, e.Name)
		if n := len(e.Products); n > 0 {
			line += helpStyle.Render(fmt.Sprintf("  [%d 制品]", n))
		}

		mark := "[✓] "
		style := keptStyle
		if !m.kept[i] {
			mark = "[ ] "
			style = skippedStyle
		}

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		b.WriteString(prefix + style.Render(mark+line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("x/Space 切换 · a 全选 · n 全不选 · Enter 导入 · q 取消"))
	return b.String()
}

func (m Model) keptCount() int {
	n := 0
	for _, k := range m.kept {
		if k {
			n++
		}
	}
	return n
}

// Kept returns the entries the user chose to keep, or nil when the review
// was aborted.
func (m Model) Kept() []model.BoothEntry {
	if !m.confirmed {
		return nil
	}
	kept := make([]model.BoothEntry, 0, len(m.entries))
	for i, e := range m.entries {
		if m.kept[i] {
			kept = append(kept, e)
		}
	}
	return kept
}

// Aborted reports whether the user quit without confirming.
func (m Model) Aborted() bool {
	return m.quitting
}

// Review runs the interactive review and returns the kept entries. An
// aborted review returns nil entries and aborted=true.
func Review(entries []model.BoothEntry) (kept []model.BoothEntry, aborted bool, err error) {
	if len(entries) == 0 {
		return nil, false, nil
	}

	p := tea.NewProgram(NewModel(entries))
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("review failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, false, fmt.Errorf("unexpected model type %T", final)
	}
	if m.Aborted() {
		return nil, true, nil
	}
	return m.Kept(), false, nil
}
