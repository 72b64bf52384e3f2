package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veska/flashpad/internal/chip"
)

// ChipCandidate is one chip model offered for selection. Probing a board
// can match several chip models (same JEDEC ID, different part numbers);
// the user has to pick the one actually fitted.
type ChipCandidate struct {
	Name    string
	Details *chip.Chip // nil when the chip is not in the catalog
}

// chipSelectKeyMap defines key bindings for the chip selection screen
type chipSelectKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k chipSelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k chipSelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Enter, k.Quit},
	}
}

// chipItem wraps a ChipCandidate for use with bubbles/list
type chipItem struct {
	candidate ChipCandidate
}

// FilterValue implements list.Item
func (c chipItem) FilterValue() string {
	if c.candidate.Details != nil {
		return c.candidate.Name + " " + c.candidate.Details.Vendor
	}
	return c.candidate.Name
}

// chipDelegate renders chip candidates as compact two-line entries
type chipDelegate struct{}

func (d chipDelegate) Height() int { return 2 }

func (d chipDelegate) Spacing() int { return 1 }

func (d chipDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d chipDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(chipItem)
	if !ok {
		return
	}

	selected := index == m.Index()

	nameStyle := lipgloss.NewStyle().Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(MutedColor)

	var name string
	if selected {
		name = lipgloss.NewStyle().Foreground(HighlightColor).Bold(true).Render("→ " + ci.candidate.Name)
	} else {
		name = "  " + nameStyle.Render(ci.candidate.Name)
	}

	detail := "  not in catalog"
	if c := ci.candidate.Details; c != nil {
		detail = fmt.Sprintf("  %s • %s • %s • %s", c.Vendor, chip.FormatSize(c.SizeBytes), c.Bus, c.Voltage())
	}

	fmt.Fprintf(w, "%s\n%s", name, detailStyle.Render(detail))
}

// ChipSelectModel represents the chip selection screen state
type ChipSelectModel struct {
	ChipList list.Model
	Selected bool
	Aborted  bool

	Width  int
	Height int
	Help   help.Model
	Keys   chipSelectKeyMap
}

// NewChipSelectModel creates a chip selection model from probe candidates
func NewChipSelectModel(candidates []ChipCandidate) ChipSelectModel {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = chipItem{candidate: c}
	}

	width, height := GetTerminalSize()
	chipList := list.New(items, chipDelegate{}, width, height-2)
	chipList.Title = "Multiple flash chips matched - select one"
	chipList.SetShowStatusBar(false)
	chipList.SetFilteringEnabled(true)
	chipList.Styles.Title = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Padding(0, 1)

	keys := chipSelectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "cancel"),
		),
	}

	return ChipSelectModel{
		ChipList: chipList,
		Help:     help.New(),
		Keys:     keys,
	}
}

// Init implements tea.Model
func (m ChipSelectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ChipSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys while the list filter input is active
		if m.ChipList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "enter":
			if m.ChipList.SelectedItem() != nil {
				m.Selected = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ChipList.SetWidth(msg.Width - 4)
		m.ChipList.SetHeight(msg.Height - 6)
	}

	m.ChipList, cmd = m.ChipList.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ChipSelectModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.ChipList.View())
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}

// SelectedChip returns the chosen candidate name, or "" if none was chosen
func (m ChipSelectModel) SelectedChip() string {
	if !m.Selected {
		return ""
	}
	if item, ok := m.ChipList.SelectedItem().(chipItem); ok {
		return item.candidate.Name
	}
	return ""
}

// SelectChip runs an interactive picker over the given chip names and
// returns the chosen one. Names found in the catalog get vendor, size and
// voltage details alongside. Returns an empty string if the user cancels.
func SelectChip(names []string, catalog *chip.Catalog) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("no chips to select from")
	}
	if len(names) == 1 {
		return names[0], nil
	}

	candidates := make([]ChipCandidate, len(names))
	for i, name := range names {
		candidates[i] = ChipCandidate{Name: name}
		if c, ok := catalog.Get(name); ok {
			candidates[i].Details = c
		}
	}

	program := tea.NewProgram(NewChipSelectModel(candidates))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("chip selection failed: %w", err)
	}

	model, ok := final.(ChipSelectModel)
	if !ok {
		return "", fmt.Errorf("chip selection failed: unexpected model type")
	}
	if model.Aborted {
		return "", nil
	}
	return model.SelectedChip(), nil
}
