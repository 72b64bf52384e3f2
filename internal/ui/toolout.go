package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToolOutput represents a box for displaying raw flashrom output.
// Used in verbose mode to show exactly what flashrom printed.
type ToolOutput struct {
	Title    string // e.g., "flashrom output"
	Content  string // The raw output
	Width    int    // Terminal width
	MaxLines int    // Maximum lines to display (0 = unlimited)
}

// NewToolOutput creates a new output box
func NewToolOutput(content string) *ToolOutput {
	return &ToolOutput{
		Title:   "flashrom output",
		Content: content,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (o *ToolOutput) SetWidth(width int) *ToolOutput {
	o.Width = width
	return o
}

// SetMaxLines limits the number of lines displayed
func (o *ToolOutput) SetMaxLines(max int) *ToolOutput {
	o.MaxLines = max
	return o
}

// Render returns the styled output box as a string
func (o *ToolOutput) Render() string {
	width := o.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := strings.Split(strings.TrimRight(o.Content, "\n"), "\n")
	if o.MaxLines > 0 && len(lines) > o.MaxLines {
		lines = append(lines[:o.MaxLines], "... (output truncated)")
	}

	titleStyled := ToolOutputTitleStyle.Render(o.Title)
	contentStyled := ToolOutputContentStyle.Render(strings.Join(lines, "\n"))

	inner := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", contentStyled)

	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (o *ToolOutput) String() string {
	return o.Render()
}
