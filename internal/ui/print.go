package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Convenience helpers used by CLI commands to print styled components
// without managing widths and spacing themselves.

// PrintCommandHeader prints a styled command header
func PrintCommandHeader(title, command string, params map[string]string) {
	header := NewHeader(title, command, params)
	header.SetWidth(GetTerminalWidth())
	fmt.Println(header.Render())
	fmt.Println()
}

// PrintSuccess prints a styled success result
func PrintSuccess(title string, details map[string]string) {
	result := NewSuccessResult(title, details)
	result.SetWidth(GetTerminalWidth())
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintFailure prints a styled failure result
func PrintFailure(title string, err error, troubleshooting []string) {
	result := NewFailureResult(title, err, troubleshooting)
	result.SetWidth(GetTerminalWidth())
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintWarning prints a styled warning result
func PrintWarning(title string, details map[string]string) {
	result := NewWarningResult(title, details)
	result.SetWidth(GetTerminalWidth())
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintToolOutput prints a styled flashrom output box (for verbose mode)
func PrintToolOutput(output string) {
	box := NewToolOutput(output)
	box.SetWidth(GetTerminalWidth())
	fmt.Println()
	fmt.Println(box.Render())
}

// PrintStep prints a single styled step line
func PrintStep(step Step) {
	fmt.Println(RenderStepLine(step))
}

// PrintPleaseWait prints a styled "please wait" message for long-running
// operations. The duration hint helps set user expectations, e.g.,
// "this may take several minutes".
func PrintPleaseWait(message string, durationHint string) {
	style := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	hintStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + hintStyle.Render("("+durationHint+")")
	}
	line += style.Render("...")

	fmt.Println()
	fmt.Println(line)
	fmt.Println()
}
