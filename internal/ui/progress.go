package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet started
	StepRunning                    // Currently executing
	StepComplete                   // Successfully completed
	StepFailed                     // Failed
	StepSkipped                    // Skipped
)

// Step represents a single step in a multi-step operation
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // Step description
	Status  StepStatus // Current status
	Message string     // Optional status message (e.g., "1,234 bytes")
}

// RenderStepLine renders a single step line with its status marker.
// Commands print steps as they complete rather than maintaining a
// redrawing progress display; flashrom streams its own progress output
// during long reads and writes, and a second display would fight it.
func RenderStepLine(step Step) string {
	var marker string
	var style lipgloss.Style

	switch step.Status {
	case StepComplete:
		marker = StepMarkerComplete
		style = StepCompleteStyle
	case StepRunning:
		marker = StepMarkerRunning
		style = StepRunningStyle
	case StepFailed:
		marker = FailureMarker
		style = ErrorTitleStyle
	case StepSkipped:
		marker = "⊘"
		style = StepPendingStyle
	default: // StepPending
		marker = StepMarkerPending
		style = StepPendingStyle
	}

	line := "  " + style.Render(step.Name)
	line += "  " + style.Render(marker)
	if step.Message != "" {
		line += "  " + StepNoteStyle.Render("("+step.Message+")")
	}
	return line
}
