package controller

import (
	"fmt"

	"github.com/matt-steen/tasks-cli/pkg/config"
	"github.com/matt-steen/tasks-cli/pkg/db"
)

// Styles maps statuses and priorities to tview color tags and icons.
type Styles struct {
	ui config.UI
}

// NewStyles builds Styles from the UI settings.
func NewStyles(ui config.UI) Styles {
	return Styles{ui: ui}
}

// Status returns the colored label for a status.
func (s Styles) Status(status db.Status) string {
	switch status {
	case db.StatusPending:
		return tag(s.ui.Colors.Red, s.ui.Icons.Pending, string(status))
	case db.StatusInProgress:
		return tag(s.ui.Colors.Blue, s.ui.Icons.InProgress, string(status))
	case db.StatusCompleted:
		return tag(s.ui.Colors.Green, s.ui.Icons.Completed, string(status))
	default:
		return string(status)
	}
}

// Priority returns the colored label for a priority.
func (s Styles) Priority(priority db.Priority) string {
	switch priority {
	case db.PriorityHigh:
		return tag(s.ui.Colors.Red, s.ui.Icons.High, string(priority))
	case db.PriorityMedium:
		return tag(s.ui.Colors.Orange, s.ui.Icons.Medium, string(priority))
	case db.PriorityLow:
		return tag(s.ui.Colors.Green, s.ui.Icons.Low, string(priority))
	default:
		return string(priority)
	}
}

// Legend describes the status and priority colors on two lines.
func (s Styles) Legend() string {
	statuses := ""
	for _, status := range db.Statuses() {
		if statuses != "" {
			statuses += " [::d]|[::-] "
		}

		statuses += s.Status(status)
	}

	priorities := ""
	for _, priority := range db.Priorities() {
		if priorities != "" {
			priorities += " [::d]|[::-] "
		}

		priorities += s.Priority(priority)
	}

	return fmt.Sprintf("Status:   %s\nPriority: %s", statuses, priorities)
}

func tag(color, icon, text string) string {
	if icon != "" {
		text = icon + " " + text
	}

	if color == "" {
		return text
	}

	return fmt.Sprintf("[%s]%s[-]", color, text)
}
