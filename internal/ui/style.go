package ui

import "github.com/fatih/color"

// Sprint color functions for building styled strings.
var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	Magenta    = color.New(color.FgMagenta).SprintFunc()
	BoldCyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen  = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed    = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldWhite  = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// StatusIcon returns a colored status icon for compact table display.
func StatusIcon(status string) string {
	switch status {
	case "done":
		return Green("✓")
	case "in-progress":
		return Cyan("●")
	case "failed":
		return Red("✗")
	case "cancelled":
		return Dim("⊘")
	default:
		return Dim("◌")
	}
}

// Priority returns a colored priority label.
func Priority(priority string) string {
	switch priority {
	case "high":
		return BoldRed(priority)
	case "medium":
		return Yellow(priority)
	case "low":
		return Dim(priority)
	default:
		return Dim(priority)
	}
}

// Severity returns a colored severity label for cycle reports.
func Severity(sev string) string {
	switch sev {
	case "critical":
		return BoldRed(sev)
	case "warning":
		return BoldYellow(sev)
	default:
		return Dim(sev)
	}
}

// Critical marks a task id according to critical-path membership.
func Critical(id string, critical bool) string {
	if critical {
		return BoldRed(id)
	}
	return id
}
