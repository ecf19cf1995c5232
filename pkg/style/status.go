package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Per-file outcomes as reported by imports
const (
	StatusAdded       = "added"
	StatusOverwritten = "overwritten"
	StatusSkipped     = "skipped"
	StatusUnchanged   = "unchanged"
	StatusFailed      = "failed"
)

// StatusStyle returns the pterm style used for a status label
func StatusStyle(status string) *pterm.Style {
	switch status {
	case StatusAdded:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusOverwritten:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator renders the one-character marker for a status. Rendering happens
// at call time so a colour profile chosen after start-up applies.
func Indicator(status string) string {
	switch status {
	case StatusAdded:
		return SuccessStyle.Render("✓")
	case StatusOverwritten:
		return WarningStyle.Render("!")
	case StatusFailed:
		return ErrorStyle.Render("✗")
	case StatusSkipped:
		return MutedStyle.Render("-")
	default:
		return InfoStyle.Render("•")
	}
}

// StatusLine renders "<indicator> <status> <message>" with a padded label
func StatusLine(status, message string) string {
	label := StatusStyle(status).Sprint(fmt.Sprintf("%-11s", status))
	return fmt.Sprintf("%s %s %s", Indicator(status), label, message)
}
