package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Report colors. Each pair is light terminal first, dark second.
var (
	AccentColor  = lipgloss.AdaptiveColor{Light: "#1D4E89", Dark: "#7FB2F0"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#5C6370", Dark: "#A7AFBC"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1B1B1B", Dark: "#F2F2F2"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#7A7F87", Dark: "#8B929C"}
	CodeBgColor  = lipgloss.AdaptiveColor{Light: "#EEF1F5", Dark: "#2A2D36"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFB74D"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}
)

// Role colors follow KiCad's editors: schematic symbol body, front copper
// and the 3D viewer's board green
var (
	SymbolColor    = lipgloss.AdaptiveColor{Light: "#840000", Dark: "#E06C6C"}
	FootprintColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#E0B040"}
	ModelColor     = lipgloss.AdaptiveColor{Light: "#2F6B3A", Dark: "#7CC68A"}
)
