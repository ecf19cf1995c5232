package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// CodeStyle marks symbol names and variables such as ${KICAD_3DMODEL_DIR}
	CodeStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Background(CodeBgColor).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

var (
	SymbolStyle    = lipgloss.NewStyle().Foreground(SymbolColor).Bold(true)
	FootprintStyle = lipgloss.NewStyle().Foreground(FootprintColor).Bold(true)
	ModelStyle     = lipgloss.NewStyle().Foreground(ModelColor).Bold(true)
)

// RoleStyle picks the style for a file role name as printed in reports
func RoleStyle(role string) lipgloss.Style {
	switch role {
	case "symbol":
		return SymbolStyle
	case "footprint":
		return FootprintStyle
	case "3D model":
		return ModelStyle
	default:
		return MutedStyle
	}
}

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
