package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// markupTags maps the [tag]text[/tag] names used in command messages to
// their styles
var markupTags = map[string]lipgloss.Style{
	"title":     TitleStyle,
	"subtitle":  SubtitleStyle,
	"success":   SuccessStyle,
	"error":     ErrorStyle,
	"warning":   WarningStyle,
	"info":      InfoStyle,
	"code":      CodeStyle,
	"path":      PathStyle,
	"muted":     MutedStyle,
	"bold":      lipgloss.NewStyle().Bold(true),
	"symbol":    SymbolStyle,
	"footprint": FootprintStyle,
	"model":     ModelStyle,
}

type markupRule struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

var markupRules = compileMarkup(markupTags)

func compileMarkup(tags map[string]lipgloss.Style) []markupRule {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]markupRule, 0, len(names))
	for _, name := range names {
		q := regexp.QuoteMeta(name)
		rules = append(rules, markupRule{
			pattern: regexp.MustCompile(`\[` + q + `\](.*?)\[/` + q + `\]`),
			style:   tags[name],
		})
	}
	return rules
}

// Render replaces known markup tags with styled text. Unknown tags are left
// as written. Nested tags are rendered from the inside out over repeated
// passes.
func Render(text string) string {
	for {
		before := text
		for _, rule := range markupRules {
			text = rule.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return rule.style.Render(rule.pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}
