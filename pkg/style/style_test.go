// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test markup rendering, status lines and role styles

package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBold(t *testing.T) {
	assert.Contains(t, Bold("lib_passives"), "lib_passives")
}

func TestIndent(t *testing.T) {
	for level, want := range []string{"lib_ics", "  lib_ics", "    lib_ics"} {
		assert.Equal(t, want, Indent("lib_ics", level))
	}
}

func TestRoleStyle(t *testing.T) {
	for _, role := range []string{"symbol", "footprint", "3D model", "other"} {
		t.Run(role, func(t *testing.T) {
			assert.Contains(t, RoleStyle(role).Render("R_0402"), "R_0402")
		})
	}
}

func TestMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"plain text", "no tags", []string{"no tags"}},
		{"single tag", "added [symbol]R_0402[/symbol]", []string{"added ", "R_0402"}},
		{"nested tags", "[bold]lib [path]lib_sym[/path][/bold]", []string{"lib ", "lib_sym"}},
		{"unknown tag kept", "[nope]x[/nope]", []string{"[nope]x[/nope]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, tag := range []string{"[symbol]", "[/symbol]", "[bold]", "[path]"} {
				assert.NotContains(t, out, tag)
			}
		})
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		status string
		marker string
	}{
		{StatusAdded, "✓"},
		{StatusOverwritten, "!"},
		{StatusSkipped, "-"},
		{StatusUnchanged, "•"},
		{StatusFailed, "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			line := StatusLine(tt.status, "R_0402")
			assert.Contains(t, line, tt.marker)
			assert.Contains(t, line, tt.status)
			assert.True(t, strings.HasSuffix(line, "R_0402"))
		})
	}
}
