// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test --output parsing and format resolution

package ui_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/ui"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  ui.Format
	}{
		{"", ui.FormatAuto},
		{"auto", ui.FormatAuto},
		{"term", ui.FormatTerminal},
		{"Terminal", ui.FormatTerminal},
		{"text", ui.FormatText},
		{"plain", ui.FormatText},
		{"YAML", ui.FormatYAML},
		{" yml ", ui.FormatYAML},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("round trips canonical names", func(t *testing.T) {
		for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatYAML} {
			got, err := ui.ParseFormat(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, got)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ui.ParseFormat("xml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Equal(t, "xml", errors.GetErrorDetails(err)["format"])
	})

	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, ui.FormatYAML, ui.Resolve(ui.FormatYAML, nil))
	assert.Equal(t, ui.FormatTerminal, ui.Resolve(ui.FormatTerminal, nil))
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, nil))

	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, f))
	})
}
