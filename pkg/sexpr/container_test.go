// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test outer container detection and malformed documents

package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContainer(t *testing.T) {
	c, err := FindContainer(library)
	require.NoError(t, err)

	assert.Equal(t, "kicad_symbol_lib", c.Keyword)
	assert.Equal(t, 0, c.Open)
	assert.Equal(t, ")", string(library[c.Close]))
	assert.Equal(t, len(library)-2, c.Close)
}

func TestFindContainerErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrNoContainer},
		{"whitespace", " \n", ErrNoContainer},
		{"leading garbage", "junk (kicad_symbol_lib)", ErrNoContainer},
		{"never closes", "(kicad_symbol_lib (symbol \"A\")", ErrUnbalanced},
		{"close hidden in string", `(kicad_symbol_lib "x)"`, ErrUnbalanced},
		{"trailing form", "(a)\n(b)", ErrUnbalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindContainer(tt.text)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
