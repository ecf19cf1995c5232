// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test symbol library merging, collision handling and idempotence

package symlib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/sexpr"
)

const r0402 = `(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor)
  (symbol "R_0402" (in_bom yes) (on_board yes)
    (property "Reference" "R" (at 0 0 0))
    (property "Datasheet" "https://example.test/r(0402).pdf" (at 0 0 0))
    (symbol "R_0402_0_1"
      (rectangle (start -1 2) (end 1 -2))
    )
  )
)
`

const c0603 = `(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor)
  (symbol "C_0603"
    (property "Reference" "C" (at 0 0 0))
  )
)
`

func skip() MergeOptions      { return MergeOptions{Existing: resolve.Skip} }
func overwrite() MergeOptions { return MergeOptions{Existing: resolve.Overwrite} }

// assertWellFormed checks the document is one container whose top-level
// symbol spans do not overlap
func assertWellFormed(t *testing.T, doc string) []sexpr.Block {
	t.Helper()
	c, err := sexpr.FindContainer(doc)
	require.NoError(t, err)
	assert.Equal(t, "kicad_symbol_lib", c.Keyword)

	top := sexpr.TopLevel(sexpr.Symbols(doc))
	for i := 1; i < len(top); i++ {
		assert.LessOrEqual(t, top[i-1].End, top[i].Start)
	}
	return top
}

func TestMergeIntoEmptyLibrary(t *testing.T) {
	for _, target := range []string{"", EmptyLibrary(""), "  " + strings.TrimSpace(EmptyLibrary("")) + "  \n"} {
		res, err := Merge(target, r0402, skip())
		require.NoError(t, err)

		assert.True(t, res.Changed)
		assert.Equal(t, []string{"R_0402"}, res.Added)
		assert.True(t, strings.HasPrefix(res.Text, DefaultHeader+"\n  (symbol \"R_0402\""))
		assert.True(t, strings.HasSuffix(res.Text, "\n)\n"))

		assertWellFormed(t, res.Text)
		assert.Equal(t, []string{"R_0402"}, Names(res.Text))
	}
}

func TestMergeAppendsBeforeClose(t *testing.T) {
	first, err := Merge(EmptyLibrary(""), r0402, skip())
	require.NoError(t, err)

	second, err := Merge(first.Text, c0603, skip())
	require.NoError(t, err)

	assert.True(t, second.Changed)
	assert.Equal(t, []string{"C_0603"}, second.Added)
	assert.Equal(t, []string{"R_0402", "C_0603"}, Names(second.Text))

	// Everything before the old close is preserved byte-for-byte
	prefix := first.Text[:strings.LastIndex(first.Text, ")")]
	assert.True(t, strings.HasPrefix(second.Text, prefix))
	assertWellFormed(t, second.Text)
}

func TestMergeSkipIsIdempotent(t *testing.T) {
	first, err := Merge(EmptyLibrary(""), r0402, skip())
	require.NoError(t, err)

	again, err := Merge(first.Text, r0402, skip())
	require.NoError(t, err)

	assert.False(t, again.Changed)
	assert.Equal(t, first.Text, again.Text)
	assert.Empty(t, again.Added)
	assert.Equal(t, []string{"R_0402"}, again.Skipped)

	before := sexpr.TopLevel(sexpr.Symbols(first.Text))
	after := sexpr.TopLevel(sexpr.Symbols(again.Text))
	assert.Equal(t, before, after, "same block count and spans")
}

func TestMergeSkipLeavesWholeFileOut(t *testing.T) {
	existing, err := Merge(EmptyLibrary(""), r0402, skip())
	require.NoError(t, err)

	incoming := `(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor)
  (symbol "R_0402"
    (property "Reference" "R2" (at 0 0 0))
  )
  (symbol "L_0805"
    (property "Reference" "L" (at 0 0 0))
  )
)
`
	res, err := Merge(existing.Text, incoming, skip())
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Equal(t, existing.Text, res.Text)
	assert.Empty(t, res.Added)
	assert.Equal(t, []string{"R_0402"}, res.Skipped)
	assert.NotContains(t, res.Text, "L_0805")

	// Overwrite applies the whole file instead
	res, err = Merge(existing.Text, incoming, overwrite())
	require.NoError(t, err)
	assert.Equal(t, []string{"R_0402"}, res.Replaced)
	assert.Equal(t, []string{"R_0402", "L_0805"}, res.Added)
	assertWellFormed(t, res.Text)
}

func TestMergeKeepsTargetBytesBeforeClose(t *testing.T) {
	target := DefaultHeader + "\n  (symbol \"A\" (pin 1))  \n\n)\n"
	res, err := Merge(target, `(symbol "B" (pin 2))`, skip())
	require.NoError(t, err)

	end := strings.LastIndex(target, ")")
	assert.True(t, strings.HasPrefix(res.Text, target[:end]))
	assert.True(t, strings.HasSuffix(res.Text, "(symbol \"B\" (pin 2))\n)\n"))
	assert.Equal(t, []string{"A", "B"}, Names(res.Text))

	// A close on the header line gets its own line
	res, err = Merge(DefaultHeader+` (symbol "A" (pin 1)))`, `(symbol "B" (pin 2))`, skip())
	require.NoError(t, err)
	assert.Equal(t, DefaultHeader+` (symbol "A" (pin 1))`+"\n(symbol \"B\" (pin 2))\n)", res.Text)
}

func TestMergeOverwriteReplacesDefinition(t *testing.T) {
	first, err := Merge(EmptyLibrary(""), r0402+"", skip())
	require.NoError(t, err)
	second, err := Merge(first.Text, c0603, skip())
	require.NoError(t, err)

	updated := strings.Replace(r0402, `"Reference" "R"`, `"Reference" "RNEW"`, 1)
	res, err := Merge(second.Text, updated, overwrite())
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, []string{"R_0402"}, res.Replaced)
	assert.Equal(t, []string{"R_0402"}, res.Added)

	// Never present twice; the replacement is appended after the survivors
	assert.Equal(t, []string{"C_0603", "R_0402"}, Names(res.Text))
	assert.Equal(t, 1, strings.Count(res.Text, `(symbol "R_0402_0_1"`))
	assert.Contains(t, res.Text, `"RNEW"`)
	assert.NotContains(t, res.Text, `"Reference" "R" `)
	assert.NotContains(t, res.Text, "\n\n", "excision leaves no blank lines")
	assertWellFormed(t, res.Text)
}

func TestMergeOverwriteRemovesFlatSubBlocks(t *testing.T) {
	target := DefaultHeader + `
  (symbol "U1" (pin 1))
  (symbol "U1_0_1" (rectangle))
  (symbol "U1_1_1" (pin 2))
  (symbol "U2" (pin 1))
)
`
	res, err := Merge(target, `(symbol "U1" (pin 9))`, overwrite())
	require.NoError(t, err)

	top := assertWellFormed(t, res.Text)
	var names []string
	for _, b := range top {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"U2", "U1"}, names)
	assert.Contains(t, res.Text, "(pin 9)")
}

func TestMergeBareBlocks(t *testing.T) {
	res, err := Merge(EmptyLibrary(""), `(symbol "D_SMA" (pin 1))`, skip())
	require.NoError(t, err)

	assert.Equal(t, DefaultHeader+"\n(symbol \"D_SMA\" (pin 1))\n)\n", res.Text)
}

func TestMergeCustomHeader(t *testing.T) {
	header := "(kicad_symbol_lib (version 20231120) (generator kicadlib)"
	res, err := Merge("", c0603, MergeOptions{Header: header})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Text, header+"\n"))

	// A document equal to the canonical empty form for that header is fresh
	res, err = Merge(EmptyLibrary(header), c0603, MergeOptions{Header: header})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(res.Text, "(kicad_symbol_lib"))
}

func TestMergeNothingToAdd(t *testing.T) {
	target := EmptyLibrary("")
	res, err := Merge(target, "(kicad_symbol_lib (version 1)\n)\n", skip())
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Equal(t, target, res.Text)
	assert.Nil(t, res.Added)
}

func TestMergeMalformed(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		incoming string
	}{
		{"unbalanced target", DefaultHeader + "\n  (symbol \"A\" (pin 1)\n", c0603},
		{"target without container", "garbage", c0603},
		{"unbalanced incoming container", EmptyLibrary(""), "(kicad_symbol_lib (symbol \"A\" (pin 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Merge(tt.target, tt.incoming, skip())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedDocument))
			assert.Equal(t, tt.target, res.Text)
		})
	}
}

func TestMergeReindexUnion(t *testing.T) {
	doc := EmptyLibrary("")
	var want []string
	for _, name := range []string{"A", "B", "C"} {
		res, err := Merge(doc, `  (symbol "`+name+`" (pin 1))`, skip())
		require.NoError(t, err)
		doc = res.Text
		want = append(want, name)
		assert.Equal(t, want, Names(doc))
		assertWellFormed(t, doc)
	}
}
