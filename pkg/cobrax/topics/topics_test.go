// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic loading, lookup and the help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layout.md":             {Data: []byte("# Layout\n\nlib_sym holds symbols")},
		"conflicts.txt":         {Data: []byte("Conflicts are skipped by default")},
		"option-on-conflict.md": {Data: []byte("skip, overwrite or ask")},
		"notes.json":            {Data: []byte("{}")},
		"nested/model-paths.md": {Data: []byte("KICAD_3DMODEL_DIR")},
	}
}

func TestNew(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		found   bool
		content string
	}{
		{"layout", true, "# Layout\n\nlib_sym holds symbols"},
		{"conflicts", true, "Conflicts are skipped by default"},
		{"model-paths", true, "KICAD_3DMODEL_DIR"},
		{"--on-conflict", true, "skip, overwrite or ask"},
		{"notes", false, ""},
		{"missing", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.name)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.content, topic.Content)
			}
		})
	}

	assert.Equal(t, []string{"conflicts", "layout", "model-paths", "option-on-conflict"}, tm.ListTopics())
}

func TestCustomExtensionsAndRenderer(t *testing.T) {
	tm, err := New(testFS(), Options{
		Extensions: []string{".md"},
		Renderer: RendererFunc(func(content, format string) string {
			return strings.ToUpper(format + " " + content)
		}),
	})
	require.NoError(t, err)

	_, ok := tm.GetTopic("conflicts")
	assert.False(t, ok)

	topic, ok := tm.GetTopic("model-paths")
	require.True(t, ok)
	assert.Equal(t, ".MD KICAD_3DMODEL_DIR", tm.Render(topic))
}

func TestInstall(t *testing.T) {
	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "app"}
		root.AddCommand(&cobra.Command{Use: "import", Short: "Import things", Run: func(*cobra.Command, []string) {}})
		tm, err := New(testFS(), Options{})
		require.NoError(t, err)
		tm.Install(root)
		var out bytes.Buffer
		root.SetOut(&out)
		return root, &out
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "layout"}, "lib_sym holds symbols"},
		{"option topic", []string{"help", "on-conflict"}, "skip, overwrite or ask"},
		{"list", []string{"help", "topics"}, "--on-conflict"},
		{"command", []string{"help", "import"}, "Import things"},
		{"unknown", []string{"help", "nothing"}, `Unknown help topic "nothing"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot()
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}
