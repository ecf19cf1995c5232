// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test archive extraction, zip-slip rejection and guaranteed cleanup

package archive

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
)

type entry struct {
	name, body string
}

func writeZip(t *testing.T, fsys afero.Fs, path string, entries ...entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, afero.WriteFile(fsys, path, buf.Bytes(), filesystem.FileMode))
}

func TestExtract(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeZip(t, fsys, "/in/LM358.zip",
		entry{"KiCad/LM358.kicad_sym", "(kicad_symbol_lib)"},
		entry{"KiCad/", ""},
		entry{"KiCad/SOIC-8.kicad_mod", "(footprint)"},
		entry{"3D/SOIC-8.step", "ISO"},
	)

	ext, err := Extract(fsys, "/in/LM358.zip")
	require.NoError(t, err)

	require.Len(t, ext.Files, 3)
	assert.Equal(t, filepath.Join(ext.Dir, "KiCad", "LM358.kicad_sym"), ext.Files[0])
	assert.Equal(t, filepath.Join(ext.Dir, "KiCad", "SOIC-8.kicad_mod"), ext.Files[1])
	assert.Equal(t, filepath.Join(ext.Dir, "3D", "SOIC-8.step"), ext.Files[2])
	assert.Contains(t, filepath.Base(ext.Dir), TempPrefix)

	data, err := afero.ReadFile(fsys, ext.Files[1])
	require.NoError(t, err)
	assert.Equal(t, "(footprint)", string(data))

	require.NoError(t, ext.Cleanup())
	assert.False(t, filesystem.Exists(fsys, ext.Dir))
}

func TestExtractErrors(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fsys, "/in/notes.zip", []byte("not a zip"), filesystem.FileMode))
	require.NoError(t, fsys.MkdirAll("/in/dir.zip", filesystem.DirMode))

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing", "/in/missing.zip", errors.ErrArchiveOpen},
		{"not a zip", "/in/notes.zip", errors.ErrArchiveOpen},
		{"directory", "/in/dir.zip", errors.ErrArchiveOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := Extract(fsys, tt.path)
			require.Error(t, err)
			assert.Nil(t, ext)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestExtractRejectsZipSlip(t *testing.T) {
	for _, name := range []string{"../evil.kicad_sym", "a/../../evil.step", "/abs/evil.step", `..\evil.step`, "C:/evil.step"} {
		t.Run(name, func(t *testing.T) {
			fsys := filesystem.NewMemory()
			writeZip(t, fsys, "/in/bad.zip", entry{"ok.kicad_sym", "x"}, entry{name, "x"})

			_, err := Extract(fsys, "/in/bad.zip")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveExtract))

			// Nothing left behind
			matches, _ := afero.Glob(fsys, filepath.Join(filepathTempDir(), TempPrefix+"*"))
			assert.Empty(t, matches)
		})
	}
}

func TestWithCleansUp(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeZip(t, fsys, "/in/a.zip", entry{"a.kicad_sym", "x"})

	t.Run("success", func(t *testing.T) {
		var dir string
		err := With(fsys, "/in/a.zip", func(e *Extraction) error {
			dir = e.Dir
			assert.True(t, filesystem.Exists(fsys, e.Files[0]))
			return nil
		})
		require.NoError(t, err)
		assert.False(t, filesystem.Exists(fsys, dir))
	})

	t.Run("error", func(t *testing.T) {
		var dir string
		boom := stderrors.New("boom")
		err := With(fsys, "/in/a.zip", func(e *Extraction) error {
			dir = e.Dir
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, filesystem.Exists(fsys, dir))
	})

	t.Run("panic", func(t *testing.T) {
		var dir string
		assert.Panics(t, func() {
			_ = With(fsys, "/in/a.zip", func(e *Extraction) error {
				dir = e.Dir
				panic("merge blew up")
			})
		})
		assert.False(t, filesystem.Exists(fsys, dir))
	})

	t.Run("unreadable archive never runs fn", func(t *testing.T) {
		called := false
		err := With(fsys, "/in/missing.zip", func(*Extraction) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func filepathTempDir() string {
	return filepath.Clean(os.TempDir())
}
