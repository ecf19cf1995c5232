// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem, mock committer
// PURPOSE: Test the archive import flow end to end

package importzip

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/prompt"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/symlib"
)

const (
	root    = "/work/libs"
	zipPath = "/downloads/LM358.zip"

	lm358 = `(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor)
  (symbol "LM358" (in_bom yes) (on_board yes)
    (property "Reference" "U" (at 0 0 0))
    (property "Datasheet" "https://example.test/lm358.pdf" (at 0 0 0))
    (symbol "LM358_1_1"
      (pin output line (at 7.62 0 180) (length 2.54))
    )
  )
)
`
	soic8 = `(footprint "SOIC-8" (version 20211014)
  (model "/home/someone/Downloads/LM358/3D/SOIC-8.step"
    (offset (xyz 0 0 0))
  )
)
`
)

type mockCommitter struct {
	mock.Mock
}

func (m *mockCommitter) Commit(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *mockCommitter) Push(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func writeZip(t *testing.T, fs afero.Fs, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"KiCad/LM358.kicad_sym", "KiCad/SOIC-8.kicad_mod", "3D/SOIC-8.step", "readme.txt"} {
		body, ok := files[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, filesystem.WriteFile(fs, path, buf.Bytes()))
}

func fullArchive() map[string]string {
	return map[string]string{
		"KiCad/LM358.kicad_sym":  lm358,
		"KiCad/SOIC-8.kicad_mod": soic8,
		"3D/SOIC-8.step":         "ISO-10303-21;",
		"readme.txt":             "hello",
	}
}

func setup(t *testing.T) (ImportOptions, afero.Fs) {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	fs := afero.NewMemMapFs()
	return ImportOptions{
		Setup:         internal.Setup{FS: fs, Config: cfg, Root: root},
		Archive:       zipPath,
		ArchiveAction: KeepArchive,
	}, fs
}

func assertNoScratch(t *testing.T, fs afero.Fs) {
	t.Helper()
	left, err := afero.Glob(fs, filepath.Join(os.TempDir(), "kicadlib-*"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestImportUnknownLibrary(t *testing.T) {
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, fullArchive())
	opts.Library = "nope"

	_, err := ImportArchive(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownLibrary))
	assert.False(t, filesystem.Exists(fs, root))
	assert.True(t, filesystem.Exists(fs, zipPath))
}

func TestImportUnreadableArchive(t *testing.T) {
	opts, fs := setup(t)
	require.NoError(t, filesystem.WriteText(fs, zipPath, "not a zip"))
	opts.Library = "ics"

	_, err := ImportArchive(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveOpen))
	assert.False(t, filesystem.Exists(fs, root))
}

func TestImportArchiveWithoutKiCadFiles(t *testing.T) {
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, map[string]string{"readme.txt": "hello"})
	opts.Library = "ics"

	result, err := ImportArchive(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveEmpty))
	assert.True(t, result.Found.Empty())
	assert.False(t, filesystem.Exists(fs, root))
	assertNoScratch(t, fs)
}

func TestImportFullFlow(t *testing.T) {
	ctx := context.Background()
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, fullArchive())

	committer := &mockCommitter{}
	committer.On("Commit", ctx, "Add components from LM358.zip").Return("abc123", nil)
	committer.On("Push", ctx).Return(nil)

	opts.Provider = &prompt.NonInteractive{Library: "ics"}
	opts.AddToProject = true
	opts.Commit = true
	opts.Push = true
	opts.Committer = committer
	opts.ArchiveAction = DeleteArchive

	result, err := ImportArchive(ctx, opts)
	require.NoError(t, err)
	assertNoScratch(t, fs)

	symbols, footprints, models := result.Found.Counts()
	assert.Equal(t, []int{1, 1, 1}, []int{symbols, footprints, models})

	require.NotNil(t, result.Report)
	assert.Equal(t, "ics", result.Report.Library)
	assert.Equal(t, 3, result.Report.Count(library.Added))

	sym, err := filesystem.ReadText(fs, filepath.Join(root, "lib_sym", "lib_ics.kicad_sym"))
	require.NoError(t, err)
	assert.Equal(t, []string{"LM358"}, symlib.Names(sym))

	fp, err := filesystem.ReadText(fs, filepath.Join(root, "lib_fp", "lib_ics.pretty", "SOIC-8.kicad_mod"))
	require.NoError(t, err)
	assert.Contains(t, fp, `(model "${KICAD_3DMODEL_DIR}/SOIC-8.step"`)
	assert.True(t, filesystem.Exists(fs, filepath.Join(root, "3d_models", "SOIC-8.step")))

	require.NotNil(t, result.Register)
	assert.Equal(t, 2, result.Register.Added())

	require.NotNil(t, result.Publication)
	assert.True(t, result.Publication.Committed)
	assert.True(t, result.Publication.Pushed)
	committer.AssertExpectations(t)

	assert.True(t, result.ArchiveDeleted)
	assert.False(t, filesystem.Exists(fs, zipPath))
}

func TestImportTwiceSkipsAndDoesNotCommit(t *testing.T) {
	ctx := context.Background()
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, fullArchive())
	opts.Library = "ics"

	_, err := ImportArchive(ctx, opts)
	require.NoError(t, err)
	symPath := filepath.Join(root, "lib_sym", "lib_ics.kicad_sym")
	before, err := filesystem.ReadText(fs, symPath)
	require.NoError(t, err)

	committer := &mockCommitter{}
	opts.Commit = true
	opts.Committer = committer
	opts.Provider = prompt.WithDecider(&prompt.NonInteractive{}, resolve.Always(resolve.Skip))

	result, err := ImportArchive(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Report.Count(library.Skipped))
	assert.Equal(t, 2, result.Report.Count(library.Unchanged))
	assert.False(t, result.Report.Changed())
	assert.Nil(t, result.Publication)
	committer.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)

	after, err := filesystem.ReadText(fs, symPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportCancelledSelection(t *testing.T) {
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, fullArchive())
	opts.Provider = &prompt.NonInteractive{}
	opts.ArchiveAction = DeleteArchive

	result, err := ImportArchive(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Nil(t, result.Report)
	assert.False(t, filesystem.Exists(fs, root))
	assert.True(t, filesystem.Exists(fs, zipPath))
	assertNoScratch(t, fs)
}

func TestImportArchiveCleanupPrompt(t *testing.T) {
	tests := []struct {
		name    string
		answer  bool
		deleted bool
	}{
		{"confirmed", true, true},
		{"declined", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, fs := setup(t)
			writeZip(t, fs, zipPath, fullArchive())
			opts.Library = "ics"
			opts.ArchiveAction = AskArchive
			opts.Provider = &prompt.NonInteractive{Answer: tt.answer}

			result, err := ImportArchive(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.deleted, result.ArchiveDeleted)
			assert.Equal(t, !tt.deleted, filesystem.Exists(fs, zipPath))
		})
	}
}

func TestImportCommitWithoutRepository(t *testing.T) {
	opts, fs := setup(t)
	writeZip(t, fs, zipPath, fullArchive())
	opts.Library = "ics"
	opts.Commit = true
	opts.Root = t.TempDir()

	result, err := ImportArchive(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, result.Publication)
	assert.True(t, errors.IsErrorCode(result.Publication.Err, errors.ErrVCSUnavailable))
	assert.Equal(t, 3, result.Report.Count(library.Added))
}
