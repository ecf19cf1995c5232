// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem, mock committer
// PURPOSE: Test init, register, libraries and relink through the command API

package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/commands"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/prompt"
)

const root = "/work/libs"

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

func newSetup(t *testing.T) commands.Setup {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return commands.Setup{FS: afero.NewMemMapFs(), Config: cfg, Root: root}
}

func TestInitLibraries(t *testing.T) {
	ctx := context.Background()
	setup := newSetup(t)
	committer := &mockCommitter{}
	committer.On("Commit", ctx, "library initialization").Return("abc", nil).Once()

	result, err := commands.InitLibraries(ctx, commands.InitOptions{Setup: setup, Commit: true, Committer: committer})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Report.Created)
	require.NotNil(t, result.Publication)
	assert.True(t, result.Publication.Committed)

	t.Run("nothing created means no commit", func(t *testing.T) {
		again, err := commands.InitLibraries(ctx, commands.InitOptions{Setup: setup, Commit: true, Committer: committer})
		require.NoError(t, err)
		assert.Empty(t, again.Report.Created)
		assert.Nil(t, again.Publication)
		committer.AssertNumberOfCalls(t, "Commit", 1)
	})
}

func TestRegisterLibraries(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit keys twice", func(t *testing.T) {
		setup := newSetup(t)
		opts := commands.RegisterOptions{Setup: setup, Libraries: []string{"connectors", "passives"}}

		first, err := commands.RegisterLibraries(ctx, opts)
		require.NoError(t, err)
		assert.Equal(t, 4, first.Report.Added())

		second, err := commands.RegisterLibraries(ctx, opts)
		require.NoError(t, err)
		assert.Zero(t, second.Report.Added())
	})

	t.Run("all libraries", func(t *testing.T) {
		setup := newSetup(t)
		result, err := commands.RegisterLibraries(ctx, commands.RegisterOptions{Setup: setup, All: true})
		require.NoError(t, err)
		assert.Len(t, result.Libraries, len(setup.Config.Libraries))
		assert.Equal(t, 2*len(setup.Config.Libraries), result.Report.Added())
	})

	t.Run("selection prompt", func(t *testing.T) {
		setup := newSetup(t)
		result, err := commands.RegisterLibraries(ctx, commands.RegisterOptions{
			Setup:    setup,
			Selector: &prompt.NonInteractive{Libraries: []string{"power"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"power"}, result.Libraries)
		assert.Equal(t, []string{"lib_power"}, result.Report.Tables[0].Added)
	})

	t.Run("nothing selected writes nothing", func(t *testing.T) {
		setup := newSetup(t)
		result, err := commands.RegisterLibraries(ctx, commands.RegisterOptions{Setup: setup, Selector: &prompt.NonInteractive{}})
		require.NoError(t, err)
		assert.Nil(t, result.Report)
		assert.False(t, filesystem.Exists(setup.FS, "/work/sym-lib-table"))
	})

	t.Run("unknown key", func(t *testing.T) {
		setup := newSetup(t)
		_, err := commands.RegisterLibraries(ctx, commands.RegisterOptions{Setup: setup, Libraries: []string{"nope"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownLibrary))
	})
}

func TestListLibraries(t *testing.T) {
	setup := newSetup(t)
	statuses, err := commands.ListLibraries(commands.ListOptions{Setup: setup})
	require.NoError(t, err)
	require.Len(t, statuses, len(setup.Config.Libraries))
	assert.Equal(t, "connectors", statuses[0].Library.Key)
	assert.False(t, statuses[0].HasSymbols)
}

func TestRelinkModels(t *testing.T) {
	setup := newSetup(t)
	path := filepath.Join(root, "lib_fp", "lib_power.pretty", "SOT-23.kicad_mod")
	require.NoError(t, filesystem.WriteText(setup.FS, path, "(footprint \"SOT-23\"\n  (model \"C:\\\\3d\\\\SOT-23.step\")\n)\n"))

	results, err := commands.RelinkModels(commands.RelinkOptions{Setup: setup})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, library.Overwritten, results[0].Status)

	text, err := filesystem.ReadText(setup.FS, path)
	require.NoError(t, err)
	assert.Contains(t, text, `(model "${KICAD_3DMODEL_DIR}/SOT-23.step")`)
}
