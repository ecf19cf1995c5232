// TEST TYPE: Integration Test
// DEPENDENCIES: Temporary git repositories
// PURPOSE: Test staging, committing and push error reporting

package vcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kicadlib/pkg/errors"
)

func testOptions() Options {
	return Options{
		AuthorName:  "kicadlib",
		AuthorEmail: "kicadlib@localhost",
		Now:         func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestOpenOutsideRepository(t *testing.T) {
	_, err := Open(t.TempDir(), testOptions())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSUnavailable))
}

func TestOpenDetectsParentRepository(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "lib", "lib_sym")
	require.NoError(t, os.MkdirAll(sub, 0755))

	r, err := Open(sub, testOptions())
	require.NoError(t, err)
	assert.Equal(t, "origin", r.opts.Remote)
}

func TestCommit(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib_sym"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib_sym", "lib_rf.kicad_sym"), []byte("(kicad_symbol_lib)\n"), 0644))

	r, err := Open(dir, testOptions())
	require.NoError(t, err)

	hash, err := r.Commit(context.Background(), Message("", "LM358.zip"))
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	assert.Equal(t, "Add components from LM358.zip", commit.Message)
	assert.Equal(t, "kicadlib", commit.Author.Name)

	// Clean worktree
	_, err = r.Commit(context.Background(), "again")
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestCommitCancelled(t *testing.T) {
	r, err := Open(initRepo(t), testOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Commit(ctx, "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSCommit))
}

func TestPushWithoutRemote(t *testing.T) {
	r, err := Open(initRepo(t), testOptions())
	require.NoError(t, err)

	err = r.Push(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCSPush))
	assert.Equal(t, "origin", errors.GetErrorDetails(err)["remote"])
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Add components from a.zip", Message("", "a.zip"))
	assert.Equal(t, "parts: a.zip (a.zip)", Message("parts: {archive} ({archive})", "a.zip"))
	assert.Equal(t, "library initialization", Message("library initialization", "x"))
}

func TestAuthFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")
	assert.Nil(t, authFromEnv())

	t.Setenv("GITLAB_TOKEN", "secret")
	auth, ok := authFromEnv().(*http.BasicAuth)
	require.True(t, ok)
	assert.Equal(t, "gitlab-ci-token", auth.Username)
}
