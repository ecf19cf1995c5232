// Package vcs commits and pushes library changes with go-git.
package vcs

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/logging"
)

// ErrNothingToCommit is returned by Commit when the worktree is clean
var ErrNothingToCommit = stderrors.New("nothing to commit")

// Committer records and publishes the library changes once all writes are done
type Committer interface {
	Commit(ctx context.Context, message string) (hash string, err error)
	Push(ctx context.Context) error
}

// Options configures a Repository
type Options struct {
	Remote      string
	AuthorName  string
	AuthorEmail string
	// Auth overrides the credentials found in the environment
	Auth transport.AuthMethod
	// Now stamps commits; defaults to time.Now
	Now func() time.Time
}

// Repository is the git repository holding the libraries
type Repository struct {
	repo *git.Repository
	opts Options
}

// Open finds the repository containing dir, walking up to the first .git.
// A directory outside any repository yields VCS_UNAVAILABLE.
func Open(dir string, opts Options) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Wrapf(err, errors.ErrVCSUnavailable, "%s is not inside a git repository", dir).
				WithDetail("dir", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrVCSUnavailable, "cannot open git repository at %s", dir).
			WithDetail("dir", dir)
	}
	if opts.Remote == "" {
		opts.Remote = git.DefaultRemoteName
	}
	if opts.Auth == nil {
		opts.Auth = authFromEnv()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Repository{repo: repo, opts: opts}, nil
}

// Commit stages every change in the worktree and commits it
func (r *Repository) Commit(ctx context.Context, message string) (string, error) {
	log := logging.GetLogger("vcs")
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommit, "commit cancelled")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommit, "repository has no worktree")
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommit, "failed to stage changes")
	}

	status, err := wt.Status()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommit, "failed to read worktree status")
	}
	if status.IsClean() {
		return "", ErrNothingToCommit
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.opts.AuthorName,
			Email: r.opts.AuthorEmail,
			When:  r.opts.Now(),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCSCommit, "commit failed")
	}

	log.Info().Str("hash", hash.String()).Str("message", message).Msg("Committed changes")
	return hash.String(), nil
}

// Push publishes the current branch to the configured remote. Being
// up to date is not an error.
func (r *Repository) Push(ctx context.Context) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.opts.Remote,
		Auth:       r.opts.Auth,
	})
	if err == nil || stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		logger := logging.GetLogger("vcs")
		logger.Info().Str("remote", r.opts.Remote).Msg("Pushed changes")
		return nil
	}
	return errors.Wrapf(err, errors.ErrVCSPush, "push to %s failed", r.opts.Remote).
		WithDetail("remote", r.opts.Remote)
}

// Message fills the {archive} placeholder of a commit message format
func Message(format, archive string) string {
	if format == "" {
		format = "Add components from {archive}"
	}
	return strings.ReplaceAll(format, "{archive}", archive)
}

// authFromEnv picks HTTP token credentials from the environment. Without
// one, go-git falls back to the ssh agent for ssh remotes.
func authFromEnv() transport.AuthMethod {
	tokens := []struct {
		env, user string
	}{
		{"GITHUB_TOKEN", "x-access-token"},
		{"GITLAB_TOKEN", "gitlab-ci-token"},
		{"GIT_TOKEN", "git"},
	}
	for _, t := range tokens {
		if token := os.Getenv(t.env); token != "" {
			return &http.BasicAuth{Username: t.user, Password: token}
		}
	}
	return nil
}
