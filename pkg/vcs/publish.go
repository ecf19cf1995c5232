package vcs

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/kicadlib/pkg/logging"
)

// Publication reports a commit and optional push. Failures are carried in
// Err; the library changes they follow are already on disk.
type Publication struct {
	Message   string `yaml:"message"`
	Hash      string `yaml:"hash,omitempty"`
	Committed bool   `yaml:"committed"`
	Pushed    bool   `yaml:"pushed"`
	// Clean means there was nothing to commit
	Clean bool   `yaml:"clean,omitempty"`
	Error string `yaml:"error,omitempty"`
	Err   error  `yaml:"-"`
}

// Publish commits every change under c with message and pushes when asked.
// A clean worktree is not a failure and skips the push.
func Publish(ctx context.Context, c Committer, message string, push bool) *Publication {
	log := logging.GetLogger("vcs")
	p := &Publication{Message: message}

	hash, err := c.Commit(ctx, message)
	switch {
	case stderrors.Is(err, ErrNothingToCommit):
		p.Clean = true
		log.Info().Msg("Nothing to commit")
		return p
	case err != nil:
		p.fail(err)
		log.Warn().Err(err).Msg("Commit failed")
		return p
	}
	p.Hash = hash
	p.Committed = true

	if !push {
		return p
	}
	if err := c.Push(ctx); err != nil {
		p.fail(err)
		log.Warn().Err(err).Msg("Push failed")
		return p
	}
	p.Pushed = true
	return p
}

// Failed wraps an error that stopped publishing before any commit, such as
// a missing repository
func Failed(message string, err error) *Publication {
	p := &Publication{Message: message}
	p.fail(err)
	return p
}

func (p *Publication) fail(err error) {
	p.Err = err
	p.Error = err.Error()
}
