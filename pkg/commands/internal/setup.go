// Package internal holds what the command implementations share: building
// the library manager and opening the repository.
package internal

import (
	"context"

	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/vcs"
)

// Setup is the environment every command runs in
type Setup struct {
	FS     afero.Fs
	Config *config.Config
	// Root is the resolved library root
	Root string
}

// Manager builds the library manager for s
func (s Setup) Manager(decider resolve.Decider) (*library.Manager, error) {
	if s.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "command needs a configuration")
	}
	fs := s.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return library.New(library.Options{
		FS:      fs,
		Config:  s.Config,
		Root:    s.Root,
		Decider: decider,
	})
}

// Committer returns c, or opens the repository holding root
func (s Setup) Committer(c vcs.Committer, root string) (vcs.Committer, error) {
	if c != nil {
		return c, nil
	}
	repo, err := vcs.Open(root, vcs.Options{
		Remote:      s.Config.VCS.Remote,
		AuthorName:  s.Config.VCS.AuthorName,
		AuthorEmail: s.Config.VCS.AuthorEmail,
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Publish commits and optionally pushes. A repository that cannot be opened
// is reported in the publication rather than returned.
func (s Setup) Publish(ctx context.Context, c vcs.Committer, message string, push bool) *vcs.Publication {
	committer, err := s.Committer(c, s.root())
	if err != nil {
		logger := logging.GetLogger("commands")
		logger.Warn().Err(err).Msg("Version control unavailable")
		return vcs.Failed(message, err)
	}
	return vcs.Publish(ctx, committer, message, push)
}

func (s Setup) root() string {
	if s.Root != "" {
		return s.Root
	}
	return "."
}
