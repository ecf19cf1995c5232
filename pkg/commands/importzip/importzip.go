package importzip

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/archive"
	"github.com/arthur-debert/kicadlib/pkg/classify"
	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/prompt"
	"github.com/arthur-debert/kicadlib/pkg/vcs"
)

// ArchiveAction is what happens to the archive after a successful import
type ArchiveAction int

const (
	AskArchive ArchiveAction = iota
	KeepArchive
	DeleteArchive
)

// ImportOptions holds options for the import command
type ImportOptions struct {
	internal.Setup

	Archive string
	// Library is the target catalog key; empty asks the provider
	Library string
	// Provider answers collisions, library selection and confirmations
	Provider prompt.Provider

	AddToProject bool
	Commit       bool
	Push         bool
	// Committer overrides the repository found above the root
	Committer vcs.Committer

	ArchiveAction ArchiveAction
}

// ImportResult is everything an import did
type ImportResult struct {
	Archive string          `yaml:"archive"`
	Found   classify.Result `yaml:"found"`
	// Cancelled is set when no library was chosen; nothing was written
	Cancelled      bool                    `yaml:"cancelled,omitempty"`
	Report         *library.ImportReport   `yaml:"report,omitempty"`
	Register       *library.RegisterReport `yaml:"register,omitempty"`
	Publication    *vcs.Publication        `yaml:"publication,omitempty"`
	ArchiveDeleted bool                    `yaml:"archive_deleted"`
}

// ImportArchive extracts a component archive, merges its symbols, footprints
// and 3D models into one library and optionally registers, commits and
// removes the archive. The scratch directory is removed on every path.
func ImportArchive(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	logger := logging.GetLogger("commands.import")

	provider := opts.Provider
	if provider == nil {
		provider = &prompt.NonInteractive{}
	}
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}

	m, err := opts.Manager(provider)
	if err != nil {
		return nil, err
	}
	// An unknown library fails before the archive is even opened
	if opts.Library != "" {
		if _, err := m.Catalog().Lookup(opts.Library); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Archive: opts.Archive}
	err = archive.With(opts.FS, opts.Archive, func(ext *archive.Extraction) error {
		result.Found = classify.Classify(ext.Files)
		symbols, footprints, models := result.Found.Counts()
		logger.Info().
			Str("archive", opts.Archive).
			Int("symbols", symbols).
			Int("footprints", footprints).
			Int("models", models).
			Msg("Archive extracted")

		if result.Found.Empty() {
			return errors.Newf(errors.ErrArchiveEmpty, "no KiCad files found in %s", filepath.Base(opts.Archive)).
				WithDetail("archive", opts.Archive)
		}

		key := opts.Library
		if key == "" {
			selected, ok, err := provider.SelectLibrary(ctx, m.Catalog())
			if err != nil {
				return err
			}
			if !ok {
				logger.Info().Msg("No library selected, nothing imported")
				result.Cancelled = true
				return nil
			}
			key = selected
		}

		report, err := m.Import(ctx, ext.Files, key)
		if err != nil {
			return err
		}
		result.Report = report

		if opts.AddToProject {
			reg, err := m.Register(ctx, []string{key})
			if err != nil {
				return err
			}
			result.Register = reg
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	if result.Cancelled {
		return result, nil
	}

	if opts.Commit {
		if result.Report.Changed() {
			message := vcs.Message(opts.Config.VCS.MessageFormat, filepath.Base(opts.Archive))
			result.Publication = opts.Publish(ctx, opts.Committer, message, opts.Push)
		} else {
			logger.Info().Msg("Libraries unchanged, nothing to commit")
		}
	}

	result.ArchiveDeleted = removeArchive(ctx, opts, provider)
	return result, nil
}

func removeArchive(ctx context.Context, opts ImportOptions, confirmer prompt.Confirmer) bool {
	logger := logging.GetLogger("commands.import")

	switch opts.ArchiveAction {
	case KeepArchive:
		return false
	case AskArchive:
		if !confirmer.Confirm(ctx, "Delete "+filepath.Base(opts.Archive)+"?", false) {
			return false
		}
	}

	if err := opts.FS.Remove(opts.Archive); err != nil {
		logger.Warn().Err(err).Str("archive", opts.Archive).Msg("Archive not deleted")
		return false
	}
	logger.Info().Str("archive", opts.Archive).Msg("Archive deleted")
	return true
}
