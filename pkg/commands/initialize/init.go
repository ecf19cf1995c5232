package initialize

import (
	"context"

	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/vcs"
)

// InitMessage is the commit message of an initialisation
const InitMessage = "library initialization"

// InitOptions holds options for the init command
type InitOptions struct {
	internal.Setup

	Commit    bool
	Push      bool
	Committer vcs.Committer
}

// InitResult reports what init created and published
type InitResult struct {
	Report      *library.InitReport `yaml:"report"`
	Publication *vcs.Publication    `yaml:"publication,omitempty"`
}

// InitLibraries creates every missing library of the catalog
func InitLibraries(ctx context.Context, opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")

	m, err := opts.Manager(nil)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("root", m.Paths().Root()).Msg("Initializing libraries")

	report, err := m.Init()
	if err != nil {
		return &InitResult{Report: report}, err
	}
	result := &InitResult{Report: report}

	if opts.Commit && len(report.Created) > 0 {
		result.Publication = opts.Publish(ctx, opts.Committer, InitMessage, opts.Push)
	}
	return result, nil
}
