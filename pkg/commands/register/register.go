package register

import (
	"context"

	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/prompt"
)

// RegisterOptions holds options for the register command
type RegisterOptions struct {
	internal.Setup

	// Libraries are catalog keys; empty asks Selector unless All is set
	Libraries []string
	All       bool
	Selector  prompt.LibrarySelector
}

// RegisterResult reports the libraries chosen and the table merges
type RegisterResult struct {
	Libraries []string                `yaml:"libraries"`
	Report    *library.RegisterReport `yaml:"report,omitempty"`
}

// RegisterLibraries adds libraries to the project symbol and footprint
// tables. Nothing selected is not an error and writes nothing.
func RegisterLibraries(ctx context.Context, opts RegisterOptions) (*RegisterResult, error) {
	logger := logging.GetLogger("commands.register")

	m, err := opts.Manager(nil)
	if err != nil {
		return nil, err
	}

	keys := opts.Libraries
	switch {
	case opts.All:
		keys = m.Catalog().Keys()
	case len(keys) == 0 && opts.Selector != nil:
		keys, err = opts.Selector.SelectLibraries(ctx, m.Catalog())
		if err != nil {
			return nil, err
		}
	}

	result := &RegisterResult{Libraries: keys}
	if len(keys) == 0 {
		logger.Info().Msg("No libraries selected")
		return result, nil
	}

	report, err := m.Register(ctx, keys)
	if err != nil {
		return nil, err
	}
	result.Report = report
	return result, nil
}
