package relink

import (
	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/logging"
)

// RelinkOptions holds options for the relink command
type RelinkOptions struct {
	internal.Setup

	// Libraries are catalog keys; empty means every library
	Libraries []string
}

// RelinkModels points the 3D model references of footprints already in the
// libraries at the shared models directory
func RelinkModels(opts RelinkOptions) ([]library.FileResult, error) {
	m, err := opts.Manager(nil)
	if err != nil {
		return nil, err
	}

	keys := opts.Libraries
	if len(keys) == 0 {
		keys = m.Catalog().Keys()
	}
	results, err := m.RelinkModels(keys)
	if err != nil {
		return nil, err
	}

	changed := 0
	for _, r := range results {
		if r.Status == library.Overwritten {
			changed++
		}
	}
	logger := logging.GetLogger("commands.relink")
	logger.Info().
		Int("footprints", len(results)).
		Int("changed", changed).
		Msg("Relinked footprints")
	return results, nil
}
