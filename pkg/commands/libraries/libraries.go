package libraries

import (
	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/library"
)

// ListOptions holds options for the libraries command
type ListOptions struct {
	internal.Setup
}

// ListLibraries reports every catalog library with what exists on disk
func ListLibraries(opts ListOptions) ([]library.LibraryStatus, error) {
	m, err := opts.Manager(nil)
	if err != nil {
		return nil, err
	}
	return m.Status(), nil
}
