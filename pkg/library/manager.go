package library

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/paths"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
)

// Options configures a Manager
type Options struct {
	FS     afero.Fs
	Config *config.Config
	// Root is the library root; empty resolves through paths.ResolveRoot
	Root string
	// Decider settles collisions; nil skips them
	Decider resolve.Decider
	Logger  *zerolog.Logger
}

// Manager operates on the libraries under one root
type Manager struct {
	fs      afero.Fs
	cfg     *config.Config
	cat     *catalog.Catalog
	paths   paths.Paths
	decider resolve.Decider
	log     zerolog.Logger
}

// New validates the configuration and builds a Manager
func New(opts Options) (*Manager, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "library manager needs a configuration")
	}
	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cat, err := opts.Config.Catalog()
	if err != nil {
		return nil, err
	}
	p, err := paths.New(opts.Root, opts.Config)
	if err != nil {
		return nil, err
	}

	log := logging.GetLogger("library")
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "library").Logger()
	}

	return &Manager{
		fs:      fs,
		cfg:     opts.Config,
		cat:     cat,
		paths:   p,
		decider: opts.Decider,
		log:     log,
	}, nil
}

// Catalog returns the library catalog
func (m *Manager) Catalog() *catalog.Catalog {
	return m.cat
}

// Paths returns the resolved layout
func (m *Manager) Paths() paths.Paths {
	return m.paths
}

// SetDecider replaces the collision decider
func (m *Manager) SetDecider(d resolve.Decider) {
	m.decider = d
}

// lookup validates keys up front so no file is touched for a doomed run
func (m *Manager) lookup(keys ...string) ([]catalog.Library, error) {
	libs := make([]catalog.Library, 0, len(keys))
	for _, key := range keys {
		lib, err := m.cat.Lookup(key)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// rel shows path relative to the root when possible
func (m *Manager) rel(path string) string {
	if r, err := paths.ToSlash(m.paths.Root(), path); err == nil && paths.ContainsPath(m.paths.Root(), path) {
		return r
	}
	return path
}
