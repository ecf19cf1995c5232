package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot selects the library root when --root is not given
	EnvRoot = "KICADLIB_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Paths provides centralized path management for kicadlib
type Paths interface {
	Root() string
	UsedFallback() bool
	SymbolDir() string
	FootprintDir() string
	ModelsDir() string
	SymbolLibrary(lib catalog.Library) string
	FootprintLibrary(lib catalog.Library) string
	ModelPath(name string) string
	ProjectDir() string
	SymbolTable() string
	FootprintTable() string
}

type paths struct {
	root         string
	usedFallback bool
	layout       config.Layout
	project      config.Project
}

// ResolveRoot determines the library root using the following priority:
// 1. the explicit value (from --root)
// 2. KICADLIB_ROOT
// 3. the current working directory (fallback)
//
// The returned path is absolute; the bool reports the fallback.
func ResolveRoot(explicit string) (string, bool, error) {
	root := explicit
	fallback := false
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", false, errors.Wrap(err, errors.ErrFileRead, "failed to get current directory")
		}
		root = cwd
		fallback = true
	}

	abs, err := filepath.Abs(expandHome(root))
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", root)
	}
	return abs, fallback, nil
}

// New creates a Paths instance for root with the configured layout. An empty
// root is resolved with ResolveRoot.
func New(root string, cfg *config.Config) (Paths, error) {
	p := &paths{
		layout:  cfg.Layout,
		project: cfg.Project,
	}

	resolved, fallback, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	p.root = resolved
	p.usedFallback = fallback
	return p, nil
}

// Root returns the library root
func (p *paths) Root() string {
	return p.root
}

// UsedFallback reports whether the root fell back to the working directory
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) SymbolDir() string {
	return filepath.Join(p.root, p.layout.SymbolDir)
}

func (p *paths) FootprintDir() string {
	return filepath.Join(p.root, p.layout.FootprintDir)
}

func (p *paths) ModelsDir() string {
	return filepath.Join(p.root, p.layout.ModelsDir)
}

// SymbolLibrary returns the symbol library document of lib
func (p *paths) SymbolLibrary(lib catalog.Library) string {
	return filepath.Join(p.SymbolDir(), lib.SymbolFile)
}

// FootprintLibrary returns the footprint directory of lib
func (p *paths) FootprintLibrary(lib catalog.Library) string {
	return filepath.Join(p.FootprintDir(), lib.FootprintDir)
}

// ModelPath returns where a 3D model named name is stored
func (p *paths) ModelPath(name string) string {
	return filepath.Join(p.ModelsDir(), filepath.Base(name))
}

// ProjectDir is the configured project directory, relative paths resolved
// against the root, or the parent of the root
func (p *paths) ProjectDir() string {
	dir := expandHome(p.project.Dir)
	switch {
	case dir == "":
		return filepath.Dir(p.root)
	case filepath.IsAbs(dir):
		return filepath.Clean(dir)
	default:
		return filepath.Join(p.root, dir)
	}
}

func (p *paths) SymbolTable() string {
	return filepath.Join(p.ProjectDir(), p.project.SymbolTable)
}

func (p *paths) FootprintTable() string {
	return filepath.Join(p.ProjectDir(), p.project.FootprintTable)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
