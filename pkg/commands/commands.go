// Package commands provides the command implementations behind the CLI.
//
// Each command is implemented in its own subdirectory:
//   - importzip/  - ImportArchive command
//   - initialize/ - InitLibraries command
//   - register/   - RegisterLibraries command
//   - libraries/  - ListLibraries command
//   - relink/     - RelinkModels command
//   - genconfig/  - GenConfig command
//   - internal/   - Shared setup: library manager and repository
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/kicadlib/pkg/commands/genconfig"
	"github.com/arthur-debert/kicadlib/pkg/commands/importzip"
	"github.com/arthur-debert/kicadlib/pkg/commands/initialize"
	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/commands/libraries"
	"github.com/arthur-debert/kicadlib/pkg/commands/register"
	"github.com/arthur-debert/kicadlib/pkg/commands/relink"
	"github.com/arthur-debert/kicadlib/pkg/library"
)

// Setup is the environment shared by every command
type Setup = internal.Setup

// ImportArchive merges a component archive into one library.
type ImportOptions = importzip.ImportOptions
type ImportResult = importzip.ImportResult

const (
	AskArchive    = importzip.AskArchive
	KeepArchive   = importzip.KeepArchive
	DeleteArchive = importzip.DeleteArchive
)

func ImportArchive(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	return importzip.ImportArchive(ctx, opts)
}

// InitLibraries creates the empty libraries of the catalog.
type InitOptions = initialize.InitOptions
type InitResult = initialize.InitResult

func InitLibraries(ctx context.Context, opts InitOptions) (*InitResult, error) {
	return initialize.InitLibraries(ctx, opts)
}

// RegisterLibraries adds libraries to the project tables.
type RegisterOptions = register.RegisterOptions
type RegisterResult = register.RegisterResult

func RegisterLibraries(ctx context.Context, opts RegisterOptions) (*RegisterResult, error) {
	return register.RegisterLibraries(ctx, opts)
}

// ListLibraries reports the catalog with on-disk status.
type ListOptions = libraries.ListOptions

func ListLibraries(opts ListOptions) ([]library.LibraryStatus, error) {
	return libraries.ListLibraries(opts)
}

// RelinkModels rewrites model references of stored footprints.
type RelinkOptions = relink.RelinkOptions

func RelinkModels(opts RelinkOptions) ([]library.FileResult, error) {
	return relink.RelinkModels(opts)
}

// GenConfig renders the effective configuration.
type GenConfigOptions = genconfig.GenConfigOptions
type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
