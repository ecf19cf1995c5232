package genconfig

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/commands/internal"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/logging"
)

// GenConfigOptions holds options for the config command
type GenConfigOptions struct {
	internal.Setup

	// Write saves the configuration as kicadlib.toml under the root
	Write bool
}

// GenConfigResult holds the rendered configuration
type GenConfigResult struct {
	ConfigContent string   `yaml:"config"`
	FilesWritten  []string `yaml:"files_written"`
}

// GenConfig renders the effective configuration as TOML and optionally writes
// it to the root. An existing file is never replaced.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "config command needs a configuration")
	}
	data, err := config.Marshal(opts.Config)
	if err != nil {
		return nil, err
	}
	result := &GenConfigResult{ConfigContent: string(data), FilesWritten: []string{}}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	target := filepath.Join(opts.Root, config.FileName)
	if filesystem.Exists(fs, target) {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := filesystem.WriteFile(fs, target, data); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}
	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
