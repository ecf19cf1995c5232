package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/kicadlib/pkg/errors"
)

// Marshal renders the configuration as TOML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return data, nil
}
