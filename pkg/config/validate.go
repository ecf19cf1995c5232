package config

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
)

var envVarName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks a configuration before anything touches the libraries
func Validate(cfg *Config) error {
	required := []struct {
		key, value string
	}{
		{"layout.symbol_dir", cfg.Layout.SymbolDir},
		{"layout.footprint_dir", cfg.Layout.FootprintDir},
		{"layout.models_dir", cfg.Layout.ModelsDir},
		{"project.symbol_table", cfg.Project.SymbolTable},
		{"project.footprint_table", cfg.Project.FootprintTable},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.key, "must not be empty")
		}
	}

	if !strings.HasPrefix(strings.TrimSpace(cfg.Symbols.Header), "(kicad_symbol_lib") {
		return invalid("symbols.header", "must open a (kicad_symbol_lib container")
	}
	if !envVarName.MatchString(cfg.Models.EnvVar) {
		return invalid("models.env_var", "is not a valid environment variable name")
	}
	if !envVarName.MatchString(cfg.Project.URIVariable) {
		return invalid("project.uri_variable", "is not a valid variable name")
	}
	if cfg.Project.TableVersion <= 0 {
		return invalid("project.table_version", "must be positive")
	}
	if _, err := resolve.ParsePolicy(cfg.Import.OnConflict); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid import.on_conflict").
			WithDetail("key", "import.on_conflict")
	}
	if len(cfg.Libraries) == 0 {
		return invalid("libraries", "at least one library is required")
	}
	if _, err := cfg.Catalog(); err != nil {
		return err
	}
	return nil
}

func invalid(key, msg string) error {
	return errors.Newf(errors.ErrConfigValid, "%s %s", key, msg).WithDetail("key", key)
}
