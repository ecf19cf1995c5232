package config

import (
	"github.com/arthur-debert/kicadlib/pkg/catalog"
)

// Config is the effective kicadlib configuration
type Config struct {
	Layout    Layout    `koanf:"layout" toml:"layout"`
	Project   Project   `koanf:"project" toml:"project"`
	Symbols   Symbols   `koanf:"symbols" toml:"symbols"`
	Models    Models    `koanf:"models" toml:"models"`
	Import    Import    `koanf:"import" toml:"import"`
	VCS       VCS       `koanf:"vcs" toml:"vcs"`
	Libraries []Library `koanf:"libraries" toml:"libraries"`
}

// Layout holds directory names relative to the library root
type Layout struct {
	SymbolDir    string `koanf:"symbol_dir" toml:"symbol_dir"`
	FootprintDir string `koanf:"footprint_dir" toml:"footprint_dir"`
	ModelsDir    string `koanf:"models_dir" toml:"models_dir"`
}

// Project describes the KiCad project whose library tables get registered
type Project struct {
	// Dir is the project directory; empty means the parent of the root
	Dir            string `koanf:"dir" toml:"dir"`
	SymbolTable    string `koanf:"symbol_table" toml:"symbol_table"`
	FootprintTable string `koanf:"footprint_table" toml:"footprint_table"`
	URIVariable    string `koanf:"uri_variable" toml:"uri_variable"`
	TableVersion   int    `koanf:"table_version" toml:"table_version"`
}

// Symbols holds symbol library document settings
type Symbols struct {
	Header string `koanf:"header" toml:"header"`
}

// Models holds 3D model reference settings
type Models struct {
	EnvVar string `koanf:"env_var" toml:"env_var"`
}

// Import holds defaults for the import command
type Import struct {
	OnConflict string `koanf:"on_conflict" toml:"on_conflict"`
}

// VCS holds commit and push settings
type VCS struct {
	Remote      string `koanf:"remote" toml:"remote"`
	AuthorName  string `koanf:"author_name" toml:"author_name"`
	AuthorEmail string `koanf:"author_email" toml:"author_email"`
	// MessageFormat may contain {archive}, replaced by the archive file name
	MessageFormat string `koanf:"message_format" toml:"message_format"`
}

// Library is one catalog entry as configured
type Library struct {
	Key          string `koanf:"key" toml:"key"`
	SymbolFile   string `koanf:"symbol_file" toml:"symbol_file"`
	FootprintDir string `koanf:"footprint_dir" toml:"footprint_dir"`
	Description  string `koanf:"description" toml:"description"`
}

// Catalog builds the library catalog from the configured libraries
func (c *Config) Catalog() (*catalog.Catalog, error) {
	libs := make([]catalog.Library, len(c.Libraries))
	for i, l := range c.Libraries {
		libs[i] = catalog.Library{
			Key:          l.Key,
			SymbolFile:   l.SymbolFile,
			FootprintDir: l.FootprintDir,
			Description:  l.Description,
		}
	}
	return catalog.New(libs)
}
