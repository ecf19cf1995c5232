// Package classify sorts loose files from an archive by their role in a
// KiCad library.
package classify

import (
	"path/filepath"
	"strings"
)

// Role is what a file contributes to a library
type Role int

const (
	Unrecognized Role = iota
	Symbol
	Footprint
	ModelAsset
)

func (r Role) String() string {
	switch r {
	case Symbol:
		return "symbol"
	case Footprint:
		return "footprint"
	case ModelAsset:
		return "3D model"
	default:
		return "unrecognized"
	}
}

// MarshalYAML renders the role by name
func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

var modelExtensions = map[string]struct{}{
	".step": {},
	".stp":  {},
	".stl":  {},
	".3d":   {},
}

// RoleOf classifies a single path. Symbol wins over footprint, footprint over
// 3D model. Extensions are matched case-insensitively and any file whose name
// mentions "3d" is taken as a model asset.
func RoleOf(path string) Role {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)

	switch {
	case ext == ".kicad_sym":
		return Symbol
	case ext == ".kicad_mod":
		return Footprint
	}
	if _, ok := modelExtensions[ext]; ok {
		return ModelAsset
	}
	if strings.Contains(name, "3d") {
		return ModelAsset
	}
	return Unrecognized
}

// Result holds the classified paths, each list in input order
type Result struct {
	Symbols    []string `yaml:"symbols"`
	Footprints []string `yaml:"footprints"`
	Models     []string `yaml:"models"`
}

// Classify buckets paths by role and drops unrecognized files
func Classify(paths []string) Result {
	var r Result
	for _, p := range paths {
		switch RoleOf(p) {
		case Symbol:
			r.Symbols = append(r.Symbols, p)
		case Footprint:
			r.Footprints = append(r.Footprints, p)
		case ModelAsset:
			r.Models = append(r.Models, p)
		}
	}
	return r
}

// Empty reports whether no KiCad file was found
func (r Result) Empty() bool {
	return len(r.Symbols) == 0 && len(r.Footprints) == 0 && len(r.Models) == 0
}

// Counts returns the number of symbol, footprint and model files
func (r Result) Counts() (symbols, footprints, models int) {
	return len(r.Symbols), len(r.Footprints), len(r.Models)
}
