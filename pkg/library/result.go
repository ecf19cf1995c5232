package library

import (
	"github.com/arthur-debert/kicadlib/pkg/classify"
	"github.com/arthur-debert/kicadlib/pkg/symlib"
)

// Status is the outcome of one file operation
type Status int

const (
	Added Status = iota
	Overwritten
	Skipped
	Unchanged
	Failed
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Overwritten:
		return "overwritten"
	case Skipped:
		return "skipped"
	case Unchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// MarshalYAML renders the status by name
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// FileResult reports what happened to one source file
type FileResult struct {
	File    string        `yaml:"file"`
	Role    classify.Role `yaml:"role"`
	Status  Status        `yaml:"status"`
	Message string        `yaml:"message"`
	// Names are the symbols, footprint or model the file contributed
	Names   []string            `yaml:"names,omitempty"`
	Symbols []symlib.SymbolInfo `yaml:"symbols,omitempty"`
	Err     error               `yaml:"-"`
}

// Success reports whether the file was handled without error
func (r FileResult) Success() bool {
	return r.Status != Failed
}

// ImportReport collects the results of one Import
type ImportReport struct {
	Library string          `yaml:"library"`
	Found   classify.Result `yaml:"found"`
	Results []FileResult    `yaml:"results"`
}

// Count returns how many results have status s
func (r *ImportReport) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failed reports whether any file failed
func (r *ImportReport) Failed() bool {
	return r.Count(Failed) > 0
}

// Changed reports whether any library file was written
func (r *ImportReport) Changed() bool {
	return r.Count(Added)+r.Count(Overwritten) > 0
}

// InitReport lists what Init created and what was already there, as paths
// relative to the root
type InitReport struct {
	Created  []string `yaml:"created"`
	Existing []string `yaml:"existing"`
}
