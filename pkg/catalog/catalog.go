// Package catalog holds the fixed, ordered set of categorised libraries that
// components are sorted into.
package catalog

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/kicadlib/pkg/errors"
)

// Library describes one category: a symbol library document and a
// footprint directory sharing a key.
type Library struct {
	Key          string `yaml:"key"`
	SymbolFile   string `yaml:"symbol_file"`
	FootprintDir string `yaml:"footprint_dir"`
	Description  string `yaml:"description"`
}

// SymbolLibName is the registry name of the symbol library (file stem)
func (l Library) SymbolLibName() string {
	return stem(l.SymbolFile)
}

// FootprintLibName is the registry name of the footprint library (dir stem)
func (l Library) FootprintLibName() string {
	return stem(l.FootprintDir)
}

// Title is the display name: underscores become spaces, words title cased
func (l Library) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(l.Key, "_", " "))
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Catalog is an immutable ordered collection of libraries with unique keys.
type Catalog struct {
	libs  []Library
	index map[string]int
}

// New validates libs and builds a catalog preserving their order
func New(libs []Library) (*Catalog, error) {
	c := &Catalog{
		libs:  make([]Library, 0, len(libs)),
		index: make(map[string]int, len(libs)),
	}
	for i, lib := range libs {
		switch {
		case strings.TrimSpace(lib.Key) == "":
			return nil, errors.Newf(errors.ErrConfigValid, "library #%d has an empty key", i+1)
		case strings.TrimSpace(lib.SymbolFile) == "":
			return nil, errors.Newf(errors.ErrConfigValid, "library %q has no symbol file", lib.Key).
				WithDetail("library", lib.Key)
		case strings.TrimSpace(lib.FootprintDir) == "":
			return nil, errors.Newf(errors.ErrConfigValid, "library %q has no footprint directory", lib.Key).
				WithDetail("library", lib.Key)
		}
		if _, dup := c.index[lib.Key]; dup {
			return nil, errors.Newf(errors.ErrConfigValid, "duplicate library key %q", lib.Key).
				WithDetail("library", lib.Key)
		}
		c.index[lib.Key] = len(c.libs)
		c.libs = append(c.libs, lib)
	}
	return c, nil
}

// Len returns the number of libraries
func (c *Catalog) Len() int {
	return len(c.libs)
}

// Get returns the library for key
func (c *Catalog) Get(key string) (Library, bool) {
	i, ok := c.index[key]
	if !ok {
		return Library{}, false
	}
	return c.libs[i], true
}

// Lookup is Get returning an UNKNOWN_LIBRARY error for unknown keys
func (c *Catalog) Lookup(key string) (Library, error) {
	lib, ok := c.Get(key)
	if !ok {
		return Library{}, errors.Newf(errors.ErrUnknownLibrary, "unknown library %q", key).
			WithDetail("library", key).
			WithDetail("available", c.Keys())
	}
	return lib, nil
}

// Libraries returns a copy of the libraries in catalog order
func (c *Catalog) Libraries() []Library {
	out := make([]Library, len(c.libs))
	copy(out, c.libs)
	return out
}

// Keys returns the library keys in catalog order
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.libs))
	for i, lib := range c.libs {
		keys[i] = lib.Key
	}
	return keys
}
