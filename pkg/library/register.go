package library

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/libtable"
)

// TableResult reports the merge of one project library table
type TableResult struct {
	Path     string        `yaml:"path"`
	Kind     libtable.Kind `yaml:"kind"`
	Added    []string      `yaml:"added"`
	Existing []string      `yaml:"existing"`
	Changed  bool          `yaml:"changed"`
	Err      error         `yaml:"-"`
	Error    string        `yaml:"error,omitempty"`
}

func (r *TableResult) fail(err error) {
	r.Err = err
	r.Error = err.Error()
}

// RegisterReport covers both project tables
type RegisterReport struct {
	Tables []TableResult `yaml:"tables"`
}

// Added counts the entries inserted across both tables
func (r *RegisterReport) Added() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Added)
	}
	return n
}

// Failed reports whether any table could not be updated
func (r *RegisterReport) Failed() bool {
	for _, t := range r.Tables {
		if t.Err != nil {
			return true
		}
	}
	return false
}

// Register adds the libraries named by keys to the project symbol and
// footprint tables. Names already present are left alone and a table is only
// written when it gains entries.
func (m *Manager) Register(ctx context.Context, keys []string) (*RegisterReport, error) {
	libs, err := m.lookup(keys...)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrPromptCancelled, "registration cancelled")
	}

	report := &RegisterReport{}
	symbols, err := m.entries(libs, m.paths.SymbolTable(), func(lib catalog.Library) (string, string) {
		return lib.SymbolLibName(), m.paths.SymbolLibrary(lib)
	})
	if err != nil {
		return nil, err
	}
	footprints, err := m.entries(libs, m.paths.FootprintTable(), func(lib catalog.Library) (string, string) {
		return lib.FootprintLibName(), m.paths.FootprintLibrary(lib)
	})
	if err != nil {
		return nil, err
	}

	report.Tables = append(report.Tables,
		m.mergeTable(m.paths.SymbolTable(), libtable.SymbolTable, symbols),
		m.mergeTable(m.paths.FootprintTable(), libtable.FootprintTable, footprints),
	)
	return report, nil
}

func (m *Manager) entries(libs []catalog.Library, table string, target func(catalog.Library) (string, string)) ([]libtable.Entry, error) {
	dir := filepath.Dir(table)
	out := make([]libtable.Entry, 0, len(libs))
	for _, lib := range libs {
		name, path := target(lib)
		uri, err := libtable.RelativeURI(dir, path, m.cfg.Project.URIVariable)
		if err != nil {
			return nil, err
		}
		out = append(out, libtable.Entry{
			Name:        name,
			URI:         uri,
			Description: lib.Description,
		})
	}
	return out, nil
}

func (m *Manager) mergeTable(path string, kind libtable.Kind, entries []libtable.Entry) TableResult {
	log := m.log.With().Str("table", path).Logger()
	res := TableResult{Path: path, Kind: kind}

	doc := ""
	if filesystem.Exists(m.fs, path) {
		text, err := filesystem.ReadText(m.fs, path)
		if err != nil {
			res.fail(errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path))
			log.Error().Err(res.Err).Msg("Cannot read library table")
			return res
		}
		doc = text
	}

	merged, err := libtable.Merge(doc, kind, entries, libtable.Options{Version: m.cfg.Project.TableVersion})
	if err != nil {
		res.fail(err)
		log.Error().Err(err).Msg("Cannot merge library table")
		return res
	}
	res.Added = merged.Added
	res.Existing = merged.Existing

	if merged.Changed {
		if err := filesystem.WriteText(m.fs, path, merged.Text); err != nil {
			res.fail(errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path))
			log.Error().Err(res.Err).Msg("Cannot write library table")
			return res
		}
		res.Changed = true
	}
	log.Info().Strs("added", res.Added).Strs("existing", res.Existing).Msg("Library table merged")
	return res
}
