package library

import (
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/symlib"
)

// Init creates the layout directories, an empty symbol library document for
// every catalog entry and every footprint directory. Existing files are left
// alone and reported as existing.
func (m *Manager) Init() (*InitReport, error) {
	done := logging.LogOperationStart(m.log, "init libraries")
	defer done()

	report := &InitReport{}

	for _, dir := range []string{m.paths.SymbolDir(), m.paths.FootprintDir(), m.paths.ModelsDir()} {
		if err := m.ensureDir(dir, report); err != nil {
			return report, err
		}
	}

	empty := symlib.EmptyLibrary(m.cfg.Symbols.Header)
	for _, lib := range m.cat.Libraries() {
		symPath := m.paths.SymbolLibrary(lib)
		if filesystem.Exists(m.fs, symPath) {
			report.Existing = append(report.Existing, m.rel(symPath))
		} else {
			if err := filesystem.WriteText(m.fs, symPath, empty); err != nil {
				return report, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", symPath).
					WithDetail("path", symPath)
			}
			m.log.Info().Str("library", lib.Key).Str("path", symPath).Msg("Created symbol library")
			report.Created = append(report.Created, m.rel(symPath))
		}

		if err := m.ensureDir(m.paths.FootprintLibrary(lib), report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (m *Manager) ensureDir(dir string, report *InitReport) error {
	if filesystem.IsDir(m.fs, dir) {
		report.Existing = append(report.Existing, m.rel(dir))
		return nil
	}
	if err := m.fs.MkdirAll(dir, filesystem.DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).WithDetail("path", dir)
	}
	m.log.Debug().Str("path", dir).Msg("Created directory")
	report.Created = append(report.Created, m.rel(dir))
	return nil
}
