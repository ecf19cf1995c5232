package library

import (
	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/libtable"
	"github.com/arthur-debert/kicadlib/pkg/symlib"
)

// LibraryStatus is what exists on disk for one catalog entry
type LibraryStatus struct {
	Library    catalog.Library `yaml:"library"`
	HasSymbols bool            `yaml:"has_symbols"`
	Symbols    int             `yaml:"symbols"`
	Footprints int             `yaml:"footprints"`
	Registered bool            `yaml:"registered"`
	// Problem is set when the symbol library cannot be read
	Problem string `yaml:"problem,omitempty"`
}

// Status inspects every catalog library in catalog order
func (m *Manager) Status() []LibraryStatus {
	symbolTable := m.tableNames(m.paths.SymbolTable())
	footprintTable := m.tableNames(m.paths.FootprintTable())

	out := make([]LibraryStatus, 0, m.cat.Len())
	for _, lib := range m.cat.Libraries() {
		st := LibraryStatus{Library: lib}

		symPath := m.paths.SymbolLibrary(lib)
		if filesystem.Exists(m.fs, symPath) {
			st.HasSymbols = true
			if text, err := filesystem.ReadText(m.fs, symPath); err != nil {
				st.Problem = err.Error()
			} else {
				st.Symbols = len(symlib.Names(text))
			}
		}
		if n, err := filesystem.CountFiles(m.fs, m.paths.FootprintLibrary(lib), ".kicad_mod"); err == nil {
			st.Footprints = n
		}

		_, inSym := symbolTable[lib.SymbolLibName()]
		_, inFp := footprintTable[lib.FootprintLibName()]
		st.Registered = inSym && inFp

		out = append(out, st)
	}
	return out
}

func (m *Manager) tableNames(path string) map[string]struct{} {
	set := make(map[string]struct{})
	text, err := filesystem.ReadText(m.fs, path)
	if err != nil {
		return set
	}
	for _, n := range libtable.Names(text) {
		set[n] = struct{}{}
	}
	return set
}
