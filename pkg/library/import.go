package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/classify"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/footprint"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/symlib"
)

// Import adds classified files to the library named key. Symbols are merged
// first, then footprints, then 3D models. Per-file failures are recorded in
// the report and do not stop the batch.
func (m *Manager) Import(ctx context.Context, files []string, key string) (*ImportReport, error) {
	libs, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	lib := libs[0]

	done := logging.LogOperationStart(m.log, "import")
	defer done()

	found := classify.Classify(files)
	report := &ImportReport{Library: lib.Key, Found: found}
	if found.Empty() {
		m.log.Warn().Int("files", len(files)).Msg("No KiCad files to import")
		return report, nil
	}

	for _, src := range found.Symbols {
		report.Results = append(report.Results, m.addSymbolFile(ctx, src, lib))
	}
	for _, src := range found.Footprints {
		report.Results = append(report.Results, m.addFootprintFile(ctx, src, lib))
	}
	for _, src := range found.Models {
		report.Results = append(report.Results, m.AddModelFile(ctx, src))
	}

	m.log.Info().
		Str("library", lib.Key).
		Int("added", report.Count(Added)).
		Int("overwritten", report.Count(Overwritten)).
		Int("skipped", report.Count(Skipped)).
		Int("failed", report.Count(Failed)).
		Msg("Import finished")
	return report, nil
}

// AddSymbolFile merges the symbols of src into the symbol library of key
func (m *Manager) AddSymbolFile(ctx context.Context, src, key string) FileResult {
	lib, err := m.cat.Lookup(key)
	if err != nil {
		return failed(src, classify.Symbol, err)
	}
	return m.addSymbolFile(ctx, src, lib)
}

func (m *Manager) addSymbolFile(ctx context.Context, src string, lib catalog.Library) FileResult {
	log := m.log.With().Str("file", src).Str("library", lib.Key).Logger()
	res := FileResult{File: src, Role: classify.Symbol}

	incoming, err := filesystem.ReadText(m.fs, src)
	if err != nil {
		return failed(src, classify.Symbol, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", src).
			WithDetail("path", src))
	}

	target := m.paths.SymbolLibrary(lib)
	existing := ""
	if filesystem.Exists(m.fs, target) {
		existing, err = filesystem.ReadText(m.fs, target)
		if err != nil {
			return failed(src, classify.Symbol, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", target).
				WithDetail("path", target))
		}
	}

	opts := symlib.MergeOptions{Header: m.cfg.Symbols.Header, Existing: resolve.Skip}
	// A skip merge validates both documents before anyone is asked. With
	// collisions it writes nothing, so the file is applied whole or not at all.
	merged, err := symlib.Merge(existing, incoming, opts)
	if err != nil {
		return failed(src, classify.Symbol, err)
	}

	var decided resolve.Resolution
	if len(merged.Skipped) > 0 {
		decided = resolve.Resolve(ctx, m.decider, resolve.Conflict{
			Library: lib.Key,
			File:    target,
			Kind:    resolve.KindSymbol,
			Names:   merged.Skipped,
		})
		if decided.Action == resolve.ActionOverwrite {
			opts.Existing = resolve.Overwrite
			if merged, err = symlib.Merge(existing, incoming, opts); err != nil {
				return failed(src, classify.Symbol, err)
			}
		}
	}

	if merged.Changed {
		if err := filesystem.WriteText(m.fs, target, merged.Text); err != nil {
			return failed(src, classify.Symbol, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target).
				WithDetail("path", target))
		}
	}

	res.Names = merged.Added
	res.Symbols = infoFor(incoming, merged.Added)
	switch {
	case len(merged.Replaced) > 0:
		res.Status = Overwritten
		res.Message = fmt.Sprintf("replaced %s in %s", strings.Join(merged.Replaced, ", "), lib.SymbolFile)
	case len(merged.Added) > 0:
		res.Status = Added
		res.Message = fmt.Sprintf("added %s to %s", strings.Join(merged.Added, ", "), lib.SymbolFile)
	case len(merged.Skipped) > 0:
		res.Status = Skipped
		res.Message = fmt.Sprintf("kept existing %s in %s, nothing added from this file",
			strings.Join(merged.Skipped, ", "), lib.SymbolFile)
	default:
		res.Status = Unchanged
		res.Message = "no symbols to add"
	}
	if decided.Err != nil {
		res.Message += " (prompt cancelled)"
	}

	log.Info().Str("status", res.Status.String()).Strs("names", res.Names).Msg("Symbol file merged")
	return res
}

// infoFor keeps the summaries of the named symbols, in document order
func infoFor(text string, names []string) []symlib.SymbolInfo {
	wanted := resolve.NameSet(names)
	var out []symlib.SymbolInfo
	for _, info := range symlib.Info(text) {
		if _, ok := wanted[info.Name]; ok {
			out = append(out, info)
		}
	}
	return out
}

// AddFootprintFile copies src into the footprint directory of key with its 3D
// model references rewritten
func (m *Manager) AddFootprintFile(ctx context.Context, src, key string) FileResult {
	lib, err := m.cat.Lookup(key)
	if err != nil {
		return failed(src, classify.Footprint, err)
	}
	return m.addFootprintFile(ctx, src, lib)
}

func (m *Manager) addFootprintFile(ctx context.Context, src string, lib catalog.Library) FileResult {
	name := filepath.Base(src)
	res := FileResult{File: src, Role: classify.Footprint, Names: []string{name}}

	text, err := filesystem.ReadText(m.fs, src)
	if err != nil {
		return failed(src, classify.Footprint, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", src).
			WithDetail("path", src))
	}
	rewritten := footprint.Rewrite(text, m.cfg.Models.EnvVar)
	dest := filepath.Join(m.paths.FootprintLibrary(lib), name)

	status := Added
	if filesystem.Exists(m.fs, dest) {
		current, err := filesystem.ReadText(m.fs, dest)
		if err != nil {
			return failed(src, classify.Footprint, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", dest).
				WithDetail("path", dest))
		}
		if current == rewritten.Text {
			res.Status = Unchanged
			res.Message = fmt.Sprintf("%s already in %s", name, lib.FootprintDir)
			return res
		}
		decided := resolve.Resolve(ctx, m.decider, resolve.Conflict{
			Library: lib.Key,
			File:    dest,
			Kind:    resolve.KindFootprint,
			Names:   []string{name},
		})
		if decided.Action != resolve.ActionOverwrite {
			res.Status = Skipped
			res.Message = fmt.Sprintf("kept existing %s in %s", name, lib.FootprintDir)
			return res
		}
		status = Overwritten
	}

	if err := filesystem.WriteText(m.fs, dest, rewritten.Text); err != nil {
		return failed(src, classify.Footprint, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).
			WithDetail("path", dest))
	}

	res.Status = status
	res.Message = fmt.Sprintf("%s %s in %s", status, name, lib.FootprintDir)
	if n := changedReferences(rewritten); n > 0 {
		res.Message += fmt.Sprintf(", %d model path(s) rewritten", n)
	}
	m.log.Info().Str("file", src).Str("dest", dest).Str("status", status.String()).
		Str("models", rewritten.Outcome.String()).Msg("Footprint copied")
	return res
}

func changedReferences(r footprint.Result) int {
	n := 0
	for _, ref := range r.References {
		if ref.Changed() {
			n++
		}
	}
	return n
}

// AddModelFile copies a 3D model into the shared models directory
func (m *Manager) AddModelFile(ctx context.Context, src string) FileResult {
	name := filepath.Base(src)
	res := FileResult{File: src, Role: classify.ModelAsset, Names: []string{name}}
	dest := m.paths.ModelPath(name)

	if !filesystem.Exists(m.fs, src) {
		return failed(src, classify.ModelAsset, errors.Newf(errors.ErrFileRead, "model %s not found", src).
			WithDetail("path", src))
	}

	status := Added
	if filesystem.Exists(m.fs, dest) {
		if filesystem.SameContent(m.fs, src, dest) {
			res.Status = Unchanged
			res.Message = fmt.Sprintf("%s already in %s", name, m.cfg.Layout.ModelsDir)
			return res
		}
		decided := resolve.Resolve(ctx, m.decider, resolve.Conflict{
			Library: m.cfg.Layout.ModelsDir,
			File:    dest,
			Kind:    resolve.KindModel,
			Names:   []string{name},
		})
		if decided.Action != resolve.ActionOverwrite {
			res.Status = Skipped
			res.Message = fmt.Sprintf("kept existing %s in %s", name, m.cfg.Layout.ModelsDir)
			return res
		}
		status = Overwritten
	}

	if err := filesystem.CopyFile(m.fs, src, dest); err != nil {
		return failed(src, classify.ModelAsset, errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s to %s", src, dest).
			WithDetail("path", dest))
	}
	res.Status = status
	res.Message = fmt.Sprintf("%s %s in %s", status, name, m.cfg.Layout.ModelsDir)
	m.log.Info().Str("file", src).Str("dest", dest).Str("status", status.String()).Msg("3D model copied")
	return res
}

// RelinkModels rewrites the 3D model references of every footprint already in
// the given libraries
func (m *Manager) RelinkModels(keys []string) ([]FileResult, error) {
	libs, err := m.lookup(keys...)
	if err != nil {
		return nil, err
	}

	var results []FileResult
	for _, lib := range libs {
		dir := m.paths.FootprintLibrary(lib)
		if !filesystem.IsDir(m.fs, dir) {
			continue
		}
		files, err := m.footprintFiles(dir)
		if err != nil {
			results = append(results, failed(dir, classify.Footprint, err))
			continue
		}
		for _, path := range files {
			results = append(results, m.relink(path))
		}
	}
	return results, nil
}

// footprintFiles lists the footprints of dir in name order
func (m *Manager) footprintFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir).WithDetail("path", dir)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && classify.RoleOf(entry.Name()) == classify.Footprint {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (m *Manager) relink(path string) FileResult {
	out, err := footprint.RewriteFile(m.fs, path, m.cfg.Models.EnvVar)
	if err != nil {
		return failed(path, classify.Footprint, err)
	}
	res := FileResult{File: path, Role: classify.Footprint, Names: []string{filepath.Base(path)}}
	if out.Outcome == footprint.Changed {
		res.Status = Overwritten
		res.Message = fmt.Sprintf("%d model path(s) rewritten", changedReferences(out))
	} else {
		res.Status = Unchanged
		res.Message = "model paths already canonical"
	}
	return res
}

func failed(file string, role classify.Role, err error) FileResult {
	return FileResult{
		File:    file,
		Role:    role,
		Status:  Failed,
		Message: err.Error(),
		Err:     err,
	}
}
