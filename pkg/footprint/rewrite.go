// Package footprint rewrites the 3D model references embedded in KiCad
// footprint files (.kicad_mod) so they point at the shared models directory.
package footprint

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/sexpr"
)

// DefaultEnvVar is the variable KiCad resolves to the 3D model directory
const DefaultEnvVar = "KICAD_3DMODEL_DIR"

// Outcome is the typed result of a rewrite
type Outcome int

const (
	// Unchanged means no reference needed rewriting; nothing is written
	Unchanged Outcome = iota
	Changed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Changed:
		return "changed"
	case Failed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Reference is one (model ...) path in a footprint, in document order
type Reference struct {
	Original  string `yaml:"original"`
	Rewritten string `yaml:"rewritten"`
}

// Changed reports whether this reference was rewritten
func (r Reference) Changed() bool {
	return r.Original != r.Rewritten
}

// Result of Rewrite. Text is the input when nothing changed.
type Result struct {
	Text       string
	Outcome    Outcome
	References []Reference
}

// Canonical returns the path a model file named like path is referenced by
func Canonical(path, envVar string) string {
	if envVar == "" {
		envVar = DefaultEnvVar
	}
	return "${" + envVar + "}/" + Basename(path)
}

// Basename strips every directory component, whether separated by / or \
func Basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Rewrite points every (model <path> ...) reference at ${envVar}/<basename>.
// Only the path token changes; all other bytes are kept.
func Rewrite(text, envVar string) Result {
	blocks := sexpr.Index(text, "model")
	if len(blocks) == 0 {
		return Result{Text: text, Outcome: Unchanged}
	}

	var (
		sb   strings.Builder
		last int
		res  = Result{Outcome: Unchanged}
	)
	for _, b := range blocks {
		ref := Reference{Original: b.Name, Rewritten: b.Name}
		if Basename(b.Name) == "" {
			// Nothing to point at; the token stays as written
			res.References = append(res.References, ref)
			continue
		}
		ref.Rewritten = Canonical(b.Name, envVar)
		res.References = append(res.References, ref)

		token := quote(ref.Rewritten)
		if text[b.NameStart:b.NameEnd] == token {
			continue
		}
		sb.WriteString(text[last:b.NameStart])
		sb.WriteString(token)
		last = b.NameEnd
		res.Outcome = Changed
	}

	if res.Outcome == Unchanged {
		res.Text = text
		return res
	}
	sb.WriteString(text[last:])
	res.Text = sb.String()
	return res
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// RewriteFile rewrites the footprint at path in place, writing only when a
// reference changed
func RewriteFile(fsys afero.Fs, path, envVar string) (Result, error) {
	text, err := filesystem.ReadText(fsys, path)
	if err != nil {
		return Result{Outcome: Failed}, errors.Wrapf(err, errors.ErrFileRead, "failed to read footprint %s", path).
			WithDetail("path", path)
	}

	res := Rewrite(text, envVar)
	if res.Outcome != Changed {
		return res, nil
	}
	if err := filesystem.WriteText(fsys, path, res.Text); err != nil {
		res.Outcome = Failed
		return res, errors.Wrapf(err, errors.ErrFileWrite, "failed to write footprint %s", path).
			WithDetail("path", path)
	}
	return res, nil
}
