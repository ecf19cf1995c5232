// Package libtable merges library entries into KiCad project library tables
// (sym-lib-table and fp-lib-table).
//
// Tables are handled line by line. Existing lines are never reordered or
// rewritten; new entries are inserted as one block before the table close.
package libtable

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/paths"
)

// Kind is the table container keyword
type Kind string

const (
	SymbolTable    Kind = "sym_lib_table"
	FootprintTable Kind = "fp_lib_table"
)

// DefaultVersion is written into freshly created tables
const DefaultVersion = 7

// Entry is one (lib ...) line
type Entry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	URI         string `yaml:"uri"`
	Options     string `yaml:"options,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Line renders the entry in KiCad's single-line form
func (e Entry) Line() string {
	typ := e.Type
	if typ == "" {
		typ = "KiCad"
	}
	return fmt.Sprintf(`  (lib (name "%s")(type "%s")(uri "%s")(options "%s")(descr "%s"))`,
		escape(e.Name), escape(typ), escape(e.URI), escape(e.Options), escape(e.Description))
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

// RelativeURI builds "${variable}/<target relative to tableDir>" with
// forward slashes
func RelativeURI(tableDir, target, variable string) (string, error) {
	rel, err := paths.ToSlash(tableDir, target)
	if err != nil {
		return "", err
	}
	return "${" + variable + "}/" + rel, nil
}

var (
	// name="x" ... uri="y"
	assignName = regexp.MustCompile(`\bname="((?:[^"\\]|\\.)*)"`)
	assignURI  = regexp.MustCompile(`\buri="((?:[^"\\]|\\.)*)"`)
	// (name "x") ... (uri "y")
	formName = regexp.MustCompile(`\(name\s+"((?:[^"\\]|\\.)*)"\s*\)`)
	formURI  = regexp.MustCompile(`\(uri\s+"((?:[^"\\]|\\.)*)"\s*\)`)
)

// lineName returns the entry name of a line carrying both a name and a uri
// field, in either notation
func lineName(line string) (string, bool) {
	if m := formName.FindStringSubmatch(line); m != nil && formURI.MatchString(line) {
		return unescape(m[1]), true
	}
	if m := assignName.FindStringSubmatch(line); m != nil && assignURI.MatchString(line) {
		return unescape(m[1]), true
	}
	return "", false
}

func unescape(s string) string {
	return strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(s)
}

// Names lists the entry names of a table in document order
func Names(doc string) []string {
	var names []string
	for _, line := range strings.Split(doc, "\n") {
		if name, ok := lineName(line); ok {
			names = append(names, name)
		}
	}
	return names
}

// MergeResult describes a table merge
type MergeResult struct {
	Text string
	// Added lists the names inserted, in request order
	Added []string
	// Existing lists requested names already present
	Existing []string
	Changed  bool
}

// Options for Merge
type Options struct {
	// Version is written into fresh tables; zero means DefaultVersion
	Version int
}

// Merge inserts the entries whose names are not yet in doc. An empty doc
// yields a fresh table of the given kind.
func Merge(doc string, kind Kind, entries []Entry, opts Options) (MergeResult, error) {
	res := MergeResult{Text: doc}

	existing := make(map[string]struct{})
	for _, n := range Names(doc) {
		existing[n] = struct{}{}
	}

	var queued []Entry
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return MergeResult{Text: doc}, errors.New(errors.ErrInvalidInput, "library table entry has no name")
		}
		if _, ok := existing[e.Name]; ok {
			if !contains(res.Added, e.Name) && !contains(res.Existing, e.Name) {
				res.Existing = append(res.Existing, e.Name)
			}
			continue
		}
		existing[e.Name] = struct{}{}
		queued = append(queued, e)
		res.Added = append(res.Added, e.Name)
	}

	if strings.TrimSpace(doc) == "" {
		version := opts.Version
		if version <= 0 {
			version = DefaultVersion
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "(%s\n  (version %d)\n", kind, version)
		for _, e := range queued {
			sb.WriteString(e.Line())
			sb.WriteString("\n")
		}
		sb.WriteString(")\n")
		res.Text = sb.String()
		res.Changed = true
		return res, nil
	}

	if len(queued) == 0 {
		return res, nil
	}

	text, err := insert(doc, queued)
	if err != nil {
		return MergeResult{Text: doc}, err
	}
	res.Text = text
	res.Changed = true
	return res, nil
}

// insert places the entry lines before the last line holding a close that
// does not open a form. Failing that, the last non-empty line is split before
// its final close.
func insert(doc string, entries []Entry) (string, error) {
	lines := strings.Split(doc, "\n")
	block := make([]string, len(entries))
	for i, e := range entries {
		block[i] = e.Line()
	}

	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if strings.Contains(trimmed, ")") && !strings.HasPrefix(trimmed, "(") {
			out := make([]string, 0, len(lines)+len(block))
			out = append(out, lines[:i]...)
			out = append(out, block...)
			out = append(out, lines[i:]...)
			return strings.Join(out, "\n"), nil
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimRight(lines[i], " \t\r")
		if trimmed == "" {
			continue
		}
		if !strings.HasSuffix(trimmed, ")") {
			break
		}
		head := strings.TrimRight(trimmed[:len(trimmed)-1], " \t")
		out := make([]string, 0, len(lines)+len(block)+1)
		out = append(out, lines[:i]...)
		out = append(out, head)
		out = append(out, block...)
		out = append(out, ")")
		out = append(out, lines[i+1:]...)
		return strings.Join(out, "\n"), nil
	}

	return "", errors.New(errors.ErrMalformedDocument, "library table has no closing parenthesis")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
