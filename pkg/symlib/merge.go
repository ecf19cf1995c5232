package symlib

import (
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/sexpr"
)

// DefaultHeader opens a KiCad 6 symbol library container
const DefaultHeader = "(kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor)"

const containerKeyword = "kicad_symbol_lib"

// EmptyLibrary returns the canonical empty library document
func EmptyLibrary(header string) string {
	if header == "" {
		header = DefaultHeader
	}
	return header + "\n)\n"
}

// MergeOptions controls Merge
type MergeOptions struct {
	// Header opens freshly created documents
	Header string
	// Existing is applied to every colliding name
	Existing resolve.Decision
}

// MergeResult describes a merge. Text is the full new document.
type MergeResult struct {
	Text string
	// Added lists the named symbols written, in document order
	Added []string
	// Skipped lists colliding names left untouched
	Skipped []string
	// Replaced lists colliding names whose old definition was removed
	Replaced []string
	Changed  bool
}

// Merge adds the symbols of incoming to target. incoming is either a whole
// library document or bare symbol blocks. Collisions are settled by
// opts.Existing for the whole batch: Overwrite replaces every colliding
// definition, Skip leaves target untouched and adds nothing from incoming.
func Merge(target, incoming string, opts MergeOptions) (MergeResult, error) {
	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}
	unchanged := MergeResult{Text: target}

	blocks, err := incomingBlocks(incoming)
	if err != nil {
		return unchanged, err
	}
	if len(sexpr.Named(blocks)) == 0 {
		return unchanged, nil
	}

	fresh := isEmptyLibrary(target, header)
	var existing []string
	if !fresh {
		if _, err := sexpr.FindContainer(target); err != nil {
			return unchanged, errors.Wrap(err, errors.ErrMalformedDocument, "target library is malformed")
		}
		existing = Names(target)
	}

	collisions := resolve.Collisions(resolve.NameSet(existing), sexpr.Names(blocks))
	result := MergeResult{}
	doc := target

	if len(collisions) > 0 {
		colliding := resolve.NameSet(collisions)
		switch opts.Existing {
		case resolve.Overwrite:
			doc = excise(target, colliding)
			result.Replaced = collisions
		default:
			unchanged.Skipped = collisions
			return unchanged, nil
		}
	}

	result.Added = sexpr.Names(blocks)
	text := joinBlocks(incoming, blocks)

	if fresh {
		result.Text = header + "\n" + text + "\n)\n"
	} else {
		c, err := sexpr.FindContainer(doc)
		if err != nil {
			return unchanged, errors.Wrap(err, errors.ErrMalformedDocument, "target library is malformed")
		}
		prefix := doc[:c.Close]
		if !strings.HasSuffix(prefix, "\n") {
			prefix += "\n"
		}
		result.Text = prefix + text + "\n" + doc[c.Close:]
	}
	result.Changed = result.Text != target
	return result, nil
}

// incomingBlocks indexes the top-level symbols of incoming. A whole library
// document must be well formed; only blocks inside its container count.
func incomingBlocks(incoming string) ([]sexpr.Block, error) {
	trimmed := strings.TrimSpace(incoming)
	if !strings.HasPrefix(trimmed, "("+containerKeyword) {
		return sexpr.TopLevel(sexpr.Symbols(incoming)), nil
	}
	c, err := sexpr.FindContainer(incoming)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedDocument, "incoming library is malformed")
	}
	var out []sexpr.Block
	for _, b := range sexpr.TopLevel(sexpr.Symbols(incoming)) {
		if b.Start > c.Open && b.End <= c.Close {
			out = append(out, b)
		}
	}
	return out, nil
}

// joinBlocks renders blocks one per line with their original indentation.
// Contiguous runs keep whatever separated them in incoming.
func joinBlocks(incoming string, blocks []sexpr.Block) string {
	var sb strings.Builder
	for i, b := range blocks {
		start := sexpr.IndentStart(incoming, b.Start)
		if i > 0 {
			prev := blocks[i-1]
			gap := incoming[prev.End:start]
			if strings.TrimSpace(gap) == "" && strings.Contains(gap, "\n") {
				sb.WriteString(gap)
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(incoming[start:b.End])
	}
	return sb.String()
}

// matches reports whether b is one of names or a flat sub-block of one
func matches(b sexpr.Block, names map[string]struct{}) bool {
	if _, ok := names[b.Name]; ok && !b.SubBlock {
		return true
	}
	if parent, ok := sexpr.SubBlockParent(b.Name); ok {
		_, hit := names[parent]
		return hit
	}
	return false
}

// excise removes the top-level blocks of doc named in names, together with
// their indentation and preceding line break
func excise(doc string, names map[string]struct{}) string {
	blocks := sexpr.TopLevel(sexpr.Symbols(doc))
	var sb strings.Builder
	last := 0
	for _, b := range blocks {
		if !matches(b, names) {
			continue
		}
		start := sexpr.LineStart(doc, b.Start)
		if start < last {
			start = last
		}
		sb.WriteString(doc[last:start])
		last = b.End
	}
	sb.WriteString(doc[last:])
	return sb.String()
}

func isEmptyLibrary(doc, header string) bool {
	trimmed := strings.TrimSpace(doc)
	return trimmed == "" || trimmed == strings.TrimSpace(EmptyLibrary(header))
}
