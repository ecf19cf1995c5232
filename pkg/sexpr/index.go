package sexpr

import (
	"regexp"
	"strings"
)

// Block is a balanced span of text opened by "(<keyword> <name>".
type Block struct {
	Keyword string
	Name    string
	// Start is the offset of the opening parenthesis, End is one past the
	// matching close.
	Start int
	End   int
	// NameStart and NameEnd delimit the raw name token, quotes included.
	NameStart int
	NameEnd   int
	// Depth is the number of parentheses enclosing the block.
	Depth    int
	SubBlock bool
}

// Text returns the block's span in doc
func (b Block) Text(doc string) string {
	return doc[b.Start:b.End]
}

var subBlockPattern = regexp.MustCompile(`^.+_\d+_\d+$`)

// IsSubBlockName reports whether name is a unit/style sub-block name such as
// "R_0402_0_1", which never takes part in collision checks.
func IsSubBlockName(name string) bool {
	return subBlockPattern.MatchString(name)
}

type frame struct {
	block int // index into the result slice, -1 for plain parentheses
}

// Index returns every terminated block opened by keyword, in document order.
// Parentheses inside quoted strings are ignored and backslash escapes are
// honoured. The scan is linear in len(text).
func Index(text, keyword string) []Block {
	var (
		blocks   []Block
		stack    []frame
		inString bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '(':
			f := frame{block: -1}
			if b, ok := openBlock(text, i, keyword); ok {
				b.Depth = len(stack)
				f.block = len(blocks)
				blocks = append(blocks, b)
			}
			stack = append(stack, f)
		case ')':
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.block >= 0 {
				blocks[f.block].End = i + 1
			}
		}
	}

	// Drop blocks that never closed
	out := blocks[:0]
	for _, b := range blocks {
		if b.End > 0 {
			out = append(out, b)
		}
	}
	return out
}

// openBlock checks whether the parenthesis at pos opens a keyword block and
// reads its name token without consuming anything.
func openBlock(text string, pos int, keyword string) (Block, bool) {
	i := pos + 1
	if !strings.HasPrefix(text[i:], keyword) {
		return Block{}, false
	}
	i += len(keyword)
	if i >= len(text) || !isSpace(text[i]) {
		return Block{}, false
	}
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		return Block{}, false
	}

	var (
		name      string
		nameStart = i
	)
	if text[i] == '"' {
		end, ok := scanString(text, i)
		if !ok {
			return Block{}, false
		}
		name = unquote(text[i:end])
		i = end
	} else {
		for i < len(text) && isAtom(text[i]) {
			i++
		}
		if i == nameStart {
			return Block{}, false
		}
		name = text[nameStart:i]
	}

	return Block{
		Keyword:   keyword,
		Name:      name,
		Start:     pos,
		End:       -1,
		NameStart: nameStart,
		NameEnd:   i,
		SubBlock:  IsSubBlockName(name),
	}, true
}

// scanString returns the offset one past the closing quote of the string
// starting at pos.
func scanString(text string, pos int) (int, bool) {
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i + 1, true
		}
	}
	return 0, false
}

// unquote strips the surrounding quotes and resolves the \" and \\ escapes.
// Any other backslash is literal, as in unescaped Windows paths.
func unquote(token string) string {
	inner := token[1 : len(token)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			i++
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAtom(c byte) bool {
	return !isSpace(c) && c != '(' && c != ')' && c != '"'
}

// Symbols indexes the symbol blocks of a library document
func Symbols(text string) []Block {
	return Index(text, "symbol")
}

// Named drops sub-blocks
func Named(blocks []Block) []Block {
	var out []Block
	for _, b := range blocks {
		if !b.SubBlock {
			out = append(out, b)
		}
	}
	return out
}

// Names returns the names of the non sub-blocks, first occurrence order
func Names(blocks []Block) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, b := range Named(blocks) {
		if _, ok := seen[b.Name]; ok {
			continue
		}
		seen[b.Name] = struct{}{}
		names = append(names, b.Name)
	}
	return names
}

// TopLevel keeps the blocks that are not nested inside another block of the
// slice. blocks must be in document order, as returned by Index.
func TopLevel(blocks []Block) []Block {
	var (
		out []Block
		end = -1
	)
	for _, b := range blocks {
		if b.Start < end {
			continue
		}
		out = append(out, b)
		end = b.End
	}
	return out
}
