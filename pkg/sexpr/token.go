package sexpr

import "regexp"

var subBlockParent = regexp.MustCompile(`^(.+)_\d+_\d+$`)

// SubBlockParent returns the symbol a sub-block name belongs to, e.g.
// "R_0402" for "R_0402_0_1"
func SubBlockParent(name string) (string, bool) {
	m := subBlockParent.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TokenAt reads the token starting at or after pos, skipping whitespace. A
// quoted token is returned unquoted. end is the offset one past the raw token.
func TokenAt(text string, pos int) (token string, end int, ok bool) {
	i := pos
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		return "", 0, false
	}
	if text[i] == '"' {
		e, ok := scanString(text, i)
		if !ok {
			return "", 0, false
		}
		return unquote(text[i:e]), e, true
	}
	start := i
	for i < len(text) && isAtom(text[i]) {
		i++
	}
	if i == start {
		return "", 0, false
	}
	return text[start:i], i, true
}

// IndentStart returns the offset where the line holding pos begins when only
// spaces and tabs precede pos on that line, otherwise pos itself
func IndentStart(text string, pos int) int {
	i := pos
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t') {
		i--
	}
	if i == 0 || text[i-1] == '\n' {
		return i
	}
	return pos
}

// LineStart extends IndentStart over the preceding line break, so removing
// text[LineStart(pos):end] drops a block placed on its own line cleanly
func LineStart(text string, pos int) int {
	i := IndentStart(text, pos)
	if i == pos && i > 0 && text[i-1] != '\n' {
		return pos
	}
	if i > 0 && text[i-1] == '\n' {
		i--
		if i > 0 && text[i-1] == '\r' {
			i--
		}
	}
	return i
}
