package sexpr

import (
	"errors"
	"strings"
)

var (
	// ErrNoContainer means the text holds no parenthesised form at all
	ErrNoContainer = errors.New("no container form")
	// ErrUnbalanced means the outer form never closes or is followed by more forms
	ErrUnbalanced = errors.New("unbalanced parentheses")
)

// Container is the outermost form of a document, e.g. (kicad_symbol_lib ...).
type Container struct {
	Keyword string
	// Open is the offset of the opening parenthesis, Close the offset of the
	// matching closing one.
	Open  int
	Close int
}

// FindContainer locates the outer form of text
func FindContainer(text string) (Container, error) {
	open := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '(' {
			open = i
			break
		}
		if !isSpace(text[i]) {
			return Container{}, ErrNoContainer
		}
	}
	if open < 0 {
		return Container{}, ErrNoContainer
	}

	depth := 0
	inString := false
	closeAt := -1
scan:
	for i := open; i < len(text); i++ {
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
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeAt = i
				break scan
			}
		}
	}
	if closeAt < 0 {
		return Container{}, ErrUnbalanced
	}
	if strings.TrimSpace(text[closeAt+1:]) != "" {
		return Container{}, ErrUnbalanced
	}

	k := open + 1
	for k < closeAt && isAtom(text[k]) {
		k++
	}
	return Container{Keyword: text[open+1 : k], Open: open, Close: closeAt}, nil
}
