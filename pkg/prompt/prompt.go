// Package prompt provides the interactive and scripted answers kicadlib
// needs: collision decisions, library selection and yes/no confirmations.
//
// Every interrupted or failed prompt resolves to the safe default: skip,
// no selection, or "no".
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
)

// LibrarySelector picks target libraries from the catalog
type LibrarySelector interface {
	// SelectLibrary returns the chosen key; ok is false when the user backed out
	SelectLibrary(ctx context.Context, cat *catalog.Catalog) (key string, ok bool, err error)
	// SelectLibraries returns the chosen keys in catalog order
	SelectLibraries(ctx context.Context, cat *catalog.Catalog) ([]string, error)
}

// Confirmer asks yes/no questions
type Confirmer interface {
	Confirm(ctx context.Context, question string, def bool) bool
}

// Provider is everything the commands ask for
type Provider interface {
	resolve.Decider
	LibrarySelector
	Confirmer
}

type withDecider struct {
	resolve.Decider
	LibrarySelector
	Confirmer
}

// WithDecider keeps the selection and confirmation prompts of p but settles
// collisions through d, typically a policy built by resolve.Policy.Decider
func WithDecider(p Provider, d resolve.Decider) Provider {
	return withDecider{Decider: d, LibrarySelector: p, Confirmer: p}
}

// Option renders one numbered menu line for lib, e.g.
// " 2. Passives: Resistors, capacitors, inductors, ferrite beads"
func Option(i int, lib catalog.Library) string {
	return fmt.Sprintf("%2d. %s: %s", i+1, lib.Title(), lib.Description)
}

// Options renders the whole catalog as menu lines
func Options(cat *catalog.Catalog) []string {
	libs := cat.Libraries()
	out := make([]string, len(libs))
	for i, lib := range libs {
		out[i] = Option(i, lib)
	}
	return out
}

// KeyForOption maps a menu line back to its library key
func KeyForOption(cat *catalog.Catalog, option string) (string, bool) {
	for i, lib := range cat.Libraries() {
		if Option(i, lib) == option {
			return lib.Key, true
		}
	}
	return "", false
}

// ConflictMessage describes a conflict the way the prompt shows it
func ConflictMessage(c resolve.Conflict) string {
	kind := string(c.Kind)
	if kind == "" {
		kind = string(resolve.KindSymbol)
	}
	names := c.Names
	more := ""
	if len(names) > 5 {
		more = fmt.Sprintf(" and %d more", len(names)-5)
		names = names[:5]
	}
	return fmt.Sprintf("%s(s) already exist in %s: %s%s", kind, c.Library, strings.Join(names, ", "), more)
}

// NonInteractive answers every prompt from fixed values, for scripts and
// tests
type NonInteractive struct {
	// Decision answers every collision
	Decision resolve.Decision
	// Library answers SelectLibrary; empty means no selection
	Library string
	// Libraries answers SelectLibraries
	Libraries []string
	// Answer answers every confirmation
	Answer bool
}

// Decide returns the fixed decision
func (n *NonInteractive) Decide(ctx context.Context, _ resolve.Conflict) (resolve.Decision, error) {
	if err := ctx.Err(); err != nil {
		return resolve.Skip, errors.Wrap(err, errors.ErrPromptCancelled, "decision cancelled")
	}
	return n.Decision, nil
}

// SelectLibrary returns the configured library, validated against cat
func (n *NonInteractive) SelectLibrary(ctx context.Context, cat *catalog.Catalog) (string, bool, error) {
	if n.Library == "" || ctx.Err() != nil {
		return "", false, nil
	}
	if _, err := cat.Lookup(n.Library); err != nil {
		return "", false, err
	}
	return n.Library, true, nil
}

// SelectLibraries returns the configured libraries, validated against cat
func (n *NonInteractive) SelectLibraries(ctx context.Context, cat *catalog.Catalog) ([]string, error) {
	if ctx.Err() != nil {
		return nil, nil
	}
	for _, key := range n.Libraries {
		if _, err := cat.Lookup(key); err != nil {
			return nil, err
		}
	}
	return n.Libraries, nil
}

// Confirm returns the fixed answer, or false once ctx is done
func (n *NonInteractive) Confirm(ctx context.Context, _ string, _ bool) bool {
	if ctx.Err() != nil {
		return false
	}
	return n.Answer
}
