// Package resolve detects name collisions between incoming and existing
// library content and turns them into a per-file decision.
package resolve

import (
	"context"
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/sexpr"
)

// Decision is the answer for a batch of colliding names
type Decision int

const (
	// Skip keeps the existing content and drops the colliding incoming items
	Skip Decision = iota
	// Overwrite replaces the existing content with the incoming items
	Overwrite
)

func (d Decision) String() string {
	if d == Overwrite {
		return "overwrite"
	}
	return "skip"
}

// Kind names what collided, for prompts and reports
type Kind string

const (
	KindSymbol    Kind = "symbol"
	KindFootprint Kind = "footprint"
	KindModel     Kind = "3D model"
)

// Conflict is one file's set of colliding names in a library
type Conflict struct {
	Library string
	File    string
	Kind    Kind
	Names   []string
}

// Decider answers a conflict. Implementations may block on user input.
type Decider interface {
	Decide(ctx context.Context, conflict Conflict) (Decision, error)
}

// DeciderFunc adapts a function to Decider
type DeciderFunc func(ctx context.Context, conflict Conflict) (Decision, error)

// Decide calls f
func (f DeciderFunc) Decide(ctx context.Context, conflict Conflict) (Decision, error) {
	return f(ctx, conflict)
}

// Always returns a Decider that answers d without asking
func Always(d Decision) Decider {
	return DeciderFunc(func(context.Context, Conflict) (Decision, error) {
		return d, nil
	})
}

// Action is what a handler should do with a file
type Action int

const (
	// ActionAdd means nothing collided
	ActionAdd Action = iota
	ActionSkip
	ActionOverwrite
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionOverwrite:
		return "overwrite"
	default:
		return "add"
	}
}

// Resolution is the outcome of Resolve
type Resolution struct {
	Action     Action
	Collisions []string
	// Err is set when the decider failed; the action is then ActionSkip
	Err error
}

// Decision maps the resolution to a merge decision
func (r Resolution) Decision() Decision {
	if r.Action == ActionOverwrite {
		return Overwrite
	}
	return Skip
}

// Collisions returns the incoming names present in existing, in incoming
// order, each once. Sub-block names are never reported.
func Collisions(existing map[string]struct{}, incoming []string) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, name := range incoming {
		if sexpr.IsSubBlockName(name) {
			continue
		}
		if _, ok := existing[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NameSet builds the lookup set used by Collisions
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Resolve asks decider once for the whole conflict. No names means there is
// nothing to decide. A missing decider, a cancelled context or a decider
// error all resolve to skip.
func Resolve(ctx context.Context, decider Decider, conflict Conflict) Resolution {
	log := logging.GetLogger("resolve")

	if len(conflict.Names) == 0 {
		return Resolution{Action: ActionAdd}
	}
	res := Resolution{Action: ActionSkip, Collisions: conflict.Names}

	if decider == nil {
		log.Debug().Str("file", conflict.File).Msg("No decider, skipping collisions")
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = errors.Wrap(err, errors.ErrPromptCancelled, "decision cancelled")
		return res
	}

	d, err := decider.Decide(ctx, conflict)
	if err != nil {
		log.Warn().Err(err).Str("file", conflict.File).Msg("Decision failed, skipping")
		if !errors.IsErrorCode(err, errors.ErrPromptCancelled) {
			err = errors.Wrap(err, errors.ErrPromptCancelled, "decision failed")
		}
		res.Err = err
		return res
	}

	if d == Overwrite {
		res.Action = ActionOverwrite
	}
	log.Debug().
		Str("library", conflict.Library).
		Str("file", conflict.File).
		Strs("names", conflict.Names).
		Str("decision", d.String()).
		Msg("Collision resolved")
	return res
}

// Policy is the configured answer to collisions
type Policy string

const (
	PolicySkip      Policy = "skip"
	PolicyOverwrite Policy = "overwrite"
	PolicyAsk       Policy = "ask"
)

// ParsePolicy parses "skip", "overwrite" or "ask", case-insensitively
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySkip, PolicyOverwrite, PolicyAsk:
		return p, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "invalid conflict policy %q (want skip, overwrite or ask)", s).
		WithDetail("policy", s)
}

// Decider returns the decider implementing the policy; ask delegates to asker
func (p Policy) Decider(asker Decider) Decider {
	switch p {
	case PolicyOverwrite:
		return Always(Overwrite)
	case PolicyAsk:
		if asker != nil {
			return asker
		}
	}
	return Always(Skip)
}
