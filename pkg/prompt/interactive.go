package prompt

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/kicadlib/pkg/catalog"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
)

const cancelOption = "Cancel"

// Interactive asks on the terminal through pterm
type Interactive struct {
	// MaxHeight bounds the visible menu lines
	MaxHeight int
}

// NewInteractive creates a terminal prompt provider
func NewInteractive() *Interactive {
	return &Interactive{MaxHeight: 16}
}

// Decide asks once whether to overwrite every colliding name of the file.
// Interrupts and errors answer skip.
func (p *Interactive) Decide(ctx context.Context, c resolve.Conflict) (resolve.Decision, error) {
	if err := ctx.Err(); err != nil {
		return resolve.Skip, errors.Wrap(err, errors.ErrPromptCancelled, "decision cancelled")
	}

	pterm.Warning.Println(ConflictMessage(c))
	overwrite, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText("Overwrite?").
		WithDefaultValue(false).
		Show()
	if err != nil {
		return resolve.Skip, errors.Wrap(err, errors.ErrPromptCancelled, "overwrite prompt interrupted")
	}
	if overwrite {
		return resolve.Overwrite, nil
	}
	return resolve.Skip, nil
}

// SelectLibrary shows the numbered catalog menu
func (p *Interactive) SelectLibrary(ctx context.Context, cat *catalog.Catalog) (string, bool, error) {
	if ctx.Err() != nil {
		return "", false, nil
	}

	options := append(Options(cat), cancelOption)
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText("Select target library").
		WithMaxHeight(p.MaxHeight).
		Show()
	if err != nil {
		logger := logging.GetLogger("prompt")
		logger.Debug().Err(err).Msg("Library selection interrupted")
		return "", false, nil
	}
	key, ok := KeyForOption(cat, choice)
	return key, ok, nil
}

// SelectLibraries shows the catalog as a multiselect
func (p *Interactive) SelectLibraries(ctx context.Context, cat *catalog.Catalog) ([]string, error) {
	if ctx.Err() != nil {
		return nil, nil
	}

	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(Options(cat)).
		WithDefaultText("Select libraries to add to the project").
		WithMaxHeight(p.MaxHeight).
		Show()
	if err != nil {
		logger := logging.GetLogger("prompt")
		logger.Debug().Err(err).Msg("Library multiselect interrupted")
		return nil, nil
	}

	picked := make(map[string]bool, len(chosen))
	for _, option := range chosen {
		if key, ok := KeyForOption(cat, option); ok {
			picked[key] = true
		}
	}
	var keys []string
	for _, key := range cat.Keys() {
		if picked[key] {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Confirm asks a yes/no question; interrupts answer no
func (p *Interactive) Confirm(ctx context.Context, question string, def bool) bool {
	if ctx.Err() != nil {
		return false
	}
	answer, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(question).
		WithDefaultValue(def).
		Show()
	if err != nil {
		return false
	}
	return answer
}
