package kicadlib

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/kicadlib/internal/version"
	"github.com/arthur-debert/kicadlib/pkg/commands"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/logging"
	"github.com/arthur-debert/kicadlib/pkg/paths"
	"github.com/arthur-debert/kicadlib/pkg/prompt"
	"github.com/arthur-debert/kicadlib/pkg/resolve"
	"github.com/arthur-debert/kicadlib/pkg/ui"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	root      string
	noColor   bool
	output    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "kicadlib",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			plainHelp = flags.noColor
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newImportCmd(flags))
	rootCmd.AddCommand(newInitCmd(flags))
	rootCmd.AddCommand(newRegisterCmd(flags))
	rootCmd.AddCommand(newLibrariesCmd(flags))
	rootCmd.AddCommand(newRelinkCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	installTopics(rootCmd)

	return rootCmd
}

// env is what a command needs once the root and configuration are known
type env struct {
	setup    commands.Setup
	renderer ui.Renderer
	format   ui.Format
	out      io.Writer
}

// newEnv resolves the root, loads the configuration with overrides (dotted
// keys) and picks the renderer for the command's output
func newEnv(cmd *cobra.Command, flags *globalFlags, overrides map[string]interface{}) (*env, error) {
	root, fallback, err := paths.ResolveRoot(flags.root)
	if err != nil {
		return nil, err
	}
	if fallback {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning+"\n", root)
	}

	cfg, err := config.Load(root, overrides)
	if err != nil {
		return nil, err
	}

	format, err := outputFormat(cmd, flags)
	if err != nil {
		return nil, err
	}
	ui.Apply(format)

	out := cmd.OutOrStdout()
	renderer, err := ui.NewRenderer(format, out)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("root", root).Str("format", format.String()).Msg("Environment ready")
	return &env{
		setup: commands.Setup{
			FS:     filesystem.NewOS(),
			Config: cfg,
			Root:   root,
		},
		renderer: renderer,
		format:   format,
		out:      out,
	}, nil
}

func outputFormat(cmd *cobra.Command, flags *globalFlags) (ui.Format, error) {
	format, err := ui.ParseFormat(flags.output)
	if err != nil {
		return format, err
	}
	if flags.noColor && format != ui.FormatYAML {
		return ui.FormatText, nil
	}
	file, _ := cmd.OutOrStdout().(*os.File)
	return ui.Resolve(format, file), nil
}

// message renders a markup message unless the output is YAML, where only
// the result document is written
func (e *env) message(format string, args ...interface{}) {
	if e.format == ui.FormatYAML {
		return
	}
	_ = e.renderer.RenderMessage(fmt.Sprintf(format, args...))
}

// newProvider asks on the terminal when stdin is one, and answers
// collisions through the configured policy
func newProvider(cfg *config.Config) (prompt.Provider, error) {
	var base prompt.Provider = &prompt.NonInteractive{}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		base = prompt.NewInteractive()
	}
	policy, err := resolve.ParsePolicy(cfg.Import.OnConflict)
	if err != nil {
		return nil, err
	}
	return prompt.WithDecider(base, policy.Decider(base)), nil
}

// commandContext is cancelled by an interrupt so prompts fall back to their
// safe defaults
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return notifyContext(ctx)
}
