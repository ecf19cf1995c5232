package kicadlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/kicadlib/internal/version"
	"github.com/arthur-debert/kicadlib/pkg/commands"
	"github.com/arthur-debert/kicadlib/pkg/config"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/paths"
	"github.com/arthur-debert/kicadlib/pkg/ui"
	"github.com/arthur-debert/kicadlib/pkg/vcs"
)

// libraryKeysCompletion completes catalog keys not already given
func libraryKeysCompletion(flags *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		root, _, err := paths.ResolveRoot(flags.root)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		cfg, err := config.Load(root, nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		given := make(map[string]bool, len(args))
		for _, arg := range args {
			given[arg] = true
		}
		var keys []string
		for _, lib := range cfg.Libraries {
			if !given[lib.Key] && strings.HasPrefix(lib.Key, toComplete) {
				keys = append(keys, lib.Key)
			}
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	}
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	var (
		libraryKey    string
		onConflict    string
		addToProject  bool
		commit        bool
		push          bool
		deleteArchive bool
		keepArchive   bool
	)

	cmd := &cobra.Command{
		Use:     "import <archive.zip>",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		Example: MsgImportExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"zip"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if onConflict != "" {
				overrides["import.on_conflict"] = onConflict
			}
			e, err := newEnv(cmd, flags, overrides)
			if err != nil {
				return err
			}
			provider, err := newProvider(e.setup.Config)
			if err != nil {
				return err
			}

			action := commands.AskArchive
			switch {
			case deleteArchive:
				action = commands.DeleteArchive
			case keepArchive:
				action = commands.KeepArchive
			}

			archivePath, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid archive path %s", args[0])
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			log.Info().
				Str("archive", archivePath).
				Str("library", libraryKey).
				Str("root", e.setup.Root).
				Msg("Importing archive")

			result, err := commands.ImportArchive(ctx, commands.ImportOptions{
				Setup:         e.setup,
				Archive:       archivePath,
				Library:       libraryKey,
				Provider:      provider,
				AddToProject:  addToProject,
				Commit:        commit,
				Push:          push,
				ArchiveAction: action,
			})
			if err != nil {
				return err
			}
			return renderImport(e, result)
		},
	}

	cmd.Flags().StringVarP(&libraryKey, "library", "l", "", MsgFlagLibrary)
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", MsgFlagOnConflict)
	cmd.Flags().BoolVarP(&addToProject, "add-to-project", "p", false, MsgFlagAddToProject)
	cmd.Flags().BoolVar(&commit, "commit", false, MsgFlagCommit)
	cmd.Flags().BoolVar(&push, "push", false, MsgFlagPush)
	cmd.Flags().BoolVar(&deleteArchive, "delete-archive", false, MsgFlagDeleteArchive)
	cmd.Flags().BoolVar(&keepArchive, "keep-archive", false, MsgFlagKeepArchive)
	cmd.MarkFlagsMutuallyExclusive("delete-archive", "keep-archive")
	_ = cmd.RegisterFlagCompletionFunc("library", libraryKeysCompletion(flags))
	_ = cmd.RegisterFlagCompletionFunc("on-conflict", cobra.FixedCompletions(
		[]string{"skip", "overwrite", "ask"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// renderImport prints an import result and turns per-file failures into the
// command's error
func renderImport(e *env, result *commands.ImportResult) error {
	if e.format == ui.FormatYAML {
		if err := e.renderer.RenderResult(result); err != nil {
			return err
		}
	} else {
		symbols, footprints, models := result.Found.Counts()
		e.message(MsgFoundFiles, symbols, footprints, models, filepath.Base(result.Archive))
		if result.Cancelled {
			e.message(MsgImportCancelled)
			return nil
		}
		if err := e.renderer.RenderResult(result.Report); err != nil {
			return err
		}
		if result.Register != nil {
			if err := e.renderer.RenderResult(result.Register); err != nil {
				return err
			}
		}
		renderPublication(e, result.Publication)
		if result.ArchiveDeleted {
			e.message(MsgArchiveDeleted, filepath.Base(result.Archive))
		}
	}

	if result.Report != nil && result.Report.Failed() {
		return importFailure(result.Report)
	}
	if result.Register != nil && result.Register.Failed() {
		return errors.New(errors.ErrFileWrite, MsgErrTableFailed)
	}
	return nil
}

func importFailure(report *library.ImportReport) error {
	count := report.Count(library.Failed)
	for _, r := range report.Results {
		if r.Status == library.Failed && r.Err != nil {
			return errors.Wrapf(r.Err, errors.GetErrorCode(r.Err), MsgErrFilesFailed, count).
				WithDetail("file", r.File)
		}
	}
	return errors.Newf(errors.ErrUnknown, MsgErrFilesFailed, count)
}

func renderPublication(e *env, p *vcs.Publication) {
	switch {
	case p == nil:
	case p.Err != nil:
		e.message(MsgPublishFailed, p.Error)
	case p.Clean:
		e.message(MsgNothingToCommit)
	default:
		e.message(MsgCommitted, shortHash(p.Hash), p.Message)
		if p.Pushed {
			e.message(MsgPushed)
		}
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	var commit, push bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags, nil)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			result, err := commands.InitLibraries(ctx, commands.InitOptions{
				Setup:  e.setup,
				Commit: commit,
				Push:   push,
			})
			if err != nil {
				return err
			}
			if e.format == ui.FormatYAML {
				return e.renderer.RenderResult(result)
			}
			if err := e.renderer.RenderResult(result.Report); err != nil {
				return err
			}
			renderPublication(e, result.Publication)
			return nil
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, MsgFlagCommit)
	cmd.Flags().BoolVar(&push, "push", false, MsgFlagPush)
	return cmd
}

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:               "register [libraries...]",
		Short:             MsgRegisterShort,
		Long:              MsgRegisterLong,
		GroupID:           "core",
		ValidArgsFunction: libraryKeysCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags, nil)
			if err != nil {
				return err
			}
			provider, err := newProvider(e.setup.Config)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			result, err := commands.RegisterLibraries(ctx, commands.RegisterOptions{
				Setup:     e.setup,
				Libraries: args,
				All:       all,
				Selector:  provider,
			})
			if err != nil {
				return err
			}
			if e.format == ui.FormatYAML {
				if err := e.renderer.RenderResult(result); err != nil {
					return err
				}
			} else if result.Report == nil {
				e.message(MsgNothingSelected)
				return nil
			} else if err := e.renderer.RenderResult(result.Report); err != nil {
				return err
			}
			if result.Report != nil && result.Report.Failed() {
				return errors.New(errors.ErrFileWrite, MsgErrTableFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newLibrariesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"ls"},
		Short:   MsgLibrariesShort,
		Long:    MsgLibrariesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags, nil)
			if err != nil {
				return err
			}
			statuses, err := commands.ListLibraries(commands.ListOptions{Setup: e.setup})
			if err != nil {
				return err
			}
			return e.renderer.RenderResult(statuses)
		},
	}
}

func newRelinkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "relink [libraries...]",
		Short:             MsgRelinkShort,
		Long:              MsgRelinkLong,
		GroupID:           "core",
		ValidArgsFunction: libraryKeysCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags, nil)
			if err != nil {
				return err
			}
			results, err := commands.RelinkModels(commands.RelinkOptions{
				Setup:     e.setup,
				Libraries: args,
			})
			if err != nil {
				return err
			}
			return e.renderer.RenderResult(results)
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags, nil)
			if err != nil {
				return err
			}
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Setup: e.setup,
				Write: write,
			})
			if err != nil {
				return err
			}
			if e.format == ui.FormatYAML {
				return e.renderer.RenderResult(result)
			}
			if !write {
				_, err := fmt.Fprint(e.out, result.ConfigContent)
				return err
			}
			for _, path := range result.FilesWritten {
				e.message(MsgConfigWritten, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "KICADLIB",
				Section: "1",
				Source:  "kicadlib " + version.Version,
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man pages")
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}
