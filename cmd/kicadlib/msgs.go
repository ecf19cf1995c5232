package kicadlib

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Merge component downloads into categorised KiCad libraries"
	MsgImportShort     = "Import a component archive into a library"
	MsgInitShort       = "Create the empty libraries of the catalog"
	MsgRegisterShort   = "Add libraries to the project library tables"
	MsgLibrariesShort  = "List the library catalog with its status"
	MsgLibrariesLong   = "Libraries lists every library of the catalog with its symbol and footprint counts and whether it is registered in the project tables."
	MsgRelinkShort     = "Point footprint 3D model paths at the models directory"
	MsgConfigShort     = "Print the effective configuration"
	MsgConfigLong      = "Config prints the configuration in effect, after defaults, kicadlib.toml, environment and flags, as TOML. With --write it is saved as kicadlib.toml in the library root."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgFoundFiles       = "Found [symbol]%d[/symbol] symbol, [footprint]%d[/footprint] footprint and [model]%d[/model] 3D model file(s) in [path]%s[/path]"
	MsgImportCancelled  = "[warning]No library selected, nothing imported[/warning]"
	MsgNothingSelected  = "[muted]No libraries selected[/muted]"
	MsgCommitted        = "[success]Committed[/success] %s: %s"
	MsgPushed           = "[success]Pushed[/success] to the remote"
	MsgNothingToCommit  = "[muted]Nothing to commit[/muted]"
	MsgPublishFailed    = "[warning]Version control:[/warning] %s"
	MsgArchiveDeleted   = "[muted]Deleted %s[/muted]"
	MsgConfigWritten    = "[success]Written[/success] [path]%s[/path]"
	MsgManWritten       = "Man pages written to %s\n"
	MsgVersionFormat    = "kicadlib version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrFilesFailed = "%d file(s) could not be imported"
	MsgErrTableFailed = "a library table could not be updated"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot          = "Library root (default $KICADLIB_ROOT or the current directory)"
	MsgFlagNoColor       = "Disable colored output"
	MsgFlagOutput        = "Output format: auto, term, text or yaml"
	MsgFlagLibrary       = "Target library key (asks when omitted)"
	MsgFlagOnConflict    = "What to do with existing symbols, footprints and models: skip, overwrite or ask"
	MsgFlagAddToProject  = "Also add the library to the project library tables"
	MsgFlagCommit        = "Commit the library changes to git"
	MsgFlagPush          = "Push after committing"
	MsgFlagDeleteArchive = "Delete the archive after a successful import"
	MsgFlagKeepArchive   = "Keep the archive without asking"
	MsgFlagAll           = "Register every library of the catalog"
	MsgFlagWrite         = "Write kicadlib.toml to the library root"
	MsgFlagManDir        = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/import-example.txt
	msgImportExampleRaw string
	MsgImportExample    = strings.TrimRight(msgImportExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/register-long.txt
	msgRegisterLongRaw string
	MsgRegisterLong    = strings.TrimSpace(msgRegisterLongRaw)

	//go:embed msgs/relink-long.txt
	msgRelinkLongRaw string
	MsgRelinkLong    = strings.TrimSpace(msgRelinkLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
