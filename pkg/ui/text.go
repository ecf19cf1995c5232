package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disiqueira/gotree/v3"

	"github.com/arthur-debert/kicadlib/pkg/classify"
	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/library"
	"github.com/arthur-debert/kicadlib/pkg/style"
)

// textRenderer writes human output. styled enables glamour for markdown;
// colours follow the global profile set by Apply.
type textRenderer struct {
	w      io.Writer
	styled bool
}

func (r *textRenderer) RenderResult(result interface{}) error {
	var out string
	switch v := result.(type) {
	case *library.ImportReport:
		out = ImportTree(v)
	case *library.InitReport:
		out = initText(v)
	case *library.RegisterReport:
		out = registerText(v)
	case []library.FileResult:
		out = fileLines(v)
	case []library.LibraryStatus:
		out = LibraryTable(v)
		if r.styled {
			out = RenderMarkdown(out, 0)
		}
	case string:
		out = v
	default:
		out = fmt.Sprintf("%v", v)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(r.w, out)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	var sb strings.Builder
	sb.WriteString(style.ErrorStyle.Render("✗ " + err.Error()))
	sb.WriteString("\n")

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(style.Indent(style.MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])), 1))
		sb.WriteString("\n")
	}
	_, werr := io.WriteString(r.w, sb.String())
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, style.Render(msg))
	return err
}

var roleGroups = []struct {
	role  classify.Role
	label string
}{
	{classify.Symbol, "symbols"},
	{classify.Footprint, "footprints"},
	{classify.ModelAsset, "3D models"},
}

// ImportTree renders an import report as a tree grouped by file role,
// followed by a one-line tally
func ImportTree(report *library.ImportReport) string {
	tree := gotree.New(style.Bold("Import into " + report.Library))

	for _, group := range roleGroups {
		var results []library.FileResult
		for _, res := range report.Results {
			if res.Role == group.role {
				results = append(results, res)
			}
		}
		if len(results) == 0 {
			continue
		}

		node := tree.Add(style.RoleStyle(group.role.String()).Render(fmt.Sprintf("%s (%d)", group.label, len(results))))
		for _, res := range results {
			file := node.Add(style.StatusLine(res.Status.String(), filepath.Base(res.File)+": "+res.Message))
			for _, sym := range res.Symbols {
				file.Add(symbolLine(sym.Name, sym.Datasheet, sym.Footprint))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(tree.Print())
	if len(report.Results) == 0 {
		sb.WriteString(style.MutedStyle.Render("nothing imported"))
		sb.WriteString("\n")
		return sb.String()
	}
	sb.WriteString(Tally(report))
	sb.WriteString("\n")
	return sb.String()
}

func symbolLine(name, datasheet, footprint string) string {
	parts := []string{style.SymbolStyle.Render(name)}
	if footprint != "" {
		parts = append(parts, "footprint "+footprint)
	}
	if datasheet != "" {
		parts = append(parts, "datasheet "+style.PathStyle.Render(datasheet))
	}
	return strings.Join(parts, "  ")
}

// Tally summarises an import report by status
func Tally(report *library.ImportReport) string {
	statuses := []library.Status{library.Added, library.Overwritten, library.Skipped, library.Unchanged, library.Failed}
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%d %s", report.Count(s), s))
	}
	return strings.Join(parts, ", ")
}

func fileLines(results []library.FileResult) string {
	if len(results) == 0 {
		return style.MutedStyle.Render("no footprints found")
	}
	var sb strings.Builder
	for _, res := range results {
		sb.WriteString(style.StatusLine(res.Status.String(), filepath.Base(res.File)+": "+res.Message))
		sb.WriteString("\n")
	}
	return sb.String()
}

func initText(report *library.InitReport) string {
	var sb strings.Builder
	for _, path := range report.Created {
		sb.WriteString(style.StatusLine(style.StatusAdded, path))
		sb.WriteString("\n")
	}
	for _, path := range report.Existing {
		sb.WriteString(style.StatusLine(style.StatusUnchanged, path+" already exists"))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%d created, %d already existed", len(report.Created), len(report.Existing))
	return sb.String()
}

func registerText(report *library.RegisterReport) string {
	var sb strings.Builder
	for _, table := range report.Tables {
		name := filepath.Base(table.Path)
		switch {
		case table.Err != nil:
			sb.WriteString(style.StatusLine(style.StatusFailed, name+": "+table.Err.Error()))
		case len(table.Added) > 0:
			sb.WriteString(style.StatusLine(style.StatusAdded, name+": "+strings.Join(table.Added, ", ")))
		default:
			sb.WriteString(style.StatusLine(style.StatusUnchanged, name+": nothing to add"))
		}
		sb.WriteString("\n")
		if len(table.Existing) > 0 {
			sb.WriteString(style.Indent(style.MutedStyle.Render("already present: "+strings.Join(table.Existing, ", ")), 1))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// LibraryTable renders library statuses as a markdown table
func LibraryTable(statuses []library.LibraryStatus) string {
	var sb strings.Builder
	sb.WriteString("| # | Library | Key | Description | Symbols | Footprints | Registered |\n")
	sb.WriteString("|---|---------|-----|-------------|---------|------------|------------|\n")
	for i, st := range statuses {
		symbols := "missing"
		if st.HasSymbols {
			symbols = fmt.Sprintf("%d", st.Symbols)
		}
		if st.Problem != "" {
			symbols = "unreadable"
		}
		registered := "no"
		if st.Registered {
			registered = "yes"
		}
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %s | %s | %d | %s |\n",
			i+1, st.Library.Title(), st.Library.Key, escapeCell(st.Library.Description),
			symbols, st.Footprints, registered)
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
