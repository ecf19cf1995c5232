package symlib

import (
	"strings"

	"github.com/arthur-debert/kicadlib/pkg/sexpr"
)

// Names lists the named top-level symbols of a library document
func Names(text string) []string {
	return sexpr.Names(sexpr.TopLevel(sexpr.Symbols(text)))
}

// SymbolInfo summarises a symbol for reports
type SymbolInfo struct {
	Name      string `yaml:"name"`
	Datasheet string `yaml:"datasheet,omitempty"`
	Footprint string `yaml:"footprint,omitempty"`
}

// Info extracts name, datasheet and footprint of each named top-level symbol.
// The "~" placeholder KiCad uses for empty fields is reported as empty.
func Info(text string) []SymbolInfo {
	var out []SymbolInfo
	for _, b := range sexpr.Named(sexpr.TopLevel(sexpr.Symbols(text))) {
		body := b.Text(text)
		info := SymbolInfo{Name: b.Name}
		for _, p := range sexpr.Index(body, "property") {
			// Direct properties only, not those of nested units
			if p.Depth != 1 {
				continue
			}
			value, _, ok := sexpr.TokenAt(body, p.NameEnd)
			if !ok || value == "~" {
				continue
			}
			switch strings.ToLower(p.Name) {
			case "datasheet":
				info.Datasheet = value
			case "footprint":
				info.Footprint = value
			}
		}
		out = append(out, info)
	}
	return out
}
