// Package paths resolves the library root and derives every directory and
// file kicadlib reads or writes from it.
//
// Layout under the root (names configurable):
//
//	<root>/lib_sym/<library>.kicad_sym
//	<root>/lib_fp/<library>.pretty/*.kicad_mod
//	<root>/3d_models/*
//
// The project tables (sym-lib-table, fp-lib-table) live in the project
// directory, by default the parent of the root.
package paths
