// Package symlib merges symbol definitions into KiCad symbol library
// documents (.kicad_sym) by splicing text at block boundaries.
//
// A library document is a (kicad_symbol_lib ...) container holding a flat
// list of (symbol "<name>" ...) blocks. New blocks are appended before the
// container close; replaced blocks are excised first so a name never appears
// twice. Everything outside the touched spans is kept byte-for-byte.
package symlib
