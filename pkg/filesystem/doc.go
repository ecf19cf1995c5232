// Package filesystem provides the filesystem layer for kicadlib.
//
// Every component that touches disk takes an afero.Fs: the OS filesystem in
// production and an in-memory filesystem in tests. The helpers here implement
// the whole-document read, mutate, overwrite cycle used for library files.
package filesystem
