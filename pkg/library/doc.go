// Package library manages the categorised KiCad libraries under a root:
// creating them, importing classified files into them, and registering them
// in the project library tables.
//
// Every per-file operation reports a FileResult and never aborts the batch.
// Only an unknown library key stops Import or Register, and it does so before
// any file is touched.
package library
