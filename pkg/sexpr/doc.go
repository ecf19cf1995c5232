// Package sexpr indexes named blocks in KiCad s-expression documents.
//
// Documents are never fully parsed. A single left-to-right scan tracks open
// parentheses and quoted strings and reports, for a given keyword, where each
// balanced block starts and ends and what it is called. Callers splice and
// excise text using those offsets and leave everything else byte-for-byte.
package sexpr
