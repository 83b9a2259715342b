// Package match ranks known names by similarity to a misspelled one.
//
// It backs the "did you mean" suggestions attached to diagnostics when a
// layout or a binder references a processor, renderer, conditional, kind or
// field that does not exist.
package match
