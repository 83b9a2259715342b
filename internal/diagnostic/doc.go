// Package diagnostic collects the errors, warnings and notes produced while
// loading a layout or binding records to a field tree.
//
// Diagnostics never stop processing on their own: loaders and binders keep
// going and callers decide what to do with the collected list.
package diagnostic
