// Package binder synchronizes a field tree with a record.
//
// A Binder owns one tree (plus any parts added with Connect) and the record
// it was last filled with. Fill pushes a record into the fields, expanding
// collections into one instance per element; Extract reads the fields back
// into a record, coercing every value to its field kind and reporting
// invalid fields. Conditions on nodes are re-evaluated on every fill and on
// ApplyConditions, and the change tracker compares the live state of each
// field with the state it was filled with.
//
// Field names are dot-notation paths qualified by a scope: "data.name" at
// the root of a binder with the default "data" prefix, "items.sku" inside
// instances of the collection "data.items".
package binder
