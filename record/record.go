// Package record holds the structured values a field tree is bound to, and
// the helpers the binder uses to address, compare and classify them.
//
// A record is a plain map[string]any as produced by encoding/json or
// gopkg.in/yaml.v3: nested records, []any sequences and scalars. No schema is
// declared up front; the shape follows whatever field tree is bound to it.
package record

import (
	"reflect"
)

// Record is a structured value synchronized with a field tree.
type Record = map[string]any

// Clone returns a deep copy of v. Records and sequences are copied, scalars
// are shared.
func Clone(v any) any {
	switch x := v.(type) {
	case Record:
		out := make(Record, len(x))
		for k, e := range x {
			out[k] = Clone(e)
		}

		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}

		return out
	default:
		return v
	}
}

// CloneRecord is Clone for a record; a nil record clones to an empty one.
func CloneRecord(r Record) Record {
	if r == nil {
		return Record{}
	}

	return Clone(r).(Record)
}

// Merge deep-copies src into dst. Nested records present on both sides are
// merged, every other value from src replaces the one in dst.
func Merge(dst, src Record) {
	for k, v := range src {
		if sv, ok := v.(Record); ok {
			if dv, ok := dst[k].(Record); ok {
				Merge(dv, sv)
				continue
			}
		}

		dst[k] = Clone(v)
	}
}

// isContainer reports whether v is a record, a sequence, or any other Go
// map or slice.
func isContainer(v any) bool {
	switch v.(type) {
	case Record, []any:
		return true
	case nil:
		return false
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// length returns the number of entries of a container, -1 for scalars.
func length(v any) int {
	switch x := v.(type) {
	case Record:
		return len(x)
	case []any:
		return len(x)
	case nil:
		return -1
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len()
	default:
		return -1
	}
}
