package record

import (
	"reflect"

	"form-binder/primitive"
)

// IsEmpty reports whether v carries no information.
//
// nil, false, "" and " " are empty; numbers (and numeric strings) are empty
// when 0 or -1; a sequence is empty when every element is recursively empty,
// which includes zero length; a record is empty when it has no keys or all of
// its values are recursively empty.
func IsEmpty(v any) bool {
	if !primitive.Truthy(v) {
		return true
	}

	switch x := v.(type) {
	case []any:
		for _, e := range x {
			if !IsEmpty(e) {
				return false
			}
		}

		return true
	case Record:
		for _, e := range x {
			if !IsEmpty(e) {
				return false
			}
		}

		return true
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := range rv.Len() {
			if !IsEmpty(rv.Index(i).Interface()) {
				return false
			}
		}

		return true
	} else if rv.Kind() == reflect.Map {
		iter := rv.MapRange()
		for iter.Next() {
			if !IsEmpty(iter.Value().Interface()) {
				return false
			}
		}

		return true
	}

	if f, ok := primitive.ToNumber(v); ok {
		return f == 0 || f == -1
	}

	s, ok := v.(string)

	return ok && (s == "" || s == " ")
}
