package record

import (
	"math"
	"reflect"
	"sort"
	"strconv"

	"form-binder/primitive"
)

// Epsilon is the tolerance for numeric equality.
const Epsilon = 1e-7

// Equals compares two records structurally, treating an absent key the same
// as a blank value (nil, "", false, 0, "0" or an empty container).
//
// When idField is set, nested records that both carry a truthy idField are
// equal when the ids are, without looking at their other keys.
func Equals(a, b any, idField string) bool {
	if !primitive.Truthy(a) && length(b) == 0 {
		return true
	}

	if !primitive.Truthy(b) && length(a) == 0 {
		return true
	}

	if !primitive.Truthy(a) && !primitive.Truthy(b) {
		return true
	}

	if !isContainer(a) && !isContainer(b) {
		return scalarEquals(a, b)
	}

	if mismatched(a, b) {
		return false
	}

	for _, key := range keys(a) {
		av, _ := lookup(a, key)

		bv, found := lookup(b, key)
		if !found {
			if blank(av) {
				continue
			}

			return false
		}

		if !primitive.Truthy(av) {
			if blank(bv) {
				continue
			}

			return false
		}

		if mismatched(av, bv) {
			return false
		}

		if isContainer(av) {
			if idField != "" && sameID(av, bv, idField) {
				continue
			}

			if !Equals(av, bv, idField) {
				return false
			}

			continue
		}

		if reflect.ValueOf(av).Kind() == reflect.Func {
			continue
		}

		if !scalarEquals(av, bv) {
			return false
		}
	}

	for _, key := range keys(b) {
		if _, found := lookup(a, key); found {
			continue
		}

		if bv, _ := lookup(b, key); !blank(bv) {
			return false
		}
	}

	return true
}

// mismatched reports whether one side is a container and the other a
// scalar that is not blank.
func mismatched(a, b any) bool {
	switch {
	case isContainer(a) && !isContainer(b):
		return !blank(b)
	case isContainer(b) && !isContainer(a):
		return !blank(a)
	default:
		return false
	}
}

// sameID reports whether both values are records carrying the same truthy id.
func sameID(a, b any, idField string) bool {
	am, ok := a.(Record)
	if !ok || !primitive.Truthy(am[idField]) {
		return false
	}

	bm, ok := b.(Record)
	if !ok {
		return false
	}

	return scalarEquals(am[idField], bm[idField])
}

// scalarEquals compares two scalars: booleans strictly, numbers within
// Epsilon, everything else by text after a length check.
func scalarEquals(a, b any) bool {
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}

	na, aok := primitive.ToNumber(a)
	nb, bok := primitive.ToNumber(b)

	if aok || bok {
		return aok && bok && math.Abs(na-nb) < Epsilon
	}

	sa, sb := primitive.Stringify(a), primitive.Stringify(b)
	if len(sa) != len(sb) {
		return false
	}

	return sa == sb
}

// blank reports whether v compares equal to an absent key.
func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == "" || x == "0"
	case bool:
		return !x
	}

	if primitive.IsNumeric(v) {
		return !primitive.Truthy(v)
	}

	return length(v) == 0
}

// keys returns the sorted keys of a record, or the indexes of a sequence.
func keys(v any) []string {
	switch x := v.(type) {
	case Record:
		out := make([]string, 0, len(x))
		for k := range x {
			out = append(out, k)
		}

		sort.Strings(out)

		return out
	case []any:
		out := make([]string, len(x))
		for i := range x {
			out[i] = strconv.Itoa(i)
		}

		return out
	default:
		return nil
	}
}

func lookup(v any, key string) (any, bool) {
	return child(v, key)
}

// LooseEquals matches array members: containers structurally, scalars the
// way Equals compares leaves.
func LooseEquals(a, b any) bool {
	if isContainer(a) || isContainer(b) {
		return reflect.DeepEqual(a, b)
	}

	return scalarEquals(a, b)
}
