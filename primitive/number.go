package primitive

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ParseNumber parses user input as a float after stripping the thousands
// separator. Empty input is not a number.
func ParseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// ToNumber converts a record value to a float the way loosely typed data is
// compared: nil and blank strings are 0, booleans are 0 or 1, and strings must
// parse completely. Containers never convert.
func ToNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case bool:
		if x {
			return 1, true
		}

		return 0, true
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, true
		}

		f, err := strconv.ParseFloat(x, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}

		return f, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	default:
		return 0, false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
}

// IsNumeric reports whether v is a Go number, not a numeric string.
func IsNumeric(v any) bool {
	if _, ok := v.(json.Number); ok {
		return true
	}

	switch reflect.ValueOf(v).Kind() {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
}

// Truthy reports whether v counts as set: nil, false, "", zero and NaN do not.
// Containers are always truthy, even when empty.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}

	if IsNumeric(v) {
		f, ok := ToNumber(v)
		return ok && f != 0
	}

	return true
}

// FormatNumber renders a float without exponent or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
