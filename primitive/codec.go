package primitive

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"form-binder/options"
)

// Formatter localizes display values and parses localized numbers. It is the
// optional controls companion of a binder; without one values are shown raw.
type Formatter interface {
	Format(kind KindEnum, value any) string
	ParseNumber(raw string) (float64, bool)
}

// DefaultDateLayouts are tried in order when a date field receives text.
var DefaultDateLayouts = []string{time.DateOnly, time.RFC3339, "02.01.2006", "01/02/2006"}

// Codec converts between the textual state of a field and record values.
type Codec struct {
	Formatter   Formatter
	DateLayouts []string
	Location    *time.Location
}

// Extract converts raw field text into the typed record value for kind.
// For KindCheckbox without options.FlagArray, raw is the checked state
// ("true" or "false"); with the flag it is the member value.
func (c Codec) Extract(kind KindEnum, flags options.FlagEnum, raw string) any {
	if flags.Has(options.FlagEmptyNull) && (strings.TrimSpace(raw) == "" || raw == "null") {
		return nil
	}

	switch kind {
	case KindPercent:
		f, ok := c.ParseNumber(raw)
		if !ok {
			return float64(0)
		}

		return f / 100

	case KindNumber, KindInteger, KindCurrency:
		if raw == "" {
			return nil
		}

		if f, ok := c.ParseNumber(raw); ok {
			return f
		}

		if flags.Has(options.FlagDate) {
			if t, ok := c.ParseDate(raw); ok {
				return float64(t.UnixMilli())
			}
		}

		return float64(0)

	case KindBool:
		return raw == "true"

	case KindCheckbox:
		if flags.Has(options.FlagArray) {
			return raw
		}

		return raw == "true"

	default:
		if raw == "" && flags.Has(options.FlagDate) {
			return nil
		}

		return raw
	}
}

// Present converts a record value into the text shown by a field of kind.
func (c Codec) Present(kind KindEnum, value any) string {
	switch kind {
	case KindPercent:
		if f, ok := ToNumber(value); ok {
			value = math.Round(100*f*1e9) / 1e9
		}

	case KindCurrency:
		if !Truthy(value) {
			value = float64(0)
		}
	}

	if c.Formatter != nil {
		return c.Formatter.Format(kind, value)
	}

	return Stringify(value)
}

// ParseNumber uses the formatter when one is configured.
func (c Codec) ParseNumber(raw string) (float64, bool) {
	if c.Formatter != nil {
		return c.Formatter.ParseNumber(raw)
	}

	return ParseNumber(raw)
}

// ParseDate parses raw with the configured layouts at local midnight.
func (c Codec) ParseDate(raw string) (time.Time, bool) {
	layouts := c.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}

		y, m, d := t.Date()

		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}

	return time.Time{}, false
}

// Stringify renders a scalar record value as field text. Records render as
// empty text; sequences join their elements with commas.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}

		return "false"
	case json.Number:
		return x.String()
	case map[string]any:
		return ""
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Stringify(e)
		}

		return strings.Join(parts, ",")
	}

	if f, ok := ToNumber(v); ok && IsNumeric(v) {
		return FormatNumber(f)
	}

	return fmt.Sprint(v)
}
