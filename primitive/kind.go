package primitive

import (
	"strings"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum identifies how a field converts between its textual state and the
// typed value stored in a record.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindText      // plain text, copied as is
	KindNumber    // float number with thousands separators
	KindInteger   // integer number, same coercion as KindNumber
	KindCurrency  // number rendered as 0 when unset
	KindPercent   // number divided by 100 on extract, multiplied on present
	KindBool      // "true" is true, anything else false
	KindCheckbox  // checked state, or array membership with options.FlagArray
	KindObject    // record carried out of band, rendered with a display skin
	KindJSObject  // record carried out of band, never rendered
	KindBlob      // opaque payload attached by an upload collaborator
	KindTransient // computed field, filled but never extracted

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = map[string]KindEnum{
	"text":      KindText,
	"number":    KindNumber,
	"integer":   KindInteger,
	"currency":  KindCurrency,
	"percent":   KindPercent,
	"bool":      KindBool,
	"checkbox":  KindCheckbox,
	"object":    KindObject,
	"jsobject":  KindJSObject,
	"blob":      KindBlob,
	"transient": KindTransient,
}

// ParseKind resolves a layout kind name. An empty name is KindText.
func ParseKind(name string) (KindEnum, bool) {
	if name == "" {
		return KindText, true
	}

	k, ok := kindNames[strings.ToLower(name)]

	return k, ok
}

// KindNames returns every name accepted by ParseKind.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for name := range kindNames {
		names = append(names, name)
	}

	return names
}

// IsNumber reports whether the kind extracts to a number.
func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindNumber, KindInteger, KindCurrency, KindPercent:
		return true
	}
}

// IsOutOfBand reports whether the typed value bypasses text coercion.
func (k KindEnum) IsOutOfBand() bool {
	switch k {
	default:
		return false
	case KindObject, KindJSObject, KindBlob:
		return true
	}
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}
