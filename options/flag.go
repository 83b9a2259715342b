package options

import (
	"strings"
)

type FlagEnum int

const (
	FlagArray     FlagEnum = 1 << iota // field is a member of an array-valued record key
	FlagEmptyNull                      // blank, whitespace-only or "null" text extracts as null
	FlagDate                           // numeric field accepting a date literal, stored as Unix milliseconds
	FlagFile                           // blob input backed by a file picker: never prefilled
	FlagSort                           // collection sorts its array by Sort.Field before filling
	FlagSortable                       // collection instances may be reordered manually

	FlagAll  FlagEnum = (1 << iota) - 1 // all flags combined
	FlagNone FlagEnum = 0               // no flags selected
)

var flagNames = map[string]FlagEnum{
	"array":     FlagArray,
	"emptynull": FlagEmptyNull,
	"date":      FlagDate,
	"file":      FlagFile,
	"sort":      FlagSort,
	"sortable":  FlagSortable,
}

// Has reports whether every bit of want is set.
func (f FlagEnum) Has(want FlagEnum) bool {
	return f&want == want
}

// ParseFlag resolves a single layout flag name.
func ParseFlag(name string) (FlagEnum, bool) {
	f, ok := flagNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// ParseFlags combines flag names. Unknown names are returned separately so
// callers can report them.
func ParseFlags(names []string) (flags FlagEnum, unknown []string) {
	for _, name := range names {
		f, ok := ParseFlag(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		flags |= f
	}

	return flags, unknown
}

// FlagNames returns every name accepted by ParseFlag.
func FlagNames() []string {
	names := make([]string, 0, len(flagNames))
	for name := range flagNames {
		names = append(names, name)
	}

	return names
}
