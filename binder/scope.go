package binder

import (
	"strings"

	"form-binder/record"
)

// Scope is the path a group of fields is resolved against: the binder
// prefix at the root, the last segment of the collection name inside
// collection instances.
type Scope struct {
	Base string
}

// Rel returns name relative to the scope. A name belongs to the scope when
// it equals the base, giving "", or starts with the base followed by a dot.
// Any name belongs to the empty scope.
func (s Scope) Rel(name string) (string, bool) {
	switch {
	case name == "":
		return "", false
	case s.Base == "":
		return name, true
	case name == s.Base:
		return "", true
	case strings.HasPrefix(name, s.Base+"."):
		return name[len(s.Base)+1:], true
	default:
		return "", false
	}
}

// Contains reports whether name belongs to the scope.
func (s Scope) Contains(name string) bool {
	_, ok := s.Rel(name)
	return ok
}

// instanceScope is the scope of the instances of a collection bound at rel.
func instanceScope(rel string) Scope {
	return Scope{Base: record.LastSegment(rel)}
}
