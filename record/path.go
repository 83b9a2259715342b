package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"form-binder/primitive"
)

// IndexPlaceholder is the path that resolves to the position of the
// collection instance being filled.
const IndexPlaceholder = "$idx"

// PathSegment is one dot-separated step of a path, optionally indexing into a
// sequence: "items[2]".
type PathSegment struct {
	Name  string
	Index int // -1 when the segment has no index
}

// Path is a parsed dot-notation path.
type Path struct {
	Segments []PathSegment
}

// String returns the dot-notation form of the path.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.Name
		if s.Index >= 0 {
			parts[i] += "[" + strconv.Itoa(s.Index) + "]"
		}
	}

	return strings.Join(parts, ".")
}

// ParsePath parses a path string into a Path.
// Supports: "field", "nested.field", "items[0]", "items[0].name".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	parts := strings.Split(path, ".")
	segments := make([]PathSegment, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg := PathSegment{Name: part, Index: -1}

		if open := strings.LastIndexByte(part, '['); open >= 0 && strings.HasSuffix(part, "]") {
			n, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || n < 0 {
				return Path{}, fmt.Errorf("invalid path %q: bad index in %q", path, part)
			}

			seg.Name, seg.Index = part[:open], n
			if seg.Name == "" {
				return Path{}, fmt.Errorf("invalid path %q: index without field name", path)
			}
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// MissError describes why GetIndexed could not resolve a path.
type MissError struct {
	Path    string
	Segment string
	Reason  string
}

func (e *MissError) Error() string {
	return fmt.Sprintf("path %q: segment %q: %s", e.Path, e.Segment, e.Reason)
}

// Get resolves a dot-notation path inside rec.
//
// An empty path returns rec itself and IndexPlaceholder returns idx. When
// create is set, missing intermediate levels are materialized as empty
// records so a later write succeeds. A miss yields "" (never nil), which
// callers treat as absent; string results are trimmed.
func Get(rec any, path string, create bool, idx int) any {
	if !primitive.Truthy(rec) {
		return ""
	}

	if path == "" {
		return rec
	}

	if path == IndexPlaceholder {
		return idx
	}

	var ret any
	if m, ok := rec.(Record); ok {
		ret = m[path]
	}

	if !primitive.Truthy(ret) || (create && !isContainer(ret)) {
		ret = rec
		for _, seg := range strings.Split(path, ".") {
			if !primitive.Truthy(ret) {
				break
			}

			next, _ := child(ret, seg)
			if create && !isContainer(next) {
				if m, ok := ret.(Record); ok {
					next = Record{}
					m[seg] = next
				}
			}

			ret = next
		}
	}

	switch x := ret.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return ret
	}
}

// GetParent returns the container one level above the final segment of path,
// with the same creation policy as Get. A single-segment path returns rec.
func GetParent(rec any, path string, create bool) any {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return rec
	}

	return Get(rec, path[:dot], create, 0)
}

// LastSegment returns the part of path after its final dot.
func LastSegment(path string) string {
	return path[strings.LastIndexByte(path, '.')+1:]
}

// Set writes value at path, creating intermediate records. It reports false
// when the parent cannot hold the value.
func Set(rec Record, path string, value any) bool {
	parent, ok := GetParent(rec, path, true).(Record)
	if !ok {
		return false
	}

	parent[LastSegment(path)] = value

	return true
}

// GetIndexed resolves a path whose segments may index sequences,
// "parent[1].child". Unlike Get it distinguishes a miss, reported as a
// *MissError, from an empty value.
func GetIndexed(rec any, path string) (any, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, &MissError{Path: path, Reason: err.Error()}
	}

	cur := rec
	for _, seg := range p.Segments {
		next, ok := child(cur, seg.Name)
		if !ok {
			return nil, &MissError{Path: path, Segment: seg.Name, Reason: "not found"}
		}

		if seg.Index >= 0 {
			list, ok := next.([]any)
			if !ok {
				return nil, &MissError{Path: path, Segment: seg.Name, Reason: "not a sequence"}
			}

			if seg.Index >= len(list) {
				return nil, &MissError{Path: path, Segment: seg.Name,
					Reason: fmt.Sprintf("index %d out of range [0,%d)", seg.Index, len(list))}
			}

			next = list[seg.Index]
		}

		cur = next
	}

	return cur, nil
}

// child returns the entry named key of a record, or the element at a
// numeric key of a sequence.
func child(container any, key string) (any, bool) {
	switch x := container.(type) {
	case Record:
		v, ok := x[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(x) {
			return nil, false
		}

		return x[i], true
	default:
		return nil, false
	}
}
