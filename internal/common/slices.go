package common

// IsEmpty reports whether s has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Single returns the only element of s, and false when s has zero or
// several elements.
func Single[S ~[]E, E any](s S) (E, bool) {
	if len(s) != 1 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// First returns the first element of s, and false when s is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if IsEmpty(s) {
		var zero E
		return zero, false
	}

	return s[0], true
}
