package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum similarity of a suggestion.
const DefaultThreshold = 0.6

// Candidate is a known name with its similarity to the name looked up.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// Rank scores every known name against name, best first. Ties keep
// alphabetical order so suggestions are deterministic.
func Rank(name string, known []string) CandidateList {
	out := make(CandidateList, 0, len(known))
	for _, k := range known {
		out = append(out, Candidate{Name: k, Score: Similarity(name, k)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// AboveThreshold keeps the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	for i, cand := range c {
		if cand.Score < threshold {
			return c[:i]
		}
	}

	return c
}

// Top keeps at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if len(c) > n {
		return c[:n]
	}

	return c
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Suggest returns up to limit known names close enough to name.
func Suggest(name string, known []string, limit int) []string {
	return Rank(name, known).AboveThreshold(DefaultThreshold).Top(limit).Names()
}
