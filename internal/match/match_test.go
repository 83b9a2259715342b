package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"processor", "procesor", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "orderid", NormalizeName("Order_Id"))
	assert.Equal(t, "orderid", NormalizeName("order-id"))
	assert.Equal(t, "orderid", NormalizeName("orderId"))
	assert.Equal(t, "data.city", NormalizeName("data.City"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("sortType", "sort_type"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.Greater(t, Similarity("currency", "curency"), 0.8)
}

func TestSuggest(t *testing.T) {
	known := []string{"processor", "renderer", "process", "percent"}

	assert.Equal(t, []string{"processor", "process"}, Suggest("procesor", known, 2))
	assert.Equal(t, []string{"processor"}, Suggest("procesor", known, 1))
	assert.Nil(t, Suggest("zzz", known, 3))
	assert.Nil(t, Suggest("anything", nil, 3))
}

func TestCandidateList_Ties(t *testing.T) {
	got := Rank("ab", []string{"ac", "aa", "ab"})

	assert.Equal(t, []string{"ab", "aa", "ac"}, got.Names())
	assert.Len(t, got.Top(10), 3)
	assert.Empty(t, got.AboveThreshold(1.1))
}
