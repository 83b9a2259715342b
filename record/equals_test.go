package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"form-binder/record"
)

func TestEquals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		id   string
		want bool
	}{
		{"zero against absent", record.Record{"a": 0}, record.Record{}, "", true},
		{"one against absent", record.Record{"a": 1}, record.Record{}, "", false},
		{"numeric string", record.Record{"a": "0"}, record.Record{"a": 0}, "", true},
		{"zero against numeric string", record.Record{"a": 0}, record.Record{"a": "0"}, "", true},
		{"both nil", nil, nil, "", true},
		{"nil and empty sequence", nil, []any{}, "", true},
		{"empty record and nil", record.Record{}, nil, "", true},
		{"float tolerance", record.Record{"a": 0.1 + 0.2}, record.Record{"a": 0.3}, "", true},
		{"number mismatch", record.Record{"a": 1.5}, record.Record{"a": 1.6}, "", false},
		{"int and float", record.Record{"a": 3}, record.Record{"a": 3.0}, "", true},
		{"string mismatch", record.Record{"a": "ab"}, record.Record{"a": "abc"}, "", false},
		{"string equal", record.Record{"a": "ab"}, record.Record{"a": "ab"}, "", true},
		{"bool mismatch", record.Record{"a": true}, record.Record{"a": false}, "", false},
		{"false against absent", record.Record{"a": false}, record.Record{}, "", true},
		{"blank against value", record.Record{"a": ""}, record.Record{"a": "x"}, "", false},
		{"only in b", record.Record{}, record.Record{"b": "x"}, "", false},
		{"only in b blank", record.Record{}, record.Record{"b": ""}, "", true},
		{
			"nested equal",
			record.Record{"n": record.Record{"x": 1, "y": []any{"a"}}},
			record.Record{"n": record.Record{"x": 1.0, "y": []any{"a"}}},
			"", true,
		},
		{
			"nested differ",
			record.Record{"n": record.Record{"x": 1}},
			record.Record{"n": record.Record{"x": 2}},
			"", false,
		},
		{"empty record against text", record.Record{"x": record.Record{}}, record.Record{"x": "hello"}, "", false},
		{"text against empty record", record.Record{"x": "hello"}, record.Record{"x": record.Record{}}, "", false},
		{"empty sequence against number", record.Record{"x": []any{}}, record.Record{"x": 5.0}, "", false},
		{"number against empty sequence", record.Record{"x": 5.0}, record.Record{"x": []any{}}, "", false},
		{"empty record against blank", record.Record{"x": record.Record{}}, record.Record{"x": ""}, "", true},
		{"record of zeros against blank", record.Record{"x": record.Record{"k": 0}}, record.Record{"x": ""}, "", true},
		{"top level text against record", "hello", record.Record{}, "", false},
		{"top level record against number", record.Record{"a": 1}, 5, "", false},
		{
			"sequence longer in b",
			record.Record{"s": []any{"a"}},
			record.Record{"s": []any{"a", "b"}},
			"", false,
		},
		{
			"id field shortcut",
			record.Record{"n": record.Record{"id": 7, "name": "old"}},
			record.Record{"n": record.Record{"id": 7, "name": "new"}},
			"id", true,
		},
		{
			"id field differs falls back to deep",
			record.Record{"n": record.Record{"id": 7, "name": "x"}},
			record.Record{"n": record.Record{"id": 8, "name": "x"}},
			"id", false,
		},
		{
			"without id field compares deep",
			record.Record{"n": record.Record{"id": 7, "name": "old"}},
			record.Record{"n": record.Record{"id": 7, "name": "new"}},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, record.Equals(tt.a, tt.b, tt.id))
		})
	}
}

func TestCloneAndMerge(t *testing.T) {
	src := record.Record{"a": record.Record{"b": []any{1, record.Record{"c": 2}}}}

	cp := record.Clone(src).(record.Record)
	cp["a"].(record.Record)["b"].([]any)[1].(record.Record)["c"] = 3

	assert.Equal(t, 2, src["a"].(record.Record)["b"].([]any)[1].(record.Record)["c"])

	dst := record.Record{"a": record.Record{"keep": true}, "x": 1}
	record.Merge(dst, src)

	assert.Equal(t, true, dst["a"].(record.Record)["keep"])
	assert.Equal(t, 1, dst["x"])
	assert.Len(t, dst["a"].(record.Record)["b"], 2)

	assert.Equal(t, record.Record{}, record.CloneRecord(nil))
}
