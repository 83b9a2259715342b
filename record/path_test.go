package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"form-binder/record"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    []record.PathSegment
		wantErr bool
	}{
		{path: "name", want: []record.PathSegment{{Name: "name", Index: -1}}},
		{path: "a.b", want: []record.PathSegment{{Name: "a", Index: -1}, {Name: "b", Index: -1}}},
		{path: "items[2].sku", want: []record.PathSegment{{Name: "items", Index: 2}, {Name: "sku", Index: -1}}},
		{path: "", wantErr: true},
		{path: "a..b", wantErr: true},
		{path: "[1]", wantErr: true},
		{path: "a[x]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			p, err := record.ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments)
			assert.Equal(t, tt.path, p.String())
		})
	}
}

func TestGet(t *testing.T) {
	rec := record.Record{
		"name":    "  Ada ",
		"zero":    0,
		"address": record.Record{"city": "Paris"},
		"tags":    []any{"x", "y"},
		"a.b":     "literal",
	}

	assert.Equal(t, "Ada", record.Get(rec, "name", false, 0))
	assert.Equal(t, 0, record.Get(rec, "zero", false, 0))
	assert.Equal(t, "Paris", record.Get(rec, "address.city", false, 0))
	assert.Equal(t, "y", record.Get(rec, "tags.1", false, 0))
	assert.Equal(t, "literal", record.Get(rec, "a.b", false, 0))
	assert.Equal(t, 3, record.Get(rec, record.IndexPlaceholder, false, 3))
	assert.Equal(t, rec, record.Get(rec, "", false, 0))

	// misses degrade to the empty string sentinel
	assert.Equal(t, "", record.Get(rec, "missing", false, 0))
	assert.Equal(t, "", record.Get(rec, "address.zip.code", false, 0))
	assert.Equal(t, "", record.Get(nil, "name", false, 0))
}

func TestGet_Create(t *testing.T) {
	rec := record.Record{"scalar": "x"}

	got := record.Get(rec, "a.b.c", true, 0)

	assert.Equal(t, record.Record{}, got)
	assert.Equal(t, record.Record{"b": record.Record{"c": record.Record{}}}, rec["a"])

	parent := record.GetParent(rec, "scalar.inner", true)
	assert.Equal(t, record.Record{}, parent)
	assert.Equal(t, record.Record{}, rec["scalar"])
}

func TestGetParent(t *testing.T) {
	rec := record.Record{"a": record.Record{"b": 1}}

	assert.Equal(t, rec, record.GetParent(rec, "a", false))
	assert.Equal(t, rec["a"], record.GetParent(rec, "a.b", false))
	assert.Equal(t, "", record.GetParent(rec, "x.y", false))
}

func TestSet(t *testing.T) {
	rec := record.Record{}

	assert.True(t, record.Set(rec, "a.b", 1))
	assert.True(t, record.Set(rec, "c", "x"))
	assert.Equal(t, record.Record{"a": record.Record{"b": 1}, "c": "x"}, rec)
}

func TestGetIndexed(t *testing.T) {
	rec := record.Record{
		"lines": []any{
			record.Record{"qty": 2},
			record.Record{"qty": 5},
		},
		"flag": true,
	}

	v, err := record.GetIndexed(rec, "lines[1].qty")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = record.GetIndexed(rec, "flag")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	for _, path := range []string{"lines[2].qty", "flag[0]", "nope", "lines[x]", "lines[0].missing"} {
		v, err := record.GetIndexed(rec, path)
		assert.Nil(t, v, path)

		var miss *record.MissError
		assert.ErrorAs(t, err, &miss, path)
	}
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "c", record.LastSegment("a.b.c"))
	assert.Equal(t, "a", record.LastSegment("a"))
}
