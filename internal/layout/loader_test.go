package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderLayout = `
prefix: order
track_changes: false
fields:
  - name: order.customer
  - name: order.total
    kind: currency
  - name: order.note
    flags: emptynull
  - fields:
      - name: order.express
        kind: checkbox
  - type: select
    name: order.country
    options:
      - nor
      - {value: swe, label: Sweden}
  - type: collection
    name: order.lines
    flags: [sort]
    sort: {field: pos}
    prefill: '{"qty": 1}'
    show: order.customer
    fields:
      - name: lines.sku
      - name: lines.qty
        kind: number
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(orderLayout))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	require.NotNil(t, f.Prefix)
	assert.Equal(t, "order", *f.Prefix)
	require.NotNil(t, f.TrackChanges)
	assert.False(t, *f.TrackChanges)
	assert.Nil(t, f.ValidateHidden)
	require.Len(t, f.Fields, 6)

	// Type defaults
	assert.Equal(t, "input", f.Fields[0].Type)
	assert.Equal(t, "group", f.Fields[3].Type)
	assert.Equal(t, "input", f.Fields[3].Fields[0].Type)

	// Flags as string and as list
	assert.Equal(t, StringOrArray{"emptynull"}, f.Fields[2].Flags)
	assert.Equal(t, StringOrArray{"sort"}, f.Fields[5].Flags)

	// Options as scalar and mapping
	sel := f.Fields[4]
	require.Len(t, sel.Options, 2)
	assert.Equal(t, OptionDef{Value: "nor", Label: "nor"}, sel.Options[0])
	assert.Equal(t, OptionDef{Value: "swe", Label: "Sweden"}, sel.Options[1])

	col := f.Fields[5]
	require.NotNil(t, col.Sort)
	assert.Equal(t, "pos", col.Sort.Field)
	assert.Equal(t, "number", col.Sort.Type)
	assert.Equal(t, `{"qty": 1}`, col.Prefill)
	assert.Equal(t, "order.customer", col.Show.First())
	assert.True(t, col.HasCondition())
	assert.Len(t, col.Fields, 2)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("fields: [name: x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse layout YAML")

	_, err = Parse([]byte("fields:\n  - name: data.a\n    flags: {a: b}\n"))
	require.Error(t, err)
}

func TestStringOrArray(t *testing.T) {
	s := StringOrArray{"a", "b"}
	assert.Equal(t, "a", s.First())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("c"))
	assert.False(t, s.IsEmpty())

	var empty StringOrArray
	assert.Empty(t, empty.First())
	assert.True(t, empty.IsEmpty())
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f, err := Parse([]byte(orderLayout))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, WriteFile(f, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flags: emptynull")
	assert.Contains(t, string(data), "- nor")

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read layout file")
}
