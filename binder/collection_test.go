package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

type recordingListener struct {
	NopListener

	added, posted, deleted []any
	focused                []*node.Node
}

func (l *recordingListener) AddCollection(_, _ *node.Node, element any) {
	l.added = append(l.added, element)
}

func (l *recordingListener) PostAddCollection(_, inst *node.Node, element any) {
	l.posted = append(l.posted, element)
}

func (l *recordingListener) DeleteCollection(_, _ *node.Node, element any) {
	l.deleted = append(l.deleted, element)
}

func (l *recordingListener) Focus(n *node.Node) {
	l.focused = append(l.focused, n)
}

func names(col *node.Node, field string) []string {
	out := make([]string, 0, len(col.Children))
	for _, inst := range col.Children {
		out = append(out, inst.Find(field).Value)
	}

	return out
}

func TestCollection_TemplateCapturedOnce(t *testing.T) {
	root := personForm()
	newBinder(t, root)

	col := root.Find("data.items")
	require.NotNil(t, col.Template())
	assert.Empty(t, col.Children)
	assert.Nil(t, root.Find("items.sku"), "template fields are not part of the tree")
	assert.False(t, col.CaptureTemplate())
}

func TestCollection_AddPrunesEmpty(t *testing.T) {
	root := personForm()
	b := newBinder(t, root)
	b.Fill(person())

	inst, err := b.Add("data.items", nil)
	require.NoError(t, err)
	require.Len(t, inst, 1)
	assert.Len(t, root.Find("data.items").Children, 3)

	requireRecord(t, person(), b.Extract(false))
}

func TestCollection_AddPrefill(t *testing.T) {
	col := node.NewCollection("data.items",
		input("items.sku", primitive.KindText),
		input("items.qty", primitive.KindNumber),
	)
	col.Prefill = `{"qty": 1}`

	b := newBinder(t, node.NewGroup(col))

	_, err := b.Add("data.items", nil)
	require.NoError(t, err)
	_, err = b.Add("data.items", `{"sku": "json"}`)
	require.NoError(t, err)
	_, err = b.Add("data.items", record.Record{"sku": "literal"})
	require.NoError(t, err)
	_, err = b.Add("data.items", PrefillFunc(func(element record.Record, _ *node.Node) {
		element["sku"] = "func"
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"", "json", "literal", "func"}, names(col, "items.sku"))
	assert.Equal(t, "1", col.Children[0].Find("items.qty").Value)

	requireRecord(t, record.Record{"items": []any{
		record.Record{"sku": "", "qty": float64(1)},
		record.Record{"sku": "json", "qty": nil},
		record.Record{"sku": "literal", "qty": nil},
		record.Record{"sku": "func", "qty": nil},
	}}, b.Extract(false))
}

func TestCollection_AddUnknown(t *testing.T) {
	b := newBinder(t, personForm())

	_, err := b.Add("data.nope", nil)
	require.ErrorIs(t, err, ErrUnknownCollection)

	_, err = b.Insert("items", record.Record{})
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestCollection_Insert(t *testing.T) {
	root := personForm()
	calls := 0
	b := newBinder(t, root, WithBeforeInsert(func(rec any) any {
		calls++

		m, _ := rec.(record.Record)
		if m["sku"] == "veto" {
			return nil
		}

		m["qty"] = float64(9)

		return m
	}))
	b.Fill(person())

	inst, err := b.Insert("data.items", record.Record{"sku": "veto"})
	require.NoError(t, err)
	assert.Empty(t, inst)

	inst, err = b.Insert("data.items", record.Record{"sku": "c-3"})
	require.NoError(t, err)
	require.Len(t, inst, 1)
	assert.Equal(t, "9", inst[0].Find("items.qty").Value)
	assert.Equal(t, 2, calls)
	assert.False(t, inst[0].Find("items.sku").Dirty, "inserted instances are filled, not edited")

	items := b.Extract(false)["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, record.Record{"sku": "c-3", "qty": float64(9)}, items[2])
}

func TestCollection_Remove(t *testing.T) {
	root := personForm()
	l := &recordingListener{}
	b := newBinder(t, root, WithListener(l))
	b.Fill(person())

	col := root.Find("data.items")
	assert.Len(t, l.added, 2)
	assert.Len(t, l.posted, 2)

	first := col.Children[0]
	require.True(t, b.Remove(first))
	assert.False(t, b.Remove(first), "already detached")
	assert.False(t, b.Remove(root.Find("data.name")), "not an instance")

	assert.Equal(t, []any{record.Record{"sku": "a-1", "qty": float64(1)}}, l.deleted)
	assert.True(t, b.Changed())

	rec := b.Extract(false)
	assert.Equal(t, []any{record.Record{"sku": "b-2", "qty": float64(2)}}, rec["items"])
}

func sortedForm(s node.Sort) (*node.Node, *node.Node) {
	col := node.NewCollection("data.rows", input("rows.name", primitive.KindText))
	col.Flags = options.FlagSort
	col.Sort = s

	return node.NewGroup(col), col
}

func rows(pairs ...any) []any {
	out := make([]any, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, record.Record{"name": pairs[i], "p": pairs[i+1]})
	}

	return out
}

func TestCollection_Sort(t *testing.T) {
	tests := []struct {
		name string
		sort node.Sort
		rows []any
		want []string
	}{
		{"numeric ascending", node.Sort{Field: "p"}, rows("c", 3, "a", 1, "b", 2), []string{"a", "b", "c"}},
		{"numeric descending", node.Sort{Field: "p", Desc: true}, rows("c", 3, "a", 1, "b", 2), []string{"c", "b", "a"}},
		{"numeric strings", node.Sort{Field: "p", Type: node.SortNumberExplicit}, rows("ten", "10", "two", "2"), []string{"two", "ten"}},
		{"case insensitive", node.Sort{Field: "name", Type: node.SortAlphaInsensitive}, rows("b", 0, "A", 0, "c", 0), []string{"A", "b", "c"}},
		{"no field", node.Sort{}, rows("c", 3, "a", 1), []string{"c", "a"}},
		{"unknown type", node.Sort{Field: "p", Type: "weird"}, rows("c", 3, "a", 1), []string{"c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, col := sortedForm(tt.sort)
			b := newBinder(t, root)

			in := record.Record{"rows": tt.rows}
			b.Fill(in)

			assert.Equal(t, tt.want, names(col, "rows.name"))
			assert.Equal(t, tt.rows, in["rows"], "the caller's record is not reordered")
		})
	}
}

func TestCollection_SortUnknownType(t *testing.T) {
	root, _ := sortedForm(node.Sort{Field: "p", Type: "numbr"})
	b := newBinder(t, root)

	d := b.Diagnostics()
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "unknown_sort", d.Warnings[0].Code)
	assert.Equal(t, []string{"number"}, d.Warnings[0].Suggestions)
}

func TestCollection_SortAlphaWholeElement(t *testing.T) {
	col := node.NewCollection("data.tags", input("tags", primitive.KindText))
	col.Flags = options.FlagSort
	col.Sort = node.Sort{Field: "x", Type: node.SortAlpha}

	b := newBinder(t, node.NewGroup(col))
	b.Fill(record.Record{"tags": []any{"pear", "apple", "fig"}})

	assert.Equal(t, []string{"apple", "fig", "pear"}, names(col, "tags"))
	requireRecord(t, record.Record{"tags": []any{"apple", "fig", "pear"}}, b.Extract(false))
}

func TestCollection_MoveAndReorder(t *testing.T) {
	root, col := sortedForm(node.Sort{Field: "p"})
	b := newBinder(t, root)
	b.Fill(record.Record{"rows": rows("a", float64(10), "b", float64(20), "c", float64(30))})

	assert.False(t, b.MoveUp(col.Children[0]))
	assert.False(t, b.MoveDown(col.Children[2]))

	require.True(t, b.MoveDown(col.Children[0]))
	assert.Equal(t, []string{"b", "a", "c"}, names(col, "rows.name"))

	require.True(t, b.MoveUp(col.Children[2]))
	assert.Equal(t, []string{"b", "c", "a"}, names(col, "rows.name"))
	assert.True(t, b.Changed())

	requireRecord(t, record.Record{"rows": rows("b", float64(0), "c", float64(1), "a", float64(2))}, b.Extract(false))
}

func TestCollection_ReorderOnlyNumericAscending(t *testing.T) {
	for _, s := range []node.Sort{
		{Field: "p", Desc: true},
		{Field: "p", Type: node.SortAlphaInsensitive},
		{},
	} {
		root, col := sortedForm(s)
		b := newBinder(t, root)
		b.Fill(record.Record{"rows": rows("a", float64(10), "b", float64(20))})

		assert.False(t, b.Reorder(col))
	}
}

func TestCollection_Nested(t *testing.T) {
	orders := node.NewCollection("data.orders",
		input("orders.ref", primitive.KindText),
		node.NewCollection("orders.lines",
			input("lines.qty", primitive.KindNumber),
			node.NewLabel("lines.$idx", primitive.KindText),
		),
	)
	b := newBinder(t, node.NewGroup(orders))

	rec := record.Record{"orders": []any{
		record.Record{"ref": "o1", "lines": []any{
			record.Record{"qty": float64(1)},
			record.Record{"qty": float64(2)},
		}},
		record.Record{"ref": "o2", "lines": []any{}},
	}}
	b.Fill(rec)

	require.Len(t, orders.Children, 2)

	lines := orders.Children[0].Find("orders.lines")
	require.NotNil(t, lines)
	require.Len(t, lines.Children, 2)
	assert.Equal(t, []string{"1", "2"}, names(lines, "lines.$idx"))

	requireRecord(t, rec, b.Extract(false))

	added := b.AddTo(lines, record.Record{"qty": float64(3)})
	require.NotNil(t, added)
	assert.Equal(t, "3", added.Find("lines.$idx").Value)
	assert.True(t, added.Find("lines.qty").Dirty)

	got := b.Extract(false)
	first := got["orders"].([]any)[0].(record.Record)
	assert.Len(t, first["lines"], 3)
}

func TestCollection_ScalarElements(t *testing.T) {
	col := node.NewCollection("data.tags", input("tags", primitive.KindText))
	b := newBinder(t, node.NewGroup(col))
	b.Fill(record.Record{"tags": []any{"a", "b"}})

	assert.Equal(t, []string{"a", "b"}, names(col, "tags"))

	b.SetValue(col.Children[1].Find("tags"), "c")
	requireRecord(t, record.Record{"tags": []any{"a", "c"}}, b.Extract(false))
}

func TestCollection_Invalid(t *testing.T) {
	root := personForm()
	l := &recordingListener{}
	b := newBinder(t, root, WithListener(l), WithValidator(ValidatorFunc(func(n *node.Node) bool {
		return n.Name != "items.sku" || n.Value != ""
	})))
	b.Fill(person())

	first := root.Find("data.items").Children[0]
	sku := first.Find("items.sku")

	b.SetValue(sku, "")
	assert.Nil(t, b.Extract(false))
	assert.Same(t, sku, b.Focused())
	require.NotEmpty(t, l.focused)
	assert.Same(t, sku, l.focused[len(l.focused)-1])

	rec := b.Extract(true)
	require.NotNil(t, rec)
	assert.Len(t, rec["items"], 2)

	// an instance emptied completely is dropped, and so is its invalid mark
	b.SetValue(first.Find("items.qty"), "")

	rec = b.Extract(false)
	require.NotNil(t, rec)
	assert.Equal(t, []any{record.Record{"sku": "b-2", "qty": float64(2)}}, rec["items"])
	assert.False(t, sku.Invalid)
}
