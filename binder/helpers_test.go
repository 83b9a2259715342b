package binder

import (
	"io"
	"log/slog"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBinder(t *testing.T, root *node.Node, opts ...Option) *Binder {
	t.Helper()

	b, err := New(root, append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)

	return b
}

func input(name string, kind primitive.KindEnum) *node.Node {
	return node.NewInput(name, kind, options.FlagNone)
}

func checkbox(name, value string) *node.Node {
	n := node.NewInput(name, primitive.KindCheckbox, options.FlagArray)
	n.Value = value

	return n
}

// personForm binds a person with an address and a list of order items.
func personForm() *node.Node {
	return node.NewGroup(
		input("data.name", primitive.KindText),
		input("data.age", primitive.KindInteger),
		input("data.rate", primitive.KindPercent),
		input("data.active", primitive.KindCheckbox),
		node.NewGroup(
			input("data.address.city", primitive.KindText),
			input("data.address.zip", primitive.KindText),
		),
		node.NewCollection("data.items",
			input("items.sku", primitive.KindText),
			input("items.qty", primitive.KindNumber),
		),
	)
}

func person() record.Record {
	return record.Record{
		"name":   "Ann",
		"age":    float64(42),
		"rate":   0.5,
		"active": true,
		"address": record.Record{
			"city": "Oslo",
			"zip":  "0150",
		},
		"items": []any{
			record.Record{"sku": "a-1", "qty": float64(1)},
			record.Record{"sku": "b-2", "qty": float64(2)},
		},
	}
}

// requireRecord fails with a diff and a dump of the whole record.
func requireRecord(t *testing.T, want, got record.Record) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s\ngot:\n%s", diff, spew.Sdump(got))
	}
}
