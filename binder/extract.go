package binder

import (
	"reflect"
	"slices"
	"strings"

	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

// extraction is the state of one Extract pass.
type extraction struct {
	appended map[arrayKey]bool
}

type arrayKey struct {
	parent uintptr
	key    string
}

func newExtraction() *extraction {
	return &extraction{appended: map[arrayKey]bool{}}
}

// firstAppend reports whether key of parent is appended to for the first
// time in this pass. The baseline copy of the sequence is dropped then, so
// plain array fields rebuild it instead of duplicating it.
func (x *extraction) firstAppend(parent record.Record, key string) bool {
	k := arrayKey{parent: reflect.ValueOf(parent).Pointer(), key: key}
	if x.appended[k] {
		return false
	}

	x.appended[k] = true

	return true
}

// recordFromFields writes the fields under start that belong to sc into
// rec and returns it. The element bound to an instance is merged in first,
// so keys without a field survive. A field named exactly like the scope
// replaces the whole element.
func (b *Binder) recordFromFields(x *extraction, start *node.Node, sc Scope, rec any) any {
	switch bound := start.Bound.(type) {
	case nil:
	case record.Record:
		if m, ok := rec.(record.Record); ok {
			record.Merge(m, bound)
		}
	case []any:
	default:
		rec = bound
	}

	done := false

	start.Walk(func(n *node.Node) bool {
		if done || (n.Type == node.TypeCollection && n != start) {
			return false
		}

		if n.Type != node.TypeInput && n.Type != node.TypeSelect {
			return true
		}

		if n.Kind == primitive.KindTransient {
			return true
		}

		rel, ok := sc.Rel(n.Name)
		if !ok {
			return true
		}

		b.validate(n)

		v, keep := b.fieldValue(n)
		if !keep {
			return true
		}

		if rel == "" {
			rec = v
			done = true

			return false
		}

		if m, ok := rec.(record.Record); ok {
			b.assign(x, m, rel, n, v)
		}

		return true
	})

	return rec
}

// fieldValue converts the live state of n to its record value. It reports
// false when the field is left out of the record.
func (b *Binder) fieldValue(n *node.Node) (any, bool) {
	switch {
	case n.Kind == primitive.KindJSObject:
		return record.Clone(n.Object), true
	case n.Kind == primitive.KindBlob:
		return n.Blob, true
	case n.Kind == primitive.KindCheckbox && n.Flags.Has(options.FlagArray):
		return b.arrayMember(n), true
	case n.Kind == primitive.KindCheckbox:
		return n.Checked, true
	case n.Kind == primitive.KindObject:
		v := record.Clone(n.Object)
		if n.Type == node.TypeSelect {
			if opt := n.SelectedOption(); opt != nil && opt.Record != nil {
				v = record.Clone(opt.Record)
			}
		}

		return b.process(n, v), true
	}

	if _, ok := n.Object.(record.Record); ok && n.Type == node.TypeInput {
		return b.process(n, record.Clone(n.Object)), true
	}

	if b.cfg.skipEmpty && strings.TrimSpace(n.Value) == "" {
		return nil, false
	}

	return b.codec.Extract(n.Kind, n.Flags, n.Value), true
}

func (b *Binder) process(n *node.Node, v any) any {
	if n.ProcessorFunc != nil {
		return n.ProcessorFunc(v)
	}

	if n.Processor == "" {
		return v
	}

	fn, ok := b.cfg.processors[n.Processor]
	if !ok {
		b.configMiss("processor", n.Name, n.Processor, sortedKeys(b.cfg.processors))
		return v
	}

	return fn(v)
}

// assign writes v at rel. Array fields add to the sequence at rel instead:
// checkboxes toggle their member, slotted fields overwrite their slot, other
// fields append.
func (b *Binder) assign(x *extraction, rec record.Record, rel string, n *node.Node, v any) {
	parent, ok := record.GetParent(rec, rel, true).(record.Record)
	if !ok {
		b.logger.Debug("field path crosses a sequence", "field", n.Name)
		return
	}

	key := record.LastSegment(rel)
	if !n.Flags.Has(options.FlagArray) {
		parent[key] = v
		return
	}

	list, _ := parent[key].([]any)

	switch {
	case n.Kind == primitive.KindCheckbox:
		i := memberIndex(n, list, v)
		if n.Checked && i < 0 {
			list = append(list, v)
		} else if !n.Checked && i >= 0 {
			list = slices.Delete(list, i, i+1)
		}
	case n.Slot != nil && *n.Slot >= 0:
		for len(list) <= *n.Slot {
			list = append(list, nil)
		}

		list[*n.Slot] = v
	default:
		if x.firstAppend(parent, key) {
			list = nil
		}

		list = append(list, v)
	}

	if list == nil {
		list = []any{}
	}

	parent[key] = list
}
