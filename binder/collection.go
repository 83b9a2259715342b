package binder

import (
	"cmp"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

// ErrUnknownCollection is returned when no collection of the root scope has
// the requested name.
var ErrUnknownCollection = errors.New("unknown collection")

// initCollections captures the template of every collection under root
// that belongs to sc.
func (b *Binder) initCollections(root *node.Node, sc Scope) {
	eachCollection(root, func(col *node.Node) {
		if !sc.Contains(col.Name) {
			return
		}

		if col.CaptureTemplate() {
			b.logger.Debug("captured collection template", "collection", col.Name)
		}
	})
}

// fillCollections fills every collection under parent from the sequence at
// its path in data.
func (b *Binder) fillCollections(parent *node.Node, data any, sc Scope) {
	if !primitive.Truthy(data) {
		return
	}

	eachCollection(parent, func(col *node.Node) {
		rel, ok := sc.Rel(col.Name)
		if !ok || rel == "" {
			return
		}

		col.RemoveChildren()
		col.Dirty = false

		list, ok := record.Get(data, rel, false, 0).([]any)
		if !ok {
			return
		}

		b.fillList(col, list, instanceScope(rel))
	})
}

// fillList creates one instance of col per element of list, sorting list
// in place first when the collection asks for it.
func (b *Binder) fillList(col *node.Node, list []any, sc Scope) {
	if col.Template() == nil {
		b.logger.Debug("collection has no template", "collection", col.Name)
		return
	}

	b.sortElements(col, list)

	for i, element := range list {
		inst := col.NewInstance(element)
		b.cfg.listener.AddCollection(col, inst, element)

		b.fillData(inst, element, sc, i+1)
		b.initCollections(inst, sc)
		b.fillCollections(inst, element, sc)
		col.Append(inst)
		b.evaluate(inst, element, sc)

		b.cfg.listener.PostAddCollection(col, inst, element)
		b.metrics.recordInstance(b.cfg.prefix, "fill")
	}
}

// sortElements orders list for col. A malformed configuration leaves the
// order untouched.
func (b *Binder) sortElements(col *node.Node, list []any) {
	s := col.Sort
	if !col.Flags.Has(options.FlagSort) || s.Field == "" {
		return
	}

	field := func(e any) any { return record.Get(e, s.Field, false, 0) }

	switch {
	case s.Type == node.SortAlpha:
		slices.SortStableFunc(list, func(x, y any) int {
			return strings.Compare(primitive.Stringify(x), primitive.Stringify(y))
		})
	case s.Type == node.SortAlphaInsensitive:
		slices.SortStableFunc(list, func(x, y any) int {
			return strings.Compare(
				strings.ToLower(primitive.Stringify(field(x))),
				strings.ToLower(primitive.Stringify(field(y))))
		})
	case s.Type.IsNumeric():
		slices.SortStableFunc(list, func(x, y any) int {
			fx, _ := primitive.ToNumber(field(x))
			fy, _ := primitive.ToNumber(field(y))

			return cmp.Compare(fx, fy)
		})
	default:
		b.configMiss("sort", col.Name, string(s.Type), sortTypeNames)
		return
	}

	if s.Desc {
		slices.Reverse(list)
	}
}

// collectCollections writes the sequence of every collection under form
// into rec. Instances extracting to an empty element are dropped and their
// invalid marks cleared. It returns the first invalid field of a kept
// instance; the walk stops there unless ignoreInvalid is set.
func (b *Binder) collectCollections(form *node.Node, sc Scope, rec record.Record, ignoreInvalid bool) *node.Node {
	var first *node.Node

	eachCollection(form, func(col *node.Node) {
		if first != nil && !ignoreInvalid {
			return
		}

		rel, ok := sc.Rel(col.Name)
		if !ok || rel == "" {
			return
		}

		parent, ok := record.GetParent(rec, rel, true).(record.Record)
		if !ok {
			return
		}

		child := instanceScope(rel)
		list := []any{}

		for _, inst := range col.Children {
			var element any = record.Record{}

			element = b.recordFromFields(newExtraction(), inst, child, element)
			if m, ok := element.(record.Record); ok {
				b.collectCollections(inst, child, m, true)
			}

			if record.IsEmpty(element) {
				clearInvalid(inst)
				continue
			}

			if bad := firstInvalidField(inst); bad != nil {
				if first == nil {
					first = bad
				}

				if !ignoreInvalid {
					break
				}
			}

			list = append(list, element)
		}

		parent[record.LastSegment(rel)] = list
	})

	return first
}

func clearInvalid(root *node.Node) {
	root.Walk(func(n *node.Node) bool {
		n.Invalid = false
		return true
	})
}

// firstInvalidField returns the first invalid field under root, instances
// of nested collections included.
func firstInvalidField(root *node.Node) *node.Node {
	var first *node.Node

	root.Walk(func(n *node.Node) bool {
		if first != nil {
			return false
		}

		if n.Type.IsField() && n.Invalid {
			first = n
		}

		return first == nil
	})

	return first
}

// Collections returns the collections of the root scope named name.
func (b *Binder) Collections(name string) []*node.Node {
	var out []*node.Node

	for _, root := range b.roots {
		eachCollection(root, func(col *node.Node) {
			if col.Name == name {
				out = append(out, col)
			}
		})
	}

	return out
}

// Add appends a new instance to every root collection named name. The
// instance is bound to prefill: a record or scalar used as is, a JSON
// string, or a PrefillFunc filling an empty record. A nil prefill uses the
// collection's Prefill literal.
func (b *Binder) Add(name string, prefill any) ([]*node.Node, error) {
	cols := b.Collections(name)
	if len(cols) == 0 {
		return nil, ErrUnknownCollection
	}

	var out []*node.Node

	for _, col := range cols {
		if inst := b.AddTo(col, prefill); inst != nil {
			out = append(out, inst)
		}
	}

	return out, nil
}

// AddTo appends a new instance to col, which may be nested in an instance.
// Every field of the new instance starts dirty. It returns nil while col
// has no template.
func (b *Binder) AddTo(col *node.Node, prefill any) *node.Node {
	inst := col.NewInstance(nil)
	if inst == nil {
		return nil
	}

	if prefill == nil && col.Prefill != "" {
		prefill = col.Prefill
	}

	inst.Bound = b.prefill(col, inst, prefill)

	b.bindInstance(col, inst, "add")

	if b.cfg.tracking {
		inst.Walk(func(n *node.Node) bool {
			if n.Type.IsField() {
				n.Dirty = true
			}

			return true
		})
	}

	return inst
}

func (b *Binder) prefill(col, inst *node.Node, prefill any) any {
	switch p := prefill.(type) {
	case nil:
		return record.Record{}
	case PrefillFunc:
		m := record.Record{}
		p(m, inst)

		return m
	case func(record.Record, *node.Node):
		m := record.Record{}
		p(m, inst)

		return m
	case string:
		var v any
		if err := json.Unmarshal([]byte(p), &v); err != nil {
			b.configMiss("prefill", col.Name, p, nil)
			return record.Record{}
		}

		return v
	default:
		return p
	}
}

// Insert appends an instance bound to rec to every root collection named
// name, after the BeforeInsert hook, which may veto it by returning nil.
func (b *Binder) Insert(name string, rec any) ([]*node.Node, error) {
	cols := b.Collections(name)
	if len(cols) == 0 {
		return nil, ErrUnknownCollection
	}

	if b.cfg.beforeInsert != nil {
		if rec = b.cfg.beforeInsert(rec); rec == nil {
			return nil, nil
		}
	}

	var out []*node.Node

	for _, col := range cols {
		inst := col.NewInstance(rec)
		if inst == nil {
			continue
		}

		b.bindInstance(col, inst, "insert")
		out = append(out, inst)
	}

	return out, nil
}

// bindInstance appends inst to col and fills it from its bound element.
func (b *Binder) bindInstance(col, inst *node.Node, source string) {
	element := inst.Bound
	sc := instanceScope(col.Name)

	b.cfg.listener.AddCollection(col, inst, element)

	col.Append(inst)
	b.initCollections(inst, sc)
	b.fillData(inst, element, sc, len(col.Children))
	b.fillCollections(inst, element, sc)
	b.evaluate(inst, element, sc)

	b.cfg.listener.PostAddCollection(col, inst, element)
	b.metrics.recordInstance(b.cfg.prefix, source)
}

// Remove detaches a collection instance. The sequence is rebuilt without it
// on the next Extract.
func (b *Binder) Remove(inst *node.Node) bool {
	if !inst.IsInstance() {
		return false
	}

	col := inst.Parent
	inst.Detach()

	if b.cfg.tracking {
		col.Dirty = true
	}

	b.cfg.listener.DeleteCollection(col, inst, inst.Bound)

	return true
}

// MoveUp swaps inst with its previous sibling and reorders the collection.
func (b *Binder) MoveUp(inst *node.Node) bool {
	i := inst.Index()
	if !inst.IsInstance() || i <= 0 {
		return false
	}

	b.move(inst.Parent, i-1, i)

	return true
}

// MoveDown swaps inst with its next sibling and reorders the collection.
func (b *Binder) MoveDown(inst *node.Node) bool {
	i := inst.Index()
	if !inst.IsInstance() || i+1 >= len(inst.Parent.Children) {
		return false
	}

	b.move(inst.Parent, i, i+1)

	return true
}

func (b *Binder) move(col *node.Node, i, j int) {
	col.Swap(i, j)
	b.Reorder(col)

	if b.cfg.tracking {
		col.Dirty = true
	}
}

// Reorder writes the position 0..n-1 of every instance into the sort field
// of its element. Only ascending numeric sorts are reordered; it reports
// whether anything was written.
func (b *Binder) Reorder(col *node.Node) bool {
	s := col.Sort
	if s.Field == "" || !s.Type.IsNumeric() || s.Desc {
		return false
	}

	for i, inst := range col.Children {
		m, ok := inst.Bound.(record.Record)
		if !ok {
			if inst.Bound != nil {
				continue
			}

			m = record.Record{}
			inst.Bound = m
		}

		record.Set(m, s.Field, float64(i))
	}

	return true
}
