package binder

import (
	"form-binder/node"
	"form-binder/primitive"
	"form-binder/record"
)

// rule updates the visibility of a node from the data of its scope.
type rule func(n *node.Node, data any, sc Scope)

// rules compiles the condition of n in evaluation order: show, hide, then
// the custom predicate. Unknown predicates are reported and skipped.
func (b *Binder) rules(n *node.Node) []rule {
	c := n.Condition
	if c.IsZero() {
		return nil
	}

	var out []rule

	if len(c.Show) > 0 {
		out = append(out, func(n *node.Node, data any, sc Scope) {
			n.Hidden = !b.anyTruthy(data, sc, c.Show)
		})
	}

	if len(c.Hide) > 0 {
		out = append(out, func(n *node.Node, data any, sc Scope) {
			n.Hidden = b.anyTruthy(data, sc, c.Hide)
		})
	}

	if c.Eval != "" {
		fn, ok := b.cfg.conditionals[c.Eval]
		if !ok {
			b.configMiss("conditional", n.Name, c.Eval, sortedKeys(b.cfg.conditionals))
		} else {
			out = append(out, func(n *node.Node, data any, _ Scope) {
				fn(n, data)
			})
		}
	}

	return out
}

// evaluate applies the conditions of the nodes under root against data.
// Collections are evaluated themselves, their instances are not entered.
func (b *Binder) evaluate(root *node.Node, data any, sc Scope) {
	root.Walk(func(n *node.Node) bool {
		for _, r := range b.rules(n) {
			r(n, data, sc)
		}

		return n.Type != node.TypeCollection || n == root
	})
}

// ApplyConditions re-evaluates every condition. Nodes outside collections
// are evaluated against rec, or against the extracted state when rec is
// nil; instance nodes against the current element of their instance.
func (b *Binder) ApplyConditions(rec record.Record) {
	if rec == nil {
		rec, _ = b.extract(true)
	}

	for _, root := range b.roots {
		b.evaluate(root, rec, b.scope)
		b.evaluateInstances(root, b.scope)
	}
}

func (b *Binder) evaluateInstances(parent *node.Node, sc Scope) {
	eachCollection(parent, func(col *node.Node) {
		rel, ok := sc.Rel(col.Name)
		if !ok || rel == "" {
			return
		}

		child := instanceScope(rel)

		for _, inst := range col.Children {
			element := b.recordFromFields(newExtraction(), inst, child, record.Record{})
			if m, ok := element.(record.Record); ok {
				b.collectCollections(inst, child, m, true)
			}

			b.evaluate(inst, element, child)
			b.evaluateInstances(inst, child)
		}
	})
}

// anyTruthy reports whether any path, relative to sc, resolves in data to a
// value other than nil, false, "", 0 or -1. Unresolvable paths count as
// false.
func (b *Binder) anyTruthy(data any, sc Scope, paths []string) bool {
	for _, p := range paths {
		rel, ok := sc.Rel(p)
		if !ok {
			b.logger.Debug("condition path outside scope", "path", p, "scope", sc.Base)
			continue
		}

		v := data
		if rel != "" {
			var err error

			if v, err = record.GetIndexed(data, rel); err != nil {
				b.logger.Debug("condition path not resolved", "path", p, "error", err)
				continue
			}
		}

		if conditionTruthy(v) {
			return true
		}
	}

	return false
}

func conditionTruthy(v any) bool {
	if !primitive.Truthy(v) {
		return false
	}

	if primitive.IsNumeric(v) {
		f, _ := primitive.ToNumber(v)
		return f != -1
	}

	return true
}
