package binder

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"form-binder/internal/diagnostic"
	"form-binder/internal/match"
	"form-binder/node"
	"form-binder/primitive"
	"form-binder/record"
)

// Binder binds a field tree to a record.
type Binder struct {
	cfg     config
	scope   Scope
	codec   primitive.Codec
	roots   []*node.Node
	data    record.Record
	focused *node.Node
	diag    diagnostic.Diagnostics
	missed  map[string]bool
	metrics *binderMetrics
	logger  *slog.Logger
}

// New binds root and fills it with the WithData record, or clears it.
func New(root *node.Node, opts ...Option) (*Binder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics, err := newBinderMetrics(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("register binder metrics: %w", err)
	}

	b := &Binder{
		cfg:   cfg,
		scope: Scope{Base: cfg.prefix},
		codec: primitive.Codec{
			Formatter:   cfg.formatter,
			DateLayouts: cfg.dateLayouts,
		},
		missed:  map[string]bool{},
		metrics: metrics,
		logger:  cfg.logger.With("component", "binder", "form", cfg.prefix),
	}

	b.Connect(root)

	return b, nil
}

// Connect adds another tree part sharing this binder, and fills it with the
// current record.
func (b *Binder) Connect(root *node.Node) {
	b.initCollections(root, b.scope)
	b.checkReferences(root)
	b.roots = append(b.roots, root)

	if b.data == nil {
		b.data = record.CloneRecord(b.cfg.data)
	}

	b.fillRoot(root)
}

// Roots returns the bound tree parts, the one given to New first.
func (b *Binder) Roots() []*node.Node {
	return slices.Clone(b.roots)
}

// Fill replaces the baseline record and pushes it into every field. Sorting
// collections mutates the arrays of the stored copy, never rec.
func (b *Binder) Fill(rec record.Record) {
	start := time.Now()

	b.data = record.CloneRecord(rec)
	for _, root := range b.roots {
		b.fillRoot(root)
	}

	b.metrics.recordFill(b.cfg.prefix, time.Since(start))
	b.logger.Debug("filled record", "keys", len(b.data))
}

// Reset fills the tree with an empty record.
func (b *Binder) Reset() {
	b.Fill(record.Record{})
}

// Data returns the baseline record, the one last filled.
func (b *Binder) Data() record.Record {
	return b.data
}

// Extract reads every field back into a copy of the baseline record. It
// returns nil when a field is invalid, unless ignoreInvalid is set. The first
// invalid field becomes Focused and is passed to the listener.
func (b *Binder) Extract(ignoreInvalid bool) record.Record {
	rec, first := b.extract(ignoreInvalid)

	b.focused = first
	if first != nil {
		b.cfg.listener.Focus(first)
	}

	b.metrics.recordExtract(b.cfg.prefix, first != nil)

	if first != nil && !ignoreInvalid {
		b.logger.Debug("extract found invalid fields", "focus", nameOf(first))
		return nil
	}

	return rec
}

// extract builds the record the tree represents and returns it with the
// first invalid field, if any.
func (b *Binder) extract(ignoreInvalid bool) (record.Record, *node.Node) {
	rec := record.CloneRecord(b.data)

	var first *node.Node

	for _, root := range b.roots {
		x := newExtraction()
		if m, ok := b.recordFromFields(x, root, b.scope, rec).(record.Record); ok {
			rec = m
		}

		if bad := b.firstInvalid(root); bad != nil && first == nil {
			first = bad
		}

		if bad := b.collectCollections(root, b.scope, rec, ignoreInvalid); bad != nil && first == nil {
			first = bad
		}
	}

	return rec, first
}

// Clear empties every field in scope and every collection. The baseline
// record is kept.
func (b *Binder) Clear() {
	for _, root := range b.roots {
		b.clear(root)
	}
}

// Equals compares rec with the record the tree currently represents.
func (b *Binder) Equals(rec record.Record, idField string) bool {
	current, _ := b.extract(true)

	return record.Equals(rec, current, idField)
}

// Validate runs the validator on every field, including fields of
// collection instances, and reports whether none is invalid.
func (b *Binder) Validate() bool {
	valid := true

	b.eachNode(func(n *node.Node) {
		if !n.Type.IsField() {
			return
		}

		b.validate(n)

		if n.Invalid {
			valid = false
		}
	})

	return valid
}

// Focused returns the first invalid field found by the last Extract.
func (b *Binder) Focused() *node.Node {
	return b.focused
}

// Diagnostics returns the configuration problems found so far.
func (b *Binder) Diagnostics() diagnostic.Diagnostics {
	return b.diag.Clone()
}

func (b *Binder) fillRoot(root *node.Node) {
	b.clear(root)
	b.fillData(root, b.data, b.scope, 0)
	b.fillCollections(root, b.data, b.scope)
	b.evaluate(root, b.data, b.scope)
}

// clear resets the fields in scope and drops collection instances.
func (b *Binder) clear(root *node.Node) {
	eachField(root, func(n *node.Node) {
		if !b.scope.Contains(n.Name) {
			return
		}

		b.reset(n)
	})

	eachCollection(root, func(col *node.Node) {
		if b.scope.Contains(col.Name) {
			col.RemoveChildren()
			col.Dirty = false
		}
	})
}

func (b *Binder) reset(n *node.Node) {
	n.Object = nil
	n.Blob = nil
	n.BlobName = ""

	switch {
	case n.Kind == primitive.KindCheckbox:
		n.Checked = false
	case n.Type == node.TypeSelect && len(n.Options) > 0:
		n.Value = n.Options[0].Value
	default:
		n.Value = ""
	}

	b.Change(n)
}

// firstInvalid returns the first invalid field outside collection instances.
// Hidden fields count unless the binder ignores them.
func (b *Binder) firstInvalid(root *node.Node) *node.Node {
	var first *node.Node

	root.Walk(func(n *node.Node) bool {
		if first != nil || n.Type == node.TypeCollection {
			return false
		}

		if n.Hidden && !b.cfg.validateHidden {
			return false
		}

		if n.Type.IsField() && n.Invalid {
			first = n
			return false
		}

		return true
	})

	return first
}

func (b *Binder) validate(n *node.Node) {
	if b.cfg.validator != nil {
		n.Invalid = !b.cfg.validator.Validate(n)
	}
}

// eachNode visits every node of every root, instances included.
func (b *Binder) eachNode(fn func(*node.Node)) {
	for _, root := range b.roots {
		root.Walk(func(n *node.Node) bool {
			fn(n)
			return true
		})
	}
}

// configMiss reports a reference to an unregistered name, once per name.
func (b *Binder) configMiss(kind, fieldPath, name string, known []string) {
	key := kind + "\x00" + name
	if b.missed[key] {
		return
	}

	b.missed[key] = true

	suggestions := match.Suggest(name, known, 3)
	b.logger.Warn("unknown "+kind, "name", name, "field", fieldPath, "suggestions", suggestions)
	b.diag.AddWarning("unknown_"+kind, fieldPath, fmt.Sprintf("%s %q is not registered", kind, name), suggestions...)
	b.metrics.recordConfigMiss(b.cfg.prefix, kind)
}

// checkReferences reports named processors, renderers and conditionals the
// binder does not know, before they are first used.
func (b *Binder) checkReferences(root *node.Node) {
	root.Walk(func(n *node.Node) bool {
		if n.Processor != "" && n.ProcessorFunc == nil {
			if _, ok := b.cfg.processors[n.Processor]; !ok {
				b.configMiss("processor", n.Name, n.Processor, sortedKeys(b.cfg.processors))
			}
		}

		if n.Renderer != "" {
			if _, ok := b.cfg.renderers[n.Renderer]; !ok {
				b.configMiss("renderer", n.Name, n.Renderer, sortedKeys(b.cfg.renderers))
			}
		}

		if n.Condition != nil && n.Condition.Eval != "" {
			if _, ok := b.cfg.conditionals[n.Condition.Eval]; !ok {
				b.configMiss("conditional", n.Name, n.Condition.Eval, sortedKeys(b.cfg.conditionals))
			}
		}

		if n.Type == node.TypeCollection && !n.Sort.Type.IsValid() {
			b.configMiss("sort", n.Name, string(n.Sort.Type), sortTypeNames)
		}

		return true
	})

	for _, tmpl := range rootTemplates(root) {
		b.checkReferences(tmpl)
	}
}

// rootTemplates returns the templates captured under root, which Walk does
// not reach.
func rootTemplates(root *node.Node) []*node.Node {
	var out []*node.Node

	root.Walk(func(n *node.Node) bool {
		if tmpl := n.Template(); tmpl != nil {
			out = append(out, tmpl)
		}

		return true
	})

	return out
}

var sortTypeNames = []string{
	string(node.SortNumberExplicit),
	string(node.SortAlpha),
	string(node.SortAlphaInsensitive),
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func nameOf(n *node.Node) string {
	if n == nil {
		return ""
	}

	return n.Name
}

// eachField visits the fields under root, not descending into collections.
func eachField(root *node.Node, fn func(*node.Node)) {
	root.Walk(func(n *node.Node) bool {
		if n.Type == node.TypeCollection && n != root {
			return false
		}

		if n.Type.IsField() {
			fn(n)
		}

		return true
	})
}

// eachCollection visits the collections directly under root, not the ones
// nested in their instances.
func eachCollection(root *node.Node, fn func(*node.Node)) {
	root.Walk(func(n *node.Node) bool {
		if n.Type == node.TypeCollection && n != root {
			fn(n)
			return false
		}

		return true
	})
}
