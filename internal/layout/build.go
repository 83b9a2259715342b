package layout

import (
	"fmt"

	"form-binder/binder"
	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
)

// Build validates f and turns its fields into a root group node.
func Build(f *File) (*node.Node, error) {
	if err := Validate(f).Error(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	root := node.NewGroup()
	for i := range f.Fields {
		root.Append(buildElement(&f.Fields[i]))
	}

	return root, nil
}

// Options translates the top-level settings of f into binder options.
func (f *File) Options() []binder.Option {
	var opts []binder.Option

	if f.Prefix != nil {
		opts = append(opts, binder.WithPrefix(*f.Prefix))
	}

	if f.TrackChanges != nil {
		opts = append(opts, binder.WithTracking(*f.TrackChanges))
	}

	if f.SkipEmpty {
		opts = append(opts, binder.WithSkipEmpty(true))
	}

	if f.ValidateHidden != nil {
		opts = append(opts, binder.WithValidateHidden(*f.ValidateHidden))
	}

	return opts
}

// buildElement assumes e passed validation.
func buildElement(e *Element) *node.Node {
	typ, _ := node.ParseType(e.Type)
	kind, _ := primitive.ParseKind(e.Kind)
	flags, _ := options.ParseFlags(e.Flags)

	var n *node.Node

	switch typ {
	case node.TypeGroup:
		n = node.NewGroup(buildChildren(e.Fields)...)

	case node.TypeCollection:
		n = node.NewCollection(e.Name, buildChildren(e.Fields)...)
		n.Flags = flags
		n.Prefill = e.Prefill

		if e.Sort != nil {
			n.Sort = node.Sort{Field: e.Sort.Field, Type: node.SortType(e.Sort.Type), Desc: e.Sort.Desc}
		}

	case node.TypeSelect:
		n = node.NewSelect(e.Name, buildOptions(e.Options)...)
		n.Kind = kind
		n.Flags = flags
		n.SelectKey = e.SelectKey

	case node.TypeLabel:
		n = node.NewLabel(e.Name, kind)
		n.Flags = flags

	default:
		n = node.NewInput(e.Name, kind, flags)
		n.Value = e.Value
		n.Slot = e.Slot
		n.Literal = e.Literal
		n.IDKey = e.IDKey
	}

	n.Display = e.Display
	n.Renderer = e.Renderer
	n.Processor = e.Processor

	if e.HasCondition() {
		n.Condition = &node.Condition{Show: e.Show, Hide: e.Hide, Eval: e.Eval}
	}

	return n
}

func buildChildren(elems []Element) []*node.Node {
	out := make([]*node.Node, 0, len(elems))
	for i := range elems {
		out = append(out, buildElement(&elems[i]))
	}

	return out
}

func buildOptions(defs []OptionDef) []node.Option {
	out := make([]node.Option, 0, len(defs))

	for _, d := range defs {
		opt := node.Option{Value: d.Value, Label: d.Label}
		if d.Record != nil {
			opt.Record = d.Record
		}

		out = append(out, opt)
	}

	return out
}
