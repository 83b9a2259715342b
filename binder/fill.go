package binder

import (
	"encoding/json"
	"strings"

	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

// defaultSelectKey is the key of record values matched against select options.
const defaultSelectKey = "id"

// fillData pushes data into the fields under parent that belong to sc.
// Collections are left to fillCollections. idx is the 1-based position of
// the instance being filled, 0 at the root.
func (b *Binder) fillData(parent *node.Node, data any, sc Scope, idx int) {
	eachField(parent, func(n *node.Node) {
		rel, ok := sc.Rel(n.Name)
		if !ok {
			return
		}

		v := record.Get(data, rel, false, idx)

		switch {
		case n.Type == node.TypeLabel && (n.Display != "" || n.Renderer != ""):
			n.Value = b.renderObject(n, v)
		case n.Type == node.TypeLabel:
			n.Value = b.codec.Present(n.Kind, v)
		case n.Type == node.TypeSelect:
			b.fillSelect(n, v)
		default:
			b.fillInput(n, v)
		}
	})
}

func (b *Binder) fillInput(n *node.Node, v any) {
	if n.Kind == primitive.KindBlob && n.Flags.Has(options.FlagFile) {
		// uploads are attached by SetBlob, never from data
		b.baseline(n)
		return
	}

	_, isRecord := v.(record.Record)

	switch {
	case n.Kind == primitive.KindObject:
		n.Object = v
		n.Value = b.display(n, v)
	case n.Kind == primitive.KindJSObject:
		n.Object = v
		n.Value = ""
	case n.Kind == primitive.KindBlob:
		n.Blob = v
	case isRecord && n.Kind != primitive.KindCheckbox:
		// a record in a plain field travels out of band
		n.Object = v
		n.Value = b.display(n, v)
	case n.Kind == primitive.KindCheckbox && n.Flags.Has(options.FlagArray):
		n.Checked = b.arrayContains(n, v)
	case n.Kind == primitive.KindCheckbox:
		n.Checked = v == true || v == "true"
	case n.Flags.Has(options.FlagArray):
		n.Value = ""
		if list, ok := v.([]any); ok && n.Slot != nil && *n.Slot >= 0 && *n.Slot < len(list) {
			n.Value = b.codec.Present(n.Kind, list[*n.Slot])
		}
	default:
		n.Value = b.codec.Present(n.Kind, v)
	}

	b.baseline(n)
}

func (b *Binder) fillSelect(n *node.Node, v any) {
	key := n.SelectKey
	if key == "" {
		key = defaultSelectKey
	}

	switch x := v.(type) {
	case record.Record:
		n.Value = primitive.Stringify(x[key])
	default:
		if n.Kind == primitive.KindBool {
			n.Value = primitive.Stringify(primitive.Truthy(v))
		} else {
			n.Value = primitive.Stringify(v)
		}
	}

	if len(n.Options) > 0 && n.SelectedOption() == nil {
		n.Value = n.Options[0].Value
	}

	if n.Kind == primitive.KindObject {
		n.Object = v
	}

	b.baseline(n)
}

// display renders an object value through the node's renderer or skin. A
// field with neither shows the stringified value.
func (b *Binder) display(n *node.Node, v any) string {
	if n.Renderer == "" && n.Display == "" {
		return primitive.Stringify(v)
	}

	return b.renderObject(n, v)
}

// renderObject renders v with the named renderer of n, or with its display
// skin: comma separated paths into v and quoted literals, e.g.
// `id, ": ", name`.
func (b *Binder) renderObject(n *node.Node, v any) string {
	if !primitive.Truthy(v) {
		return ""
	}

	if n.Renderer != "" {
		fn, ok := b.cfg.renderers[n.Renderer]
		if !ok {
			b.configMiss("renderer", n.Name, n.Renderer, sortedKeys(b.cfg.renderers))
			return ""
		}

		return fn(v)
	}

	var sb strings.Builder

	for _, part := range splitSkin(n.Display) {
		if lit, ok := unquote(part); ok {
			sb.WriteString(lit)
			continue
		}

		sb.WriteString(primitive.Stringify(record.Get(v, part, false, 0)))
	}

	return sb.String()
}

// splitSkin splits a display skin at commas outside quotes.
func splitSkin(skin string) []string {
	var (
		parts []string
		cur   strings.Builder
		quote rune
	)

	for _, r := range skin {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			if p := strings.TrimSpace(cur.String()); p != "" {
				parts = append(parts, p)
			}

			cur.Reset()

			continue
		}

		cur.WriteRune(r)
	}

	if p := strings.TrimSpace(cur.String()); p != "" {
		parts = append(parts, p)
	}

	return parts
}

func unquote(part string) (string, bool) {
	if len(part) < 2 {
		return "", false
	}

	if q := part[0]; (q == '"' || q == '\'') && part[len(part)-1] == q {
		return part[1 : len(part)-1], true
	}

	return "", false
}

// arrayMember is the value an array checkbox contributes to its sequence:
// the parsed Literal when set, its text otherwise.
func (b *Binder) arrayMember(n *node.Node) any {
	if n.Literal == "" {
		return n.Value
	}

	var v any
	if err := json.Unmarshal([]byte(n.Literal), &v); err != nil {
		b.logger.Debug("array member literal is not JSON", "field", n.Name, "error", err)
		return n.Literal
	}

	return v
}

// memberID is what array membership compares: the IDKey sub-field of a
// record member, the member itself otherwise.
func memberID(n *node.Node, member any) any {
	if n.IDKey == "" {
		return member
	}

	if m, ok := member.(record.Record); ok {
		return m[n.IDKey]
	}

	return member
}

func (b *Binder) arrayContains(n *node.Node, v any) bool {
	return memberIndex(n, v, b.arrayMember(n)) >= 0
}

// memberIndex returns the position of the first element of v matching
// member, or -1.
func memberIndex(n *node.Node, v any, member any) int {
	list, ok := v.([]any)
	if !ok {
		return -1
	}

	want := memberID(n, member)
	for i, e := range list {
		if record.LooseEquals(memberID(n, e), want) {
			return i
		}
	}

	return -1
}
