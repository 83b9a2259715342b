package binder

import (
	"fmt"
	"strconv"

	"form-binder/node"
	"form-binder/primitive"
)

// state is the tracked state of a field: the checked flag of checkboxes,
// the attached file of blobs, the printed value of objects, the text of
// everything else.
func state(n *node.Node) string {
	switch n.Kind {
	case primitive.KindCheckbox:
		return strconv.FormatBool(n.Checked)
	case primitive.KindBlob:
		return n.BlobName
	case primitive.KindObject, primitive.KindJSObject:
		return fmt.Sprint(n.Object)
	default:
		return n.Value
	}
}

func (b *Binder) baseline(n *node.Node) {
	n.Baseline = state(n)
	n.Dirty = false
}

// Change marks n dirty when its live state differs from the state it was
// filled with. The view layer calls it after every edit.
func (b *Binder) Change(n *node.Node) {
	if !b.cfg.tracking {
		return
	}

	n.Dirty = state(n) != n.Baseline
}

// SetValue edits the text of a field.
func (b *Binder) SetValue(n *node.Node, value string) {
	n.Value = value
	b.Change(n)
}

// SetChecked edits the checked state of a checkbox.
func (b *Binder) SetChecked(n *node.Node, checked bool) {
	n.Checked = checked
	b.Change(n)
}

// SetObject replaces the out of band value of a field and re-renders it.
func (b *Binder) SetObject(n *node.Node, value any) {
	n.Object = value
	if n.Display != "" || n.Renderer != "" {
		n.Value = b.renderObject(n, value)
	}

	b.Change(n)
}

// SetBlob attaches a file read by an upload collaborator. A later call
// replaces the earlier payload.
func (b *Binder) SetBlob(n *node.Node, name string, data any) {
	n.Blob = data
	n.BlobName = name
	b.Change(n)
}

// Changed reports whether any field, or the instance list of any
// collection, changed since the last fill or ResetChanged.
func (b *Binder) Changed() bool {
	if !b.cfg.tracking {
		return false
	}

	changed := false

	b.eachNode(func(n *node.Node) {
		if n.Dirty {
			changed = true
		}
	})

	return changed
}

// ResetChanged takes the live state of every field as its new baseline.
func (b *Binder) ResetChanged() {
	b.eachNode(func(n *node.Node) {
		if n.Type.IsField() {
			b.baseline(n)
		} else {
			n.Dirty = false
		}
	})
}
