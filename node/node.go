// Package node models the field tree a binder synchronizes with a record.
//
// A tree is made of groups, inputs, selects, labels and collections. Fields
// address the record through their Name, a dot-notation path qualified by
// the scope the field lives in ("data.address.city" at the root scope,
// "items.sku" inside the instances of a collection named "data.items").
//
// Collections hold a template, captured once from their initial children,
// and one instance subtree per element of the bound sequence.
package node

import (
	"github.com/google/uuid"

	"form-binder/options"
	"form-binder/primitive"
)

// Node is one element of a field tree.
type Node struct {
	ID    string
	Type  TypeEnum
	Name  string
	Kind  primitive.KindEnum
	Flags options.FlagEnum

	Slot          *int          // indexed array field: read and write this slot only
	Literal       string        // JSON literal of an array checkbox member
	IDKey         string        // array checkbox members compare on this sub-key
	SelectKey     string        // select: key of a record value matched against option values
	Display       string        // object skin, e.g. `id, ": ", name`
	Renderer      string        // named renderer for objects
	Processor     string        // named processor applied to objects before writing
	ProcessorFunc func(any) any // processor attached directly, wins over Processor
	Prefill       string        // collection: JSON literal bound to added instances
	Sort          Sort
	Condition     *Condition
	Options       []Option

	Parent   *Node
	Children []*Node

	Value    string // text state of inputs and labels, selected value of selects
	Checked  bool
	Object   any // out of band value of object, jsobject and POJO-carrying fields
	Blob     any
	BlobName string
	Invalid  bool
	Hidden   bool
	Dirty    bool
	Baseline string // tracked state at the last fill
	Bound    any    // element a collection instance represents

	template *Node
}

// NewGroup creates a group holding children.
func NewGroup(children ...*Node) *Node {
	n := &Node{Type: TypeGroup}
	n.Append(children...)

	return n
}

// NewInput creates an input field.
func NewInput(name string, kind primitive.KindEnum, flags options.FlagEnum) *Node {
	return &Node{Type: TypeInput, Name: name, Kind: kind, Flags: flags}
}

// NewSelect creates a select field; the first option is the default choice.
func NewSelect(name string, opts ...Option) *Node {
	return &Node{Type: TypeSelect, Name: name, Kind: primitive.KindText, Options: opts}
}

// NewLabel creates a display-only field.
func NewLabel(name string, kind primitive.KindEnum) *Node {
	return &Node{Type: TypeLabel, Name: name, Kind: kind}
}

// NewCollection creates a collection whose children become its template.
func NewCollection(name string, template ...*Node) *Node {
	n := &Node{Type: TypeCollection, Name: name}
	n.Append(template...)

	return n
}

// Append adds children at the end and links them to n.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c.Parent != nil {
			c.Detach()
		}

		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// Detach removes n from its parent.
func (n *Node) Detach() {
	p := n.Parent
	if p == nil {
		return
	}

	if i := n.Index(); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}

	n.Parent = nil
}

// Index returns the position of n among its siblings, -1 without parent.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}

	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}

	return -1
}

// Swap exchanges two children of n.
func (n *Node) Swap(i, j int) {
	n.Children[i], n.Children[j] = n.Children[j], n.Children[i]
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.Children {
		c.Parent = nil
	}

	n.Children = nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the descendants of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}

	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node named name in document order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node

	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}

		if c.Name == name && c != n {
			found = c
			return false
		}

		return true
	})

	return found
}

// FindAll returns every node named name in document order.
func (n *Node) FindAll(name string) []*Node {
	var found []*Node

	n.Walk(func(c *Node) bool {
		if c.Name == name && c != n {
			found = append(found, c)
		}

		return true
	})

	return found
}

// IsInstance reports whether n is an instance subtree of a collection.
func (n *Node) IsInstance() bool {
	return n.Parent != nil && n.Parent.Type == TypeCollection
}

// Instance returns the closest collection instance containing n, or nil.
func (n *Node) Instance() *Node {
	for c := n; c != nil; c = c.Parent {
		if c.IsInstance() {
			return c
		}
	}

	return nil
}

// SelectedOption returns the option matching Value, or nil.
func (n *Node) SelectedOption() *Option {
	for i := range n.Options {
		if n.Options[i].Value == n.Value {
			return &n.Options[i]
		}
	}

	return nil
}

// Template returns the captured template of a collection, or nil.
func (n *Node) Template() *Node {
	return n.template
}

// CaptureTemplate detaches the children of a collection into its template,
// dropping their identities so clones never share an ID. It reports false
// when the template was already captured or n is not a collection.
func (n *Node) CaptureTemplate() bool {
	if n.Type != TypeCollection || n.template != nil {
		return false
	}

	tmpl := &Node{Type: TypeGroup}
	for _, c := range n.Children {
		c.Parent = tmpl
	}

	tmpl.Children = n.Children
	n.Children = nil

	tmpl.Walk(func(c *Node) bool {
		c.ID = ""
		return true
	})

	n.template = tmpl

	return true
}

// NewInstance clones the template into a fresh instance bound to element.
// It returns nil while no template is captured. The instance is not
// appended to n.
func (n *Node) NewInstance(element any) *Node {
	if n.template == nil {
		return nil
	}

	inst := n.template.Clone()
	inst.ID = uuid.NewString()
	inst.Bound = element

	return inst
}

// Clone returns a deep copy of the subtree rooted at n. The copy has no
// parent; templates of captured collections are shared, since they are
// never mutated.
func (n *Node) Clone() *Node {
	cp := *n
	cp.Parent = nil
	cp.Children = nil

	if n.Slot != nil {
		slot := *n.Slot
		cp.Slot = &slot
	}

	if n.Condition != nil {
		cond := *n.Condition
		cp.Condition = &cond
	}

	if n.Options != nil {
		cp.Options = append([]Option(nil), n.Options...)
	}

	for _, c := range n.Children {
		cp.Append(c.Clone())
	}

	return &cp
}
