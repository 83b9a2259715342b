package node

//go:generate go tool stringer -type=TypeEnum -output=type_string.go

type TypeEnum int

const (
	TypeUnknown    TypeEnum = iota
	TypeGroup               // plain container, may carry a Condition
	TypeInput               // editable field bound to one record path
	TypeSelect              // field choosing one of its Options
	TypeLabel               // display-only field, filled but never extracted
	TypeCollection          // repeated template bound to a sequence

	// TypeTotal is a constant that represents the total number of node types defined
	TypeTotal = int(iota)
)

var typeNames = map[string]TypeEnum{
	"group":      TypeGroup,
	"input":      TypeInput,
	"select":     TypeSelect,
	"label":      TypeLabel,
	"collection": TypeCollection,
}

// ParseType resolves a layout node type name.
func ParseType(name string) (TypeEnum, bool) {
	t, ok := typeNames[name]
	return t, ok
}

// TypeNames returns every name accepted by ParseType.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for name := range typeNames {
		names = append(names, name)
	}

	return names
}

// Name returns the layout name of t, empty for TypeUnknown.
func (t TypeEnum) Name() string {
	for name, v := range typeNames {
		if v == t {
			return name
		}
	}

	return ""
}

// IsField reports whether nodes of this type carry a value.
func (t TypeEnum) IsField() bool {
	return t == TypeInput || t == TypeSelect || t == TypeLabel
}

// SortType selects how a collection orders its sequence before filling.
type SortType string

const (
	SortNumber           SortType = ""                // numeric on Sort.Field, the default
	SortNumberExplicit   SortType = "number"          // same as SortNumber
	SortAlpha            SortType = "alpha"           // lexicographic on the whole element
	SortAlphaInsensitive SortType = "alphainsensitiv" // case-insensitive on Sort.Field
)

// IsValid reports whether t is one of the known sort types.
func (t SortType) IsValid() bool {
	switch t {
	case SortNumber, SortNumberExplicit, SortAlpha, SortAlphaInsensitive:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t sorts by subtraction of numbers.
func (t SortType) IsNumeric() bool {
	return t == SortNumber || t == SortNumberExplicit
}

// Sort configures collection ordering.
type Sort struct {
	Field string
	Type  SortType
	Desc  bool
}

// Condition toggles the visibility of a node from record values.
type Condition struct {
	Show []string // visible when any path is truthy
	Hide []string // hidden when any path is truthy
	Eval string   // name of a custom predicate
}

// IsZero reports whether the condition has no rule at all.
func (c *Condition) IsZero() bool {
	return c == nil || (len(c.Show) == 0 && len(c.Hide) == 0 && c.Eval == "")
}

// Option is one choice of a select node.
type Option struct {
	Value  string
	Label  string
	Record any // record chosen with this option by object selects
}
