package layout

// File is the root of a layout file.
type File struct {
	// Version of the layout schema.
	Version string `yaml:"version,omitempty"`

	// Prefix is the root scope. Nil means the binder default.
	Prefix *string `yaml:"prefix,omitempty"`

	TrackChanges   *bool `yaml:"track_changes,omitempty"`
	SkipEmpty      bool  `yaml:"skip_empty,omitempty"`
	ValidateHidden *bool `yaml:"validate_hidden,omitempty"`

	Fields []Element `yaml:"fields"`
}

// Element is one node of the field tree.
type Element struct {
	Type  string        `yaml:"type,omitempty"`
	Name  string        `yaml:"name,omitempty"`
	Kind  string        `yaml:"kind,omitempty"`
	Flags StringOrArray `yaml:"flags,omitempty"`

	// Value is the initial text, or the member value of an array checkbox.
	Value     string `yaml:"value,omitempty"`
	Literal   string `yaml:"literal,omitempty"`
	IDKey     string `yaml:"id_key,omitempty"`
	Slot      *int   `yaml:"slot,omitempty"`
	SelectKey string `yaml:"select_key,omitempty"`
	Display   string `yaml:"display,omitempty"`
	Renderer  string `yaml:"renderer,omitempty"`
	Processor string `yaml:"processor,omitempty"`
	Prefill   string `yaml:"prefill,omitempty"`

	Sort *SortDef `yaml:"sort,omitempty"`

	Show StringOrArray `yaml:"show,omitempty"`
	Hide StringOrArray `yaml:"hide,omitempty"`
	Eval string        `yaml:"eval,omitempty"`

	Options []OptionDef `yaml:"options,omitempty"`
	Fields  []Element   `yaml:"fields,omitempty"`
}

// SortDef configures collection ordering.
type SortDef struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type,omitempty"`
	Desc  bool   `yaml:"desc,omitempty"`
}

// OptionDef is a select option. A plain scalar is both value and label.
type OptionDef struct {
	Value  string         `yaml:"value"`
	Label  string         `yaml:"label,omitempty"`
	Record map[string]any `yaml:"record,omitempty"`
}

// StringOrArray is a list of strings written as a single string or a
// sequence.
type StringOrArray []string

// HasCondition reports whether the element carries a visibility rule.
func (e *Element) HasCondition() bool {
	return !e.Show.IsEmpty() || !e.Hide.IsEmpty() || e.Eval != ""
}
