package layout

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"form-binder/internal/common"
)

// UnmarshalYAML accepts a single string or a sequence of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str == "" {
			*s = StringOrArray{}
		} else {
			*s = StringOrArray{str}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// MarshalYAML writes a single element as a plain string.
func (s StringOrArray) MarshalYAML() (any, error) {
	if v, ok := common.Single(s); ok {
		return v, nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// UnmarshalYAML accepts a scalar, taken as value and label, or a mapping.
func (o *OptionDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*o = OptionDef{Value: str, Label: str}

		return nil

	case yaml.MappingNode:
		type plain OptionDef

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*o = OptionDef(p)
		if o.Label == "" {
			o.Label = o.Value
		}

		return nil

	default:
		return fmt.Errorf("line %d: expected option value or mapping", node.Line)
	}
}

// MarshalYAML writes options whose label repeats the value as a scalar.
func (o OptionDef) MarshalYAML() (any, error) {
	if o.Record == nil && (o.Label == "" || o.Label == o.Value) {
		return o.Value, nil
	}

	type plain OptionDef

	return plain(o), nil
}
