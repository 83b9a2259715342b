package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"form-binder/binder"
	"form-binder/internal/diagnostic"
	"form-binder/internal/match"
	"form-binder/node"
	"form-binder/options"
	"form-binder/primitive"
	"form-binder/record"
)

const suggestionLimit = 3

// validator walks the element tree keeping the scope of the current level.
type validator struct {
	res *diagnostic.Diagnostics
}

// Validate checks a layout for structural problems. Errors make Build fail,
// warnings describe fields a binder would silently ignore.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("layout_is_nil", "", "layout file is nil")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", "", fmt.Sprintf("unsupported layout version %q", f.Version))
	}

	if len(f.Fields) == 0 {
		res.AddWarning("empty_layout", "", "layout has no fields")
	}

	v := &validator{res: res}
	v.level(f.Fields, rootScope(f), "fields")

	return res
}

func rootScope(f *File) string {
	if f.Prefix == nil {
		return binder.DefaultPrefix
	}

	return *f.Prefix
}

// level validates siblings sharing a scope. Groups are transparent, so
// their children join the same duplicate check.
func (v *validator) level(elems []Element, scope, at string) {
	seen := map[string]string{}
	v.elements(elems, scope, at, seen)
}

func (v *validator) elements(elems []Element, scope, at string, seen map[string]string) {
	for i := range elems {
		v.element(&elems[i], scope, fmt.Sprintf("%s[%d]", at, i), seen)
	}
}

func (v *validator) element(e *Element, scope, at string, seen map[string]string) {
	if e.Name != "" {
		at = e.Name
	}

	typ, ok := node.ParseType(e.Type)
	if !ok {
		v.res.AddError("unknown_type", at, fmt.Sprintf("unknown element type %q", e.Type),
			match.Suggest(e.Type, node.TypeNames(), suggestionLimit)...)

		return
	}

	kind, ok := primitive.ParseKind(e.Kind)
	if !ok {
		v.res.AddError("unknown_kind", at, fmt.Sprintf("unknown kind %q", e.Kind),
			match.Suggest(e.Kind, primitive.KindNames(), suggestionLimit)...)
	}

	flags, unknown := options.ParseFlags(e.Flags)
	for _, name := range unknown {
		v.res.AddError("unknown_flag", at, fmt.Sprintf("unknown flag %q", name),
			match.Suggest(name, options.FlagNames(), suggestionLimit)...)
	}

	v.condition(e, at)

	if len(e.Options) > 0 && typ != node.TypeSelect {
		v.res.AddWarning("options_ignored", at, "options only apply to select elements")
	}

	switch typ {
	case node.TypeGroup:
		if e.Name != "" {
			v.res.AddWarning("group_name_ignored", at, "group names are not bound")
		}

		v.elements(e.Fields, scope, at, seen)

	case node.TypeCollection:
		v.collection(e, scope, at, flags)

	default:
		if len(e.Fields) > 0 {
			v.res.AddError("unexpected_fields", at, fmt.Sprintf("%s elements cannot hold fields", e.Type))
		}

		v.field(e, typ, kind, flags, scope, at, seen)
	}
}

func (v *validator) field(
	e *Element,
	typ node.TypeEnum,
	kind primitive.KindEnum,
	flags options.FlagEnum,
	scope, at string,
	seen map[string]string,
) {
	if e.Name == "" {
		v.res.AddError("missing_name", at, fmt.Sprintf("%s element has no name", e.Type))
		return
	}

	v.path(e.Name, at)
	v.inScope(e.Name, scope, at)

	shared := typ == node.TypeLabel || flags.Has(options.FlagArray)
	if !shared {
		if prev, ok := seen[e.Name]; ok {
			v.res.AddError("duplicate_field", at, fmt.Sprintf("field %q already bound at %s", e.Name, prev))
		} else {
			seen[e.Name] = at
		}
	}

	if e.Slot != nil {
		if *e.Slot < 0 {
			v.res.AddError("negative_slot", at, fmt.Sprintf("slot %d is negative", *e.Slot))
		}

		if !flags.Has(options.FlagArray) {
			v.res.AddWarning("slot_without_array", at, "slot only applies with the array flag")
		}
	}

	if e.Literal != "" {
		var lit any
		if err := json.Unmarshal([]byte(e.Literal), &lit); err != nil {
			v.res.AddError("invalid_literal", at, fmt.Sprintf("literal is not valid JSON: %v", err))
		}
	}

	if e.IDKey != "" && kind != primitive.KindCheckbox {
		v.res.AddWarning("id_key_ignored", at, "id_key only applies to array checkboxes")
	}

	if typ == node.TypeSelect && len(e.Options) == 0 {
		v.res.AddWarning("select_without_options", at, "select has no options")
	}
}

func (v *validator) collection(e *Element, scope, at string, flags options.FlagEnum) {
	if e.Name == "" {
		v.res.AddError("missing_name", at, "collection element has no name")
		return
	}

	v.path(e.Name, at)
	v.inScope(e.Name, scope, at)

	if len(e.Fields) == 0 {
		v.res.AddError("empty_template", at, "collection has no template fields")
	}

	if e.Prefill != "" {
		var pre map[string]any
		if err := json.Unmarshal([]byte(e.Prefill), &pre); err != nil {
			v.res.AddError("invalid_prefill", at, fmt.Sprintf("prefill is not a JSON object: %v", err))
		}
	}

	v.sort(e, at, flags)

	v.level(e.Fields, record.LastSegment(e.Name), at)
}

func (v *validator) sort(e *Element, at string, flags options.FlagEnum) {
	if e.Sort == nil {
		if flags.Has(options.FlagSort) {
			v.res.AddWarning("sort_flag_without_sort", at, "sort flag set but no sort configured")
		}

		return
	}

	if !flags.Has(options.FlagSort) {
		v.res.AddWarning("sort_without_flag", at, "sort configured but the sort flag is not set")
	}

	st := node.SortType(e.Sort.Type)
	if !st.IsValid() {
		v.res.AddError("invalid_sort_type", at, fmt.Sprintf("unknown sort type %q", e.Sort.Type),
			match.Suggest(e.Sort.Type, sortTypeNames(), suggestionLimit)...)
	}

	if e.Sort.Field == "" && st != node.SortAlpha {
		v.res.AddError("missing_sort_field", at, "sort needs a field")
	}
}

func (v *validator) condition(e *Element, at string) {
	for _, p := range append(append([]string{}, e.Show...), e.Hide...) {
		if _, err := record.ParsePath(p); err != nil {
			v.res.AddError("invalid_condition", at, fmt.Sprintf("condition path %q: %v", p, err))
		}
	}
}

func (v *validator) path(name, at string) {
	if _, err := record.ParsePath(name); err != nil {
		v.res.AddError("invalid_name", at, fmt.Sprintf("name %q: %v", name, err))
	}
}

// inScope warns about names a binder with this scope would never bind.
func (v *validator) inScope(name, scope, at string) {
	if scope == "" || name == scope || strings.HasPrefix(name, scope+".") {
		return
	}

	v.res.AddWarning("out_of_scope", at, fmt.Sprintf("%q is outside scope %q", name, scope))
}

func sortTypeNames() []string {
	return []string{
		string(node.SortNumberExplicit),
		string(node.SortAlpha),
		string(node.SortAlphaInsensitive),
	}
}
