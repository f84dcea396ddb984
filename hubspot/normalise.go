package hubspot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/toothbrush/site-routes/forms"
)

var ErrUnknownShape = errors.New("hubspot: payload has neither formFieldGroups nor fieldGroups")

// DecodeForm reads a form payload saved from either API version.
func DecodeForm(data []byte) (forms.Form, error) {
	var probe struct {
		FormFieldGroups json.RawMessage `json:"formFieldGroups"`
		FieldGroups     json.RawMessage `json:"fieldGroups"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return forms.Form{}, fmt.Errorf("hubspot: couldn't parse form payload: %w", err)
	}

	switch {
	case probe.FormFieldGroups != nil:
		var v2 V2Form
		if err := json.Unmarshal(data, &v2); err != nil {
			return forms.Form{}, fmt.Errorf("hubspot: couldn't parse v2 form: %w", err)
		}
		return v2.Normalise(), nil
	case probe.FieldGroups != nil:
		var v3 V3Form
		if err := json.Unmarshal(data, &v3); err != nil {
			return forms.Form{}, fmt.Errorf("hubspot: couldn't parse v3 form: %w", err)
		}
		return v3.Normalise(), nil
	}
	return forms.Form{}, ErrUnknownShape
}

// Normalise flattens dependent fields in after their parent.  Fields with a negative display
// order are given their position in the form instead.
func (f V2Form) Normalise() forms.Form {
	form := forms.Form{ID: f.GUID, Name: f.Name}
	position := 0

	var flatten func(field V2Field, parent *forms.DependentFieldFilter) []forms.Field
	flatten = func(field V2Field, parent *forms.DependentFieldFilter) []forms.Field {
		order := field.DisplayOrder
		if order < 0 {
			order = position
		}
		position++

		out := forms.Field{
			Name:         field.Name,
			Label:        field.Label,
			FieldType:    field.FieldType,
			Required:     field.Required,
			Hidden:       field.Hidden,
			DisplayOrder: order,
			DisplayLabel: displayLabel(field.Label),
		}
		if parent != nil {
			out.DependentFieldFilters = []forms.DependentFieldFilter{*parent}
		}
		for _, o := range field.Options {
			out.Options = append(out.Options, forms.Option{Label: o.Label, Value: o.Value, DisplayOrder: o.DisplayOrder})
		}

		fields := []forms.Field{out}
		for _, dep := range field.DependentFieldFilters {
			filter := forms.DependentFieldFilter{DependsOnFieldName: field.Name}
			if len(dep.Filters) > 0 {
				filter.Operator = dep.Filters[0].Operator
				filter.ComparisonValue = dep.Filters[0].comparisonValue()
			}
			fields = append(fields, flatten(dep.DependentFormField, &filter)...)
		}
		return fields
	}

	for _, g := range f.FormFieldGroups {
		group := forms.Group{Type: forms.GroupDefault, IsPageBreak: g.IsPageBreak}
		switch {
		case g.IsPageBreak:
			group.Type = forms.GroupPageBreak
		case g.RichText != nil && g.RichText.Content != "":
			group.Type = forms.GroupRichText
		}
		if g.RichText != nil {
			group.RichText = g.RichText.Content
			group.RichTextType = g.RichText.Type
		}
		for _, field := range g.Fields {
			group.Fields = append(group.Fields, flatten(field, nil)...)
		}
		form.Groups = append(form.Groups, group)
	}

	return form
}

func (f V2Filter) comparisonValue() string {
	switch {
	case f.StrValue != "":
		return f.StrValue
	case len(f.StrValues) > 0:
		return strings.Join(f.StrValues, ",")
	case f.NumberValue != 0:
		return strconv.FormatFloat(f.NumberValue, 'f', -1, 64)
	case f.BoolValue:
		return "true"
	}
	return ""
}

// Normalise flattens dependent fields in after their parent.  v3 has no display order, so
// position in the form stands in for it.
func (f V3Form) Normalise() forms.Form {
	form := forms.Form{ID: f.ID, Name: f.Name}
	position := 0

	var flatten func(field V3Field, parent *forms.DependentFieldFilter) []forms.Field
	flatten = func(field V3Field, parent *forms.DependentFieldFilter) []forms.Field {
		out := forms.Field{
			Name:         field.Name,
			Label:        field.Label,
			FieldType:    field.FieldType,
			Required:     field.Required,
			Hidden:       field.Hidden,
			DisplayOrder: position,
			DisplayLabel: displayLabel(field.Label),
		}
		position++
		if parent != nil {
			out.DependentFieldFilters = []forms.DependentFieldFilter{*parent}
		}
		for _, o := range field.Options {
			out.Options = append(out.Options, forms.Option{Label: o.Label, Value: o.Value, DisplayOrder: o.DisplayOrder})
		}

		fields := []forms.Field{out}
		for _, dep := range field.DependentFields {
			value := dep.DependentCondition.Value
			if value == "" {
				value = strings.Join(dep.DependentCondition.Values, ",")
			}
			filter := forms.DependentFieldFilter{
				DependsOnFieldName: field.Name,
				Operator:           dep.DependentCondition.Operator,
				ComparisonValue:    value,
			}
			fields = append(fields, flatten(dep.DependentField, &filter)...)
		}
		return fields
	}

	for _, g := range f.FieldGroups {
		group := forms.Group{
			Type:         groupType(g.GroupType),
			RichText:     g.RichText,
			RichTextType: g.RichTextType,
		}
		group.IsPageBreak = group.Type == forms.GroupPageBreak
		for _, field := range g.Fields {
			group.Fields = append(group.Fields, flatten(field, nil)...)
		}
		form.Groups = append(form.Groups, group)
	}

	return form
}

func groupType(t string) forms.GroupType {
	switch t = strings.ToLower(t); {
	case t == "" || t == string(forms.GroupDefault):
		return forms.GroupDefault
	case strings.Contains(t, "break"):
		return forms.GroupPageBreak
	}
	return forms.GroupType(t)
}

func displayLabel(label string) string {
	text, _, _ := forms.SplitStepLabel(label)
	return text
}
