// Package forms infers the step structure of a multi-step HubSpot form from its field and group
// layout.
package forms

// GroupType is the layout role of a field group.
type GroupType string

const (
	GroupDefault   GroupType = "default_group"
	GroupPageBreak GroupType = "page_break"
	GroupRichText  GroupType = "rich_text"
)

type Option struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
}

// DependentFieldFilter says a field is only shown once another field satisfies a condition.
type DependentFieldFilter struct {
	DependsOnFieldName string `json:"dependsOnFieldName"`
	Operator           string `json:"operator"`
	ComparisonValue    string `json:"comparisonValue"`
}

// Field is a form field normalised from either HubSpot API version.
type Field struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	FieldType string `json:"fieldType"`
	Required  bool   `json:"required"`
	Hidden    bool   `json:"hidden"`

	DisplayOrder          int                    `json:"displayOrder"`
	DependentFieldFilters []DependentFieldFilter `json:"dependentFieldFilters"`
	Options               []Option               `json:"options,omitempty"`

	// DisplayLabel is Label without any trailing " - N" step marker.
	DisplayLabel string `json:"displayLabel"`
}

func (f Field) HasDependencies() bool {
	return len(f.DependentFieldFilters) > 0
}

// Group is a run of fields as the form editor laid them out.
type Group struct {
	Type         GroupType `json:"type"`
	IsPageBreak  bool      `json:"isPageBreak"`
	RichText     string    `json:"richText,omitempty"`
	RichTextType string    `json:"richTextType,omitempty"`
	Fields       []Field   `json:"fields"`
}

// Form is the version-independent shape the engine works on.
type Form struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// Fields flattens every group's fields, in group order.
func (f Form) Fields() []Field {
	var fields []Field
	for _, g := range f.Groups {
		fields = append(fields, g.Fields...)
	}
	return fields
}

// FieldCount is used to decide which API variant of a form carries more information.
func (f Form) FieldCount() int {
	n := 0
	for _, g := range f.Groups {
		n += len(g.Fields)
	}
	return n
}

type Step struct {
	StepNumber          int     `json:"stepNumber"`
	Title               string  `json:"title,omitempty"`
	Description         string  `json:"description,omitempty"`
	Fields              []Field `json:"fields"`
	IsPageBreak         bool    `json:"isPageBreak"`
	HasConditionalLogic bool    `json:"hasConditionalLogic"`
}

type Metadata struct {
	FormID              string `json:"formId"`
	FormName            string `json:"formName"`
	Strategy            string `json:"strategy"`
	TotalSteps          int    `json:"totalSteps"`
	TotalFields         int    `json:"totalFields"`
	HasConditionalLogic bool   `json:"hasConditionalLogic"`
	IsMultiStep         bool   `json:"isMultiStep"`
}

// Result is what the form UI consumes.
type Result struct {
	Steps    []Step   `json:"steps"`
	Metadata Metadata `json:"metadata"`
}
