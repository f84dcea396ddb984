package hubspot

// V2Form is the legacy form shape:
// https://legacydocs.hubspot.com/docs/methods/forms/v2/get_form
type V2Form struct {
	GUID            string         `json:"guid"`
	Name            string         `json:"name"`
	FormFieldGroups []V2FieldGroup `json:"formFieldGroups"`
}

type V2FieldGroup struct {
	Fields       []V2Field   `json:"fields"`
	Default      bool        `json:"default"`
	IsSmartGroup bool        `json:"isSmartGroup"`
	IsPageBreak  bool        `json:"isPageBreak"`
	RichText     *V2RichText `json:"richText,omitempty"`
}

type V2RichText struct {
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

type V2Field struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	FieldType string `json:"fieldType"`
	Required  bool   `json:"required"`
	Hidden    bool   `json:"hidden"`

	// Frequently -1 on older forms.
	DisplayOrder int `json:"displayOrder"`

	Options               []V2Option               `json:"options,omitempty"`
	DependentFieldFilters []V2DependentFieldFilter `json:"dependentFieldFilters,omitempty"`
}

type V2Option struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
}

// V2DependentFieldFilter nests the dependent field inside its parent.
type V2DependentFieldFilter struct {
	Filters            []V2Filter `json:"filters"`
	DependentFormField V2Field    `json:"dependentFormField"`
	FormFieldAction    string     `json:"formFieldAction,omitempty"`
}

type V2Filter struct {
	Operator    string   `json:"operator"`
	StrValue    string   `json:"strValue,omitempty"`
	StrValues   []string `json:"strValues,omitempty"`
	NumberValue float64  `json:"numberValue,omitempty"`
	BoolValue   bool     `json:"boolValue,omitempty"`
}

// V3Form is the marketing v3 form shape:
// https://developers.hubspot.com/docs/api/marketing/forms
type V3Form struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	FormType    string         `json:"formType,omitempty"`
	Archived    bool           `json:"archived,omitempty"`
	FieldGroups []V3FieldGroup `json:"fieldGroups"`
}

type V3FieldGroup struct {
	GroupType    string    `json:"groupType"`
	RichTextType string    `json:"richTextType,omitempty"`
	RichText     string    `json:"richText,omitempty"`
	Fields       []V3Field `json:"fields"`
}

type V3Field struct {
	ObjectTypeID string `json:"objectTypeId,omitempty"`
	Name         string `json:"name"`
	Label        string `json:"label"`
	FieldType    string `json:"fieldType"`
	Required     bool   `json:"required"`
	Hidden       bool   `json:"hidden"`

	Options         []V3Option         `json:"options,omitempty"`
	DependentFields []V3DependentField `json:"dependentFields,omitempty"`
}

type V3Option struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

type V3DependentField struct {
	DependentCondition V3Condition `json:"dependentCondition"`
	DependentField     V3Field     `json:"dependentField"`
}

type V3Condition struct {
	Operator string   `json:"operator"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// FormSummary is one line of `list forms`.
type FormSummary struct {
	ID        string
	Name      string
	FormType  string
	Archived  bool
	UpdatedAt string
}
