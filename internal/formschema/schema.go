package formschema

import (
	"errors"
	"strings"

	"github.com/BruksfildServices01/virtual-queue/internal/validation"
)

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldAddress     = "address"
	FieldPhoneNumber = "phoneNumber"
	FieldNotes       = "notes"
)

// Rule is the validator tag applied to one form field. An empty Tag means
// the field is accepted as-is.
type Rule struct {
	Field  string
	Tag    string
	Custom bool
}

func (r Rule) Required() bool {
	return r.Tag == "required" || strings.HasPrefix(r.Tag, "required,")
}

var fixedRules = []Rule{
	{Field: FieldName, Tag: "required"},
	{Field: FieldEmail, Tag: "required,email"},
	{Field: FieldAddress},
	{Field: FieldPhoneNumber, Tag: "omitempty,phone"},
	{Field: FieldNotes},
}

func FixedRules() []Rule {
	out := make([]Rule, len(fixedRules))
	copy(out, fixedRules)
	return out
}

func IsFixedField(name string) bool {
	for _, r := range fixedRules {
		if r.Field == name {
			return true
		}
	}
	return false
}

// Schema is the join form contract for one project at one point in time.
type Schema struct {
	rules []Rule
}

// BuildValidationSchema layers the template over the fixed fields. Both
// custom field types are a required non-empty string.
func BuildValidationSchema(t Template) Schema {
	rules := FixedRules()
	for _, f := range t {
		rules = append(rules, Rule{Field: f.Name, Tag: "required", Custom: true})
	}
	return Schema{rules: rules}
}

func (s Schema) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Validate checks data against every rule in schema order and returns the
// submission restricted to known fields. Missing values count as empty.
func (s Schema) Validate(data map[string]string) (map[string]string, error) {
	var failures validation.Errors
	clean := make(map[string]string, len(s.rules))

	for _, r := range s.rules {
		value, present := data[r.Field]

		if r.Tag != "" {
			if err := validation.Var(r.Field, value, r.Tag); err != nil {
				var verrs validation.Errors
				if errors.As(err, &verrs) {
					failures = append(failures, verrs...)
					continue
				}
				return nil, err
			}
		}

		if present {
			clean[r.Field] = value
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return clean, nil
}

// FormField describes one input of the rendered join form.
type FormField struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

var fixedInputs = map[string]FormField{
	FieldName:        {Name: FieldName, Label: "Name", Type: "text"},
	FieldEmail:       {Name: FieldEmail, Label: "Email", Type: "email"},
	FieldAddress:     {Name: FieldAddress, Label: "Address", Type: "text"},
	FieldPhoneNumber: {Name: FieldPhoneNumber, Label: "Phone Number", Type: "tel"},
	FieldNotes:       {Name: FieldNotes, Label: "Notes", Type: "textarea"},
}

// FormFields lists the inputs of the join form in schema order.
func FormFields(t Template) []FormField {
	s := BuildValidationSchema(t)
	out := make([]FormField, 0, len(s.rules))

	for _, r := range s.rules {
		if !r.Custom {
			ff := fixedInputs[r.Field]
			ff.Required = r.Required()
			out = append(out, ff)
			continue
		}

		f, _ := t.Get(r.Field)
		out = append(out, FormField{
			Name:         r.Field,
			Label:        Capitalize(r.Field),
			Type:         string(f.Type),
			Required:     true,
			DefaultValue: f.DefaultValue,
		})
	}
	return out
}
