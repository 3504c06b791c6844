// Package formschema turns a project's custom-field template into the join
// form validation schema and the entrant table columns.
package formschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
)

func (t FieldType) Valid() bool {
	return t == FieldText || t == FieldTextarea
}

type Field struct {
	Type         FieldType `json:"type"`
	DefaultValue string    `json:"defaultValue"`
}

type NamedField struct {
	Name string
	Field
}

// Template is an ordered set of custom fields. It encodes as a JSON object
// whose key order is the slice order, and decodes keeping document order.
type Template []NamedField

var errTemplateNotObject = errors.New("custom fields must be a JSON object")

func (t Template) Names() []string {
	names := make([]string, len(t))
	for i, f := range t {
		names[i] = f.Name
	}
	return names
}

func (t Template) Get(name string) (Field, bool) {
	for _, f := range t {
		if f.Name == name {
			return f.Field, true
		}
	}
	return Field{}, false
}

// With returns a copy of t with name set to f. An existing field keeps its
// position; a new one is appended.
func (t Template) With(name string, f Field) Template {
	out := make(Template, 0, len(t)+1)
	replaced := false
	for _, nf := range t {
		if nf.Name == name {
			out = append(out, NamedField{Name: name, Field: f})
			replaced = true
			continue
		}
		out = append(out, nf)
	}
	if !replaced {
		out = append(out, NamedField{Name: name, Field: f})
	}
	return out
}

// Without returns a copy of t with name removed.
func (t Template) Without(name string) Template {
	out := make(Template, 0, len(t))
	for _, nf := range t {
		if nf.Name != name {
			out = append(out, nf)
		}
	}
	return out
}

// Validate enforces the write-time rules: non-empty names that do not
// shadow a fixed field, and a known type on every entry.
func (t Template) Validate() error {
	for _, f := range t {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return httperr.ErrValidation("invalid_custom_fields", "custom field names must not be empty")
		}
		if name != f.Name {
			return httperr.ErrValidation("invalid_custom_fields",
				fmt.Sprintf("custom field %q must not have surrounding spaces", f.Name))
		}
		if IsFixedField(f.Name) {
			return httperr.ErrValidation("invalid_custom_fields",
				fmt.Sprintf("custom field %q clashes with a built-in field", f.Name))
		}
		if !f.Type.Valid() {
			return httperr.ErrValidation("invalid_custom_fields",
				fmt.Sprintf("custom field %q has unsupported type %q", f.Name, f.Type))
		}
	}
	return nil
}

func (t Template) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object in document order. null decodes to an
// empty template; a repeated key keeps its first position and last value.
func (t *Template) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = Template{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errTemplateNotObject
	}

	out := Template{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return errTemplateNotObject
		}

		var f Field
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("custom field %q: %w", name, err)
		}
		out = out.With(name, f)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = out
	return nil
}
