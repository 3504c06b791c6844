package formschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/validation"
)

func TestTemplate_JSONKeepsDocumentOrder(t *testing.T) {
	raw := `{"zeta":{"type":"text","defaultValue":""},"alpha":{"type":"textarea","defaultValue":"hi"},"mid":{"type":"text","defaultValue":""}}`

	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(raw), &tpl))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tpl.Names())

	f, ok := tpl.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, FieldTextarea, f.Type)
	assert.Equal(t, "hi", f.DefaultValue)

	out, err := json.Marshal(tpl)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t, raw, string(out))
}

func TestTemplate_NullAndEmpty(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(`null`), &tpl))
	assert.Empty(t, tpl)

	out, err := json.Marshal(Template(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestTemplate_RejectsNonObject(t *testing.T) {
	var tpl Template
	assert.Error(t, json.Unmarshal([]byte(`["reason"]`), &tpl))
	assert.Error(t, json.Unmarshal([]byte(`{"reason":"text"}`), &tpl))
}

func TestTemplate_WithAndWithout(t *testing.T) {
	tpl := Template{}.
		With("a", Field{Type: FieldText}).
		With("b", Field{Type: FieldText}).
		With("a", Field{Type: FieldTextarea})

	assert.Equal(t, []string{"a", "b"}, tpl.Names())
	f, _ := tpl.Get("a")
	assert.Equal(t, FieldTextarea, f.Type)

	removed := tpl.Without("a")
	assert.Equal(t, []string{"b"}, removed.Names())
	assert.Equal(t, []string{"a", "b"}, tpl.Names(), "original is not modified")
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tpl     Template
		wantErr bool
	}{
		{name: "empty", tpl: Template{}},
		{name: "text and textarea", tpl: Template{{Name: "reason", Field: Field{Type: FieldText}}, {Name: "details", Field: Field{Type: FieldTextarea}}}},
		{name: "empty name", tpl: Template{{Name: "", Field: Field{Type: FieldText}}}, wantErr: true},
		{name: "blank name", tpl: Template{{Name: "  ", Field: Field{Type: FieldText}}}, wantErr: true},
		{name: "unknown type", tpl: Template{{Name: "age", Field: Field{Type: "number"}}}, wantErr: true},
		{name: "missing type", tpl: Template{{Name: "age"}}, wantErr: true},
		{name: "shadows fixed field", tpl: Template{{Name: "email", Field: Field{Type: FieldText}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tpl.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_custom_fields"))
			assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	reason := Template{{Name: "reason", Field: Field{Type: FieldText}}}

	tests := []struct {
		name       string
		tpl        Template
		data       map[string]string
		wantFields []string
		wantClean  map[string]string
	}{
		{
			name:      "fixed fields only",
			data:      map[string]string{"name": "Amit", "email": "a@x.com"},
			wantClean: map[string]string{"name": "Amit", "email": "a@x.com"},
		},
		{
			name:       "missing name and bad email",
			data:       map[string]string{"email": "nope"},
			wantFields: []string{"name", "email"},
		},
		{
			name:       "bad phone",
			data:       map[string]string{"name": "A", "email": "a@b.com", "phoneNumber": "abc"},
			wantFields: []string{"phoneNumber"},
		},
		{
			name:      "empty optional phone",
			data:      map[string]string{"name": "A", "email": "a@b.com", "phoneNumber": ""},
			wantClean: map[string]string{"name": "A", "email": "a@b.com", "phoneNumber": ""},
		},
		{
			name:      "custom field present",
			tpl:       reason,
			data:      map[string]string{"name": "A", "email": "a@b.com", "reason": "x"},
			wantClean: map[string]string{"name": "A", "email": "a@b.com", "reason": "x"},
		},
		{
			name:       "custom field missing",
			tpl:        reason,
			data:       map[string]string{"name": "A", "email": "a@b.com"},
			wantFields: []string{"reason"},
		},
		{
			name:       "custom field empty",
			tpl:        reason,
			data:       map[string]string{"name": "A", "email": "a@b.com", "reason": ""},
			wantFields: []string{"reason"},
		},
		{
			name:      "unknown keys are dropped",
			data:      map[string]string{"name": "A", "email": "a@b.com", "isAdmin": "true"},
			wantClean: map[string]string{"name": "A", "email": "a@b.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := BuildValidationSchema(tt.tpl).Validate(tt.data)

			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantClean, clean)
				return
			}

			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			got := make([]string, len(verrs))
			for i, fe := range verrs {
				got[i] = fe.Field
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestBuildValidationSchema_Order(t *testing.T) {
	tpl := Template{
		{Name: "b", Field: Field{Type: FieldText}},
		{Name: "a", Field: Field{Type: FieldTextarea}},
	}

	rules := BuildValidationSchema(tpl).Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Field
	}

	assert.Equal(t, []string{"name", "email", "address", "phoneNumber", "notes", "b", "a"}, names)
	assert.True(t, rules[5].Custom)
	assert.True(t, rules[5].Required())
	assert.False(t, rules[2].Required())
	assert.False(t, rules[3].Required())
}

func TestBuildColumns_Order(t *testing.T) {
	tpl := Template{
		{Name: "reason", Field: Field{Type: FieldText}},
		{Name: "table", Field: Field{Type: FieldTextarea}},
	}

	cols := BuildColumns(tpl)
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}

	assert.Equal(t, []string{
		"select",
		"data.name", "data.email", "data.address", "data.phoneNumber", "data.notes",
		"status",
		"data.reason", "data.table",
		"createdAt",
		"actions",
	}, ids)

	custom := cols[7]
	assert.Equal(t, "Reason", custom.Header)
	assert.Equal(t, 120, custom.Size)
	assert.Equal(t, FilterContains, custom.Filter)
	assert.True(t, custom.Custom)

	assert.Equal(t, BuildColumns(tpl), cols, "stable across calls")
}

func TestBuildColumns_EmptyTemplate(t *testing.T) {
	cols := BuildColumns(nil)
	require.Len(t, cols, 9)
	assert.Equal(t, "status", cols[6].ID)
	assert.Equal(t, "createdAt", cols[7].ID)
}

func TestColumn_Matches(t *testing.T) {
	cols := BuildColumns(nil)
	name := cols[1]
	status := cols[6]

	assert.True(t, name.Matches("Amit Shah", "amit"))
	assert.True(t, name.Matches("Amit Shah", ""))
	assert.False(t, name.Matches("Amit Shah", "bob"))

	assert.True(t, status.Matches("ACTIVE", "ACTIVE,INACTIVE"))
	assert.True(t, status.Matches("INACTIVE", "INACTIVE"))
	assert.False(t, status.Matches("ACTIVE", "INACTIVE"))

	key, ok := name.DataKey()
	assert.True(t, ok)
	assert.Equal(t, "name", key)
	_, ok = status.DataKey()
	assert.False(t, ok)
}

func TestFormFields(t *testing.T) {
	tpl := Template{{Name: "reason", Field: Field{Type: FieldTextarea, DefaultValue: "walk-in"}}}

	fields := FormFields(tpl)
	require.Len(t, fields, 6)

	assert.Equal(t, FormField{Name: "name", Label: "Name", Type: "text", Required: true}, fields[0])
	assert.Equal(t, FormField{Name: "phoneNumber", Label: "Phone Number", Type: "tel"}, fields[3])
	assert.Equal(t, FormField{
		Name:         "reason",
		Label:        "Reason",
		Type:         "textarea",
		Required:     true,
		DefaultValue: "walk-in",
	}, fields[5])
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Reason", Capitalize("reason"))
	assert.Equal(t, "ÉTage", Capitalize("éTage"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "9lives", Capitalize("9lives"))
}
