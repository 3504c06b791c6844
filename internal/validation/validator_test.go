package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

type slugRequest struct {
	Username string `validate:"required,username,max=64"`
	Phone    string `validate:"omitempty,phone"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     slugRequest
		wantField string
		wantTag   string
	}{
		{name: "valid", input: slugRequest{Username: "cafe_42-x", Phone: "+1234567890"}},
		{name: "valid without phone", input: slugRequest{Username: "cafe"}},
		{name: "missing username", input: slugRequest{}, wantField: "Username", wantTag: "required"},
		{name: "uppercase username", input: slugRequest{Username: "Cafe"}, wantField: "Username", wantTag: "username"},
		{name: "space in username", input: slugRequest{Username: "my cafe"}, wantField: "Username", wantTag: "username"},
		{name: "phone leading zero", input: slugRequest{Username: "cafe", Phone: "+0123"}, wantField: "Phone", wantTag: "phone"},
		{name: "phone letters", input: slugRequest{Username: "cafe", Phone: "call me"}, wantField: "Phone", wantTag: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs Errors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, tt.wantTag, verrs[0].Tag)
		})
	}
}

func TestStruct_ReportsJSONNames(t *testing.T) {
	type body struct {
		BusinessEmail string `json:"businessEmail" validate:"required,email"`
	}

	err := Struct(&body{BusinessEmail: "nope"})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "businessEmail", verrs[0].Field)
	assert.Equal(t, "businessEmail must be a valid email address", verrs[0].Message)
}

func TestVar_UsesGivenFieldName(t *testing.T) {
	err := Var("email", "not-an-email", "required,email")

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, "email must be a valid email address", verrs[0].Message)
	assert.Equal(t, map[string]string{"email": "email must be a valid email address"}, verrs.ByField())
}

func TestVar_PhonePattern(t *testing.T) {
	for _, ok := range []string{"+1234567890", "12", "123456789012345"} {
		assert.NoError(t, Var("phoneNumber", ok, "phone"), ok)
	}
	for _, bad := range []string{"1", "+", "0123", "1234567890123456", "+12-34"} {
		assert.Error(t, Var("phoneNumber", bad, "phone"), bad)
	}
}
