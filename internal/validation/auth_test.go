package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name       string
		input      RegisterInput
		valid      bool
		wantFields []string
	}{
		{
			name:  "valid",
			input: RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "secret1", Confirm: "secret1"},
			valid: true,
		},
		{
			name:       "empty payload reports every field",
			input:      RegisterInput{},
			valid:      false,
			wantFields: []string{"name", "email", "password", "password2"},
		},
		{
			name:       "short name",
			input:      RegisterInput{Name: "J", Email: "john@example.com", Password: "secret1", Confirm: "secret1"},
			valid:      false,
			wantFields: []string{"name"},
		},
		{
			name:       "invalid email",
			input:      RegisterInput{Name: "John Doe", Email: "not-an-email", Password: "secret1", Confirm: "secret1"},
			valid:      false,
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			input:      RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "abc", Confirm: "abc"},
			valid:      false,
			wantFields: []string{"password"},
		},
		{
			name:       "password mismatch",
			input:      RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "secret1", Confirm: "secret2"},
			valid:      false,
			wantFields: []string{"password2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := ValidateRegister(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	errs, ok := ValidateLogin(LoginInput{Email: "john@example.com", Password: "secret1"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateLogin(LoginInput{})
	assert.False(t, ok)
	assert.Equal(t, "Email field is required", errs["email"])
	assert.Equal(t, "Password field is required", errs["password"])

	errs, ok = ValidateLogin(LoginInput{Email: "nope", Password: "secret1"})
	assert.False(t, ok)
	assert.Equal(t, "Email is invalid", errs["email"])
}
