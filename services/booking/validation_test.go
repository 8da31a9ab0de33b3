package booking

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_RegistersRules(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	tests := []struct {
		name  string
		value interface{}
		tag   string
		ok    bool
	}{
		{"email shape", "a@b.com", "basic_email", true},
		{"email without dot", "a@b", "basic_email", false},
		{"allowed duration", 6, "duration_months", true},
		{"odd duration", 5, "duration_months", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMustRegister_PanicsOnBadRule(t *testing.T) {
	ok := func(validator.FieldLevel) bool { return true }
	assert.Panics(t, func() {
		mustRegister(validator.New(), map[string]validator.Func{"": ok})
	})
	assert.NotPanics(t, func() {
		mustRegister(validator.New(), map[string]validator.Func{"always": ok})
	})
}
