package validation

import (
	"testing"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name  string `binding:"required,min=3"`
	Phone string `binding:"required,phone"`
	Email string `binding:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		form       contactForm
		wantFields []string
	}{
		{"valid", contactForm{Name: "Ana", Phone: "+5491112345678"}, nil},
		{"valid without plus", contactForm{Name: "Ana", Phone: "1112345678"}, nil},
		{"short name", contactForm{Name: "An", Phone: "1112345678"}, []string{"name"}},
		{"short phone", contactForm{Name: "Ana", Phone: "123456789"}, []string{"phone"}},
		{"letters in phone", contactForm{Name: "Ana", Phone: "+54911abc45678"}, []string{"phone"}},
		{"bad email and missing", contactForm{Email: "nope"}, []string{"name", "phone", "email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.form)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			for _, f := range tt.wantFields {
				assert.Contains(t, fe.Fields, f)
			}
			assert.Len(t, fe.Fields, len(tt.wantFields))
		})
	}
}
