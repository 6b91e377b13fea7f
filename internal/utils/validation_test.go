package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkoutForm struct {
	CustomerName string   `validate:"required,min=2,max=100"`
	Email        string   `validate:"required,email"`
	Phone        string   `validate:"required,phone"`
	Rating       int      `validate:"gte=1,lte=5"`
	Items        []string `validate:"required,min=1"`
}

func TestValidateStructValid(t *testing.T) {
	form := &checkoutForm{
		CustomerName: "Rahim Uddin",
		Email:        "rahim@example.com",
		Phone:        "01712345678",
		Rating:       4,
		Items:        []string{"p1"},
	}
	assert.NoError(t, ValidateStruct(form))
}

func TestValidateStructCollectsAllErrors(t *testing.T) {
	form := &checkoutForm{
		CustomerName: "R",
		Email:        "bad-email",
		Phone:        "12345",
		Rating:       9,
	}

	err := ValidateStruct(form)
	assert.Error(t, err)

	validationErrors, ok := err.(ValidationErrors)
	assert.True(t, ok)

	fields := make(map[string]bool)
	for _, ve := range validationErrors {
		fields[ve.Field] = true
	}
	assert.True(t, fields["CustomerName"])
	assert.True(t, fields["Email"])
	assert.True(t, fields["Phone"])
	assert.True(t, fields["Rating"])
	assert.True(t, fields["Items"])
}

func TestValidateStructRequiredSlice(t *testing.T) {
	form := &checkoutForm{
		CustomerName: "Rahim Uddin",
		Email:        "rahim@example.com",
		Phone:        "01712345678",
		Rating:       4,
		Items:        []string{},
	}

	err := ValidateStruct(form)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Items")
}

func TestValidateStructRejectsNonStruct(t *testing.T) {
	assert.Error(t, ValidateStruct("not a struct"))
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("longenough"))
	assert.NotEmpty(t, ValidatePassword("short"))
	assert.NotEmpty(t, ValidatePassword(string(make([]byte, 200))))
}
