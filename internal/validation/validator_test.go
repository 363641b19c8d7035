package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type booking struct {
	Date  string `json:"appointmentDate" validate:"required,date"`
	Phone string `json:"phone" validate:"required"`
}

func TestDateRule(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(booking{Date: "2025-03-10", Phone: "+213500000000"}))
	require.NoError(t, v.Struct(booking{Date: "2025-03-10T00:00:00Z", Phone: "(0550) 12 34 56"}))

	err := v.Struct(booking{Date: "10/03/2025"})
	require.Error(t, err)
	details := v.ValidationErrors(err)
	require.Len(t, details, 2)
	assert.Equal(t, "appointmentDate", details[0].Field())
	assert.Equal(t, "date", details[0].Tag())
	assert.Equal(t, "phone", details[1].Field())
	assert.Equal(t, "required", details[1].Tag())
}

func TestValidationErrorsOnOtherErrors(t *testing.T) {
	v := New()
	assert.Nil(t, v.ValidationErrors(nil))
	assert.Nil(t, v.ValidationErrors(assert.AnError))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate(" 2000-01-01 ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("2000-13-01")
	assert.False(t, ok)
}
