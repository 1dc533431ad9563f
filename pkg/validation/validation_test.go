package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-service/pkg/validation"
)

func TestValidateCoordinateStrings(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng string
		want     bool
	}{
		{"valid", "10.0", "20.0", true},
		{"valid negative", "-89.9", "-179.9", true},
		{"boundary", "90", "180", true},
		{"lat out of range", "90.1", "0", false},
		{"lng out of range", "0", "-180.5", false},
		{"not a number", "ten", "20", false},
		{"empty", "", "", false},
		{"whitespace tolerated", " 10.0 ", " 20.0 ", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validation.ValidateCoordinateStrings(tc.lat, tc.lng))
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.True(t, validation.ValidateID("trip-123"))
	assert.False(t, validation.ValidateID("   "))
	assert.False(t, validation.ValidateID(""))
}
