package fatsecret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToGTIN13(t *testing.T) {
	// Shorter codes are left-padded with zeros.
	assert.Equal(t, "0012345678905", ToGTIN13("12345678905"))
	// Longer codes keep their last 13 digits.
	assert.Equal(t, "4006381333931", ToGTIN13("004006381333931"))
	// Non-digits are stripped before padding.
	assert.Equal(t, "0012345678905", ToGTIN13("  1-2345-67890-5 "))
	assert.Equal(t, "0000000000000", ToGTIN13(""))
	// Already 13 digits passes through unchanged.
	assert.Equal(t, "6408430000128", ToGTIN13("6408430000128"))
}

func TestValidGTIN13(t *testing.T) {
	assert.True(t, ValidGTIN13("4006381333931"))
	assert.True(t, ValidGTIN13("0012345678905"))
	assert.True(t, ValidGTIN13("5901234123457"))

	// Wrong check digit.
	assert.False(t, ValidGTIN13("4006381333932"))
	// Wrong length or non-digits.
	assert.False(t, ValidGTIN13("400638133393"))
	assert.False(t, ValidGTIN13("40063813339311"))
	assert.False(t, ValidGTIN13("400638133393a"))
	assert.False(t, ValidGTIN13(""))
}
