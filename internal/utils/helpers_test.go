package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateOrderToken()
		assert.NoError(t, err)
		assert.Len(t, token, TokenLength)

		for _, r := range token {
			assert.NotContains(t, "0O1I", string(r), "ambiguous character in token %s", token)
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '9'), "unexpected character %q", r)
		}
		seen[token] = true
	}
	// 100 draws from a 32^8 space colliding would point at a broken generator
	assert.Len(t, seen, 100)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "AB23CD45", NormalizeToken("  ab23cd45 "))
	assert.Equal(t, "AB23CD45", NormalizeToken("AB23CD45"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+8801712345678", "01712345678"},
		{"8801712345678", "01712345678"},
		{"01712345678", "01712345678"},
		{"1712345678", "01712345678"},
		{"017-1234-5678", "01712345678"},
		{"unparseable", "unparseable"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPhoneNumber(tt.input), tt.input)
	}
}

func TestIsPhoneNumber(t *testing.T) {
	valid := []string{"01712345678", "+8801712345678", "8801912345678", "013 1234 5678"}
	for _, phone := range valid {
		assert.True(t, IsPhoneNumber(phone), phone)
	}

	invalid := []string{"0171234567", "02712345678", "01212345678", "12345", ""}
	for _, phone := range invalid {
		assert.False(t, IsPhoneNumber(phone), phone)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("shopper@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "shopper", EmailLocalPart("shopper@example.com"))
	assert.Equal(t, "no-at-sign", EmailLocalPart("no-at-sign"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("<b>hello</b>"))
	assert.Equal(t, "hello", SanitizeString("hel\x00lo"))
	assert.Equal(t, "", SanitizeString(strings.Repeat("\x1f", 4)))
}
