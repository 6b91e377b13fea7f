package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// Tracking tokens are short human-facing codes; 0/O and 1/I are excluded
// so they survive being read over the phone.
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TokenLength is the length of generated order tracking tokens
const TokenLength = 8

// GenerateOrderToken generates a short uppercase alphanumeric tracking code
func GenerateOrderToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	var b strings.Builder
	for _, by := range bytes {
		b.WriteByte(tokenAlphabet[int(by)%len(tokenAlphabet)])
	}
	return b.String(), nil
}

// NormalizeToken uppercases and trims a user-supplied tracking code so
// lookups are case-insensitive.
func NormalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// FormatPhoneNumber normalizes a Bangladeshi phone number to local format
func FormatPhoneNumber(phone string) string {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	if strings.HasPrefix(cleaned, "880") && len(cleaned) == 13 {
		return "0" + cleaned[3:]
	}
	if len(cleaned) == 10 && strings.HasPrefix(cleaned, "1") {
		return "0" + cleaned
	}
	if len(cleaned) == 11 && strings.HasPrefix(cleaned, "01") {
		return cleaned
	}

	// Return as-is if format is unclear
	return phone
}

// IsPhoneNumber checks if a string looks like a Bangladeshi mobile number
func IsPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`[\s\-\(\)]+`).ReplaceAllString(phone, "")
	bdPhoneRegex := regexp.MustCompile(`^(\+?880|0)1[3-9]\d{8}$`)
	return bdPhoneRegex.MatchString(cleaned)
}

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// EmailLocalPart returns the part of an email before the @, used as a
// fallback display name for federated identities.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// SanitizeString removes control characters and HTML tags from input
func SanitizeString(input string) string {
	sanitized := regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(input, "")
	sanitized = regexp.MustCompile(`<[^>]*>`).ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}
