package utils

import (
	"math/rand"
	"strings"
)

// GenerateVerificationCode returns six uniformly random decimal digits.
// Codes are delivered out of band and checked against a single account, so
// math/rand is enough; there is no uniqueness guarantee across accounts.
func GenerateVerificationCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// NormalizeEmail lower-cases and trims an address so lookups and the unique
// index agree on a single form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
