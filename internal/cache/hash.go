// Package cache memoizes diagnoses keyed by normalized error text so
// repeated questions never cost another AI call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives the cache key for an error description: the SHA-256 hex
// digest of its normalized form. Normalization lowercases, collapses
// whitespace runs, and strips everything outside [a-z0-9 ], so cosmetic
// variants of the same error share one entry.
func Key(errorText string) string {
	sum := sha256.Sum256([]byte(Normalize(errorText)))
	return hex.EncodeToString(sum[:])
}

// Normalize reduces error text to its canonical comparable form.
func Normalize(errorText string) string {
	lower := strings.ToLower(errorText)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
