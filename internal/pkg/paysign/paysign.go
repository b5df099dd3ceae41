// Package paysign signs and verifies payment gateway notifications with HMAC-SHA256.
package paysign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sign returns the hex HMAC-SHA256 of the fields joined with "|".
func Sign(secret string, fields ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func Verify(secret, signature string, fields ...string) bool {
	expected := Sign(secret, fields...)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
