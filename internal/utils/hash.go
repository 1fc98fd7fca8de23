package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string using
// the provided key and returns the result as a hex-encoded string.
//
// Used to verify payment-gateway signatures, which are computed the same
// way on the gateway side.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// HashEqual reports whether two hex-encoded digests are equal using a
// constant-time comparison.
func HashEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// hashString computes a raw HMAC-SHA256 digest over the given byte slice
// using the provided key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
