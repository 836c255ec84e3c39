package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText creates a cache key from a normalizer fingerprint and the text
func HashText(fingerprint, text string) string {
	hasher := sha256.New()
	hasher.Write([]byte(fingerprint))
	hasher.Write([]byte{0})
	hasher.Write([]byte(text))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ShortHash shortens a key from HashText to 16 hex characters for log output
func ShortHash(key string) string {
	if len(key) <= 16 {
		return key
	}
	return key[:16]
}
