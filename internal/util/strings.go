package util

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"math/big"
)

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		b[i] = randomChars[idx.Int64()]
	}
	return string(b)
}

// ClientKey derives a stable anonymous key for like/view dedup from the
// caller's IP and user agent. Not a tracking id; never stored with PII.
func ClientKey(ip, userAgent string) string {
	h := sha1.Sum([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(h[:])
}
