package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Sign computes the lowercase hex HMAC-SHA512 of payload keyed by secret.
func Sign(secret, payload string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the signature for payload and compares it with the
// supplied one, case-insensitively and in constant time. A false result is
// an authentication failure: the callback was tampered with or signed with
// the wrong secret, and must not mutate any state.
func Verify(secret, payload, supplied string) bool {
	if supplied == "" {
		return false
	}
	want := Sign(secret, payload)
	return hmac.Equal([]byte(want), []byte(strings.ToLower(supplied)))
}
