package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	payload := EncodeParams(map[string]string{
		"vnp_Amount": "1500000",
		"vnp_TxnRef": "2024010100000042",
	})

	signature := Sign("secret", payload)
	assert.True(t, Verify("secret", payload, signature))
}

func TestSignIsLowercaseHex(t *testing.T) {
	signature := Sign("secret", "a=1")
	assert.Len(t, signature, 128) // SHA-512 in hex
	assert.Equal(t, strings.ToLower(signature), signature)
}

func TestVerifyIsCaseInsensitive(t *testing.T) {
	signature := Sign("secret", "a=1")
	assert.True(t, Verify("secret", "a=1", strings.ToUpper(signature)))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	payload := "vnp_Amount=1500000&vnp_TxnRef=2024010100000042"
	signature := Sign("secret", payload)

	// Flipping any single character of a signed value must break the match.
	tampered := strings.Replace(payload, "1500000", "1500001", 1)
	assert.False(t, Verify("secret", tampered, signature))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signature := Sign("secret", "a=1")
	assert.False(t, Verify("other", "a=1", signature))
}

func TestVerifyRejectsEmptySignature(t *testing.T) {
	assert.False(t, Verify("secret", "a=1", ""))
}
