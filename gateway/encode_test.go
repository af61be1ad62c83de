package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeParamsCanonicalOrdering(t *testing.T) {
	first := EncodeParams(map[string]string{"b": "2", "a": "1"})
	second := EncodeParams(map[string]string{"a": "1", "b": "2"})

	assert.Equal(t, "a=1&b=2", first)
	assert.Equal(t, first, second)
}

func TestEncodeParamsByteWiseOrdering(t *testing.T) {
	// Uppercase sorts before lowercase in byte order; the gateway relies on
	// exactly this, not on a locale-aware sort.
	encoded := EncodeParams(map[string]string{
		"vnp_TxnRef": "x",
		"vnp_Amount": "1",
		"Zeta":       "z",
	})
	assert.Equal(t, "Zeta=z&vnp_Amount=1&vnp_TxnRef=x", encoded)
}

func TestEncodeParamsDropsEmptyValues(t *testing.T) {
	encoded := EncodeParams(map[string]string{
		"a": "1",
		"b": "",
		"c": "3",
	})

	assert.Equal(t, "a=1&c=3", encoded)
	assert.NotContains(t, encoded, "b")
}

func TestEncodeParamsEscaping(t *testing.T) {
	encoded := EncodeParams(map[string]string{
		"vnp_OrderInfo": "Payment for order #42",
	})

	assert.Equal(t, "vnp_OrderInfo=Payment%20for%20order%20%2342", encoded)
	assert.NotContains(t, encoded, "+")
}

func TestEncodeParamsReservedCharacters(t *testing.T) {
	encoded := EncodeParams(map[string]string{
		"a": "x&y=z",
	})

	// Reserved separators inside values must never survive unescaped or the
	// receiving side would parse a different field set.
	assert.Equal(t, "a=x%26y%3Dz", encoded)
}

func TestEncodeParamsEmptyInput(t *testing.T) {
	assert.Equal(t, "", EncodeParams(nil))
	assert.Equal(t, "", EncodeParams(map[string]string{"only": ""}))
}
