// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ptest "polycry.pt/poly-go/test"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func TestCurrencyRoundTrip(t *testing.T) {
	rng := ptest.Prng(t)

	for length := 1; length <= 20; length++ {
		for round := 0; round < 8; round++ {
			code := make([]byte, length)
			for i := range code {
				code[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
			}

			enc, err := EncodeCurrency(string(code))
			require.NoError(t, err, "encoding %q", code)

			dec, err := DecodeCurrency(enc)
			require.NoError(t, err, "decoding %q", enc)
			assert.Equal(t, string(code), dec, "round trip of %q via %q", code, enc)
		}
	}
}

func TestCurrencyStandardCodesPassThrough(t *testing.T) {
	for _, code := range []string{"X", "EU", "USD", "BTC", "xrp"} {
		enc, err := EncodeCurrency(code)
		require.NoError(t, err)
		assert.Equal(t, code, enc, "standard code must not be altered")
	}
}

func TestCurrencyLongCodesAreFixedWidthHex(t *testing.T) {
	enc, err := EncodeCurrency("DOGECOIN")
	require.NoError(t, err)
	assert.Len(t, enc, 40)
	assert.True(t, strings.HasPrefix(enc, "444F4745434F494E"), "hex of the code bytes")
	assert.True(t, strings.HasSuffix(enc, "000000"), "right-padded with zero digits")

	// A 20-character code fills the full width with no padding.
	enc, err = EncodeCurrency("ABCDEFGHIJKLMNOPQRST")
	require.NoError(t, err)
	assert.Len(t, enc, 40)
	assert.False(t, strings.HasSuffix(enc, "00"))
}

func TestCurrencyRejectsInvalid(t *testing.T) {
	_, err := EncodeCurrency("")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = EncodeCurrency(strings.Repeat("A", 21))
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = EncodeCurrency("AB\x00")
	assert.ErrorIs(t, err, ErrInvalidCurrency, "control bytes are not printable codes")

	_, err = DecodeCurrency("")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = DecodeCurrency("TOOLONGBUTNOTFIXEDWIDTH")
	assert.ErrorIs(t, err, ErrInvalidCurrency, "mis-sized identifiers must fail, not pass as a different currency")

	_, err = DecodeCurrency(strings.Repeat("Z", 40))
	assert.ErrorIs(t, err, ErrInvalidCurrency, "non-hex fixed-width input")

	_, err = DecodeCurrency(strings.Repeat("0", 40))
	assert.ErrorIs(t, err, ErrInvalidCurrency, "all-zero identifier decodes to nothing")
}
