// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

const (
	// stdCurrencyLen is the longest currency code that passes through as a
	// standard code. In the 160-bit internal form such codes sit padded with
	// null bytes, which is why the visible code must never exceed it.
	stdCurrencyLen = 3

	// currencyHexLen is the fixed width of a hex-encoded currency code: 40
	// hex digits for the 160-bit identifier.
	currencyHexLen = 40

	// maxCurrencyLen is the longest code that fits the 160-bit identifier.
	maxCurrencyLen = currencyHexLen / 2
)

// EncodeCurrency converts a human-readable currency code to its wire form.
// Codes up to three characters are standard codes and pass through unchanged;
// longer codes are hex-encoded and right-padded with zero digits to the fixed
// 40-digit width. The result is deterministic and reversible via
// DecodeCurrency for every code of 1 to 20 characters.
func EncodeCurrency(code string) (string, error) {
	if len(code) == 0 || len(code) > maxCurrencyLen {
		return "", errors.Wrapf(ErrInvalidCurrency, "code %q length %d, want 1..%d",
			code, len(code), maxCurrencyLen)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 0x21 || code[i] > 0x7e {
			return "", errors.Wrapf(ErrInvalidCurrency, "code %q contains non-printable byte %#x",
				code, code[i])
		}
	}
	if len(code) <= stdCurrencyLen {
		return code, nil
	}

	enc := strings.ToUpper(hex.EncodeToString([]byte(code)))
	return enc + strings.Repeat("0", currencyHexLen-len(enc)), nil
}

// DecodeCurrency is the inverse of EncodeCurrency. It accepts standard codes
// of up to three characters and fixed-width hex codes; everything else is
// rejected rather than guessed at, since a mis-sized identifier names a
// different currency, not an invalid one.
func DecodeCurrency(wire string) (string, error) {
	if len(wire) == 0 {
		return "", errors.Wrap(ErrInvalidCurrency, "empty wire code")
	}
	if len(wire) <= stdCurrencyLen {
		return wire, nil
	}
	if len(wire) != currencyHexLen {
		return "", errors.Wrapf(ErrInvalidCurrency, "wire code %q has width %d, want %d",
			wire, len(wire), currencyHexLen)
	}

	raw, err := hex.DecodeString(wire)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidCurrency, "wire code %q: %v", wire, err)
	}
	code := strings.TrimRight(string(raw), "\x00")
	if len(code) == 0 {
		return "", errors.Wrapf(ErrInvalidCurrency, "wire code %q decodes to nothing", wire)
	}
	return code, nil
}
