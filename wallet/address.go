// SPDX-License-Identifier: Apache-2.0

package wallet

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // mandated by the address format
)

// AddressLen is the length of an account identifier in bytes.
const AddressLen = 20

// addrVersion is the version byte prefixed to account identifiers before
// base58check encoding. It makes every classic address start with 'r'.
const addrVersion = 0x00

const checksumLen = 4

// ErrInvalidAddress a classic address failed to decode.
var ErrInvalidAddress = errors.New("invalid classic address")

// rippleAlphabet is the base58 dictionary used for classic addresses.
var rippleAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

// Address is the 20-byte account identifier derived from an account's public
// key: RIPEMD160(SHA256(prefixed public key)).
type Address [AddressLen]byte

// AddressFromPubKey derives the account identifier of an ed25519 public key.
// The key is prefixed with 0xED, the marker byte of the ed25519 key family.
func AddressFromPubKey(pk []byte) Address {
	prefixed := make([]byte, 0, len(pk)+1)
	prefixed = append(prefixed, 0xED)
	prefixed = append(prefixed, pk...)

	inner := sha256.Sum256(prefixed)
	outer := ripemd160.New()
	outer.Write(inner[:])

	var a Address
	copy(a[:], outer.Sum(nil))
	return a
}

// String renders the address in classic base58check form ("r...").
func (a Address) String() string {
	payload := make([]byte, 0, 1+AddressLen+checksumLen)
	payload = append(payload, addrVersion)
	payload = append(payload, a[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.EncodeAlphabet(payload, rippleAlphabet)
}

// DecodeAddress parses a classic base58check address.
func DecodeAddress(s string) (Address, error) {
	raw, err := base58.DecodeAlphabet(s, rippleAlphabet)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s: %v", s, err)
	}
	if len(raw) != 1+AddressLen+checksumLen {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s: payload length %d", s, len(raw))
	}
	if raw[0] != addrVersion {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s: version byte %#x", s, raw[0])
	}
	body, sum := raw[:1+AddressLen], raw[1+AddressLen:]
	if !bytes.Equal(sum, checksum(body)) {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s: checksum mismatch", s)
	}

	var a Address
	copy(a[:], body[1:])
	return a, nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}

func (a Address) MarshalBinary() ([]byte, error) {
	return a[:], nil
}

func (a *Address) UnmarshalBinary(data []byte) error {
	if len(data) != AddressLen {
		return errors.Wrapf(ErrInvalidAddress, "binary length %d/%d", len(data), AddressLen)
	}
	copy(a[:], data)
	return nil
}

func (a Address) Equal(b Address) bool {
	return a == b
}

// Cmp orders addresses by their raw identifier bytes.
func (a Address) Cmp(b Address) int {
	return bytes.Compare(a[:], b[:])
}
