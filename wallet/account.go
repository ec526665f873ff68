// SPDX-License-Identifier: Apache-2.0

package wallet

import (
	"crypto"
	"encoding/hex"
	"strings"

	ed "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Account is an ed25519 signing key. It signs batch envelopes on behalf of a
// ledger account.
type Account ed.PrivateKey

// Address returns the classic account identifier of the account.
func (a Account) Address() Address {
	pk := ed.PrivateKey(a).Public().(ed.PublicKey)
	return AddressFromPubKey(pk)
}

// PubKeyHex returns the public key in the hex form carried by SigningPubKey
// fields: the ed25519 marker byte 0xED followed by the raw key, uppercased.
func (a Account) PubKeyHex() string {
	pk := ed.PrivateKey(a).Public().(ed.PublicKey)
	return "ED" + strings.ToUpper(hex.EncodeToString(pk))
}

// SignData signs the passed bytes with the account's private key. Signing is
// deterministic: the same input always yields the same signature.
func (a Account) SignData(data []byte) ([]byte, error) {
	return ed.PrivateKey(a).Sign(nil, data, crypto.Hash(0))
}

func (a Account) clear() {
	for i := range a[:] {
		a[i] = 0
	}
}

// VerifyData checks a signature produced by SignData against a SigningPubKey
// hex string as rendered by PubKeyHex.
func VerifyData(pubKeyHex string, data, sig []byte) bool {
	if len(pubKeyHex) < 2 || !strings.EqualFold(pubKeyHex[:2], "ED") {
		return false
	}
	raw, err := hex.DecodeString(pubKeyHex[2:])
	if err != nil || len(raw) != ed.PublicKeySize {
		return false
	}
	return ed.Verify(ed.PublicKey(raw), data, sig)
}
