// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// FingerprintLen is the length of an envelope fingerprint: sha512-half.
const FingerprintLen = 32

// Fingerprint identifies the signed content of an envelope. Two envelopes
// share a fingerprint exactly when they agree on every field except
// BatchSigners, so it is both the byte string each signer signs and the
// equality check the combiner runs over signed copies.
type Fingerprint [FingerprintLen]byte

func (f Fingerprint) String() string {
	return strings.ToUpper(hex.EncodeToString(f[:]))
}

// Fingerprint computes the envelope's fingerprint over its canonical JSON
// serialization with the signature list stripped.
func (e *Envelope) Fingerprint() (Fingerprint, error) {
	stripped := e.Clone()
	stripped.BatchSigners = nil

	enc, err := json.Marshal(stripped)
	if err != nil {
		return Fingerprint{}, err
	}

	sum := sha512.Sum512(enc)

	var f Fingerprint
	copy(f[:], sum[:FingerprintLen])
	return f, nil
}
