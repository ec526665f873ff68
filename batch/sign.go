// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/xrpl-demos/batch-backend/wallet"
)

// SignedCopy is the self-contained result of one signing pass: the signer's
// own deep copy of the envelope together with the partial signature it
// contributed. It shares no mutable state with the envelope it was made from.
type SignedCopy struct {
	Envelope  *Envelope
	Signature PartialSignature
}

// SignCopy runs one signing pass over the autofilled envelope. The envelope
// is deep-cloned before signing and never re-autofilled, so every signer of a
// batch run signs a byte-identical fingerprint. The account must be the
// submitter or the source of an inner transaction; anything else fails before
// a signature is produced.
func SignCopy(env *Envelope, acc wallet.Account) (*SignedCopy, error) {
	addr := acc.Address()
	if !env.References(addr) {
		return nil, errors.Wrapf(ErrUnexpectedSigner, "sign: account %s", addr)
	}

	cp := env.Clone()
	fp, err := cp.Fingerprint()
	if err != nil {
		return nil, errors.WithMessagef(err, "sign: fingerprinting for %s", addr)
	}

	sig, err := acc.SignData(fp[:])
	if err != nil {
		return nil, errors.WithMessagef(err, "sign: account %s", addr)
	}

	ps := PartialSignature{
		Account:       addr.String(),
		SigningPubKey: acc.PubKeyHex(),
		TxnSignature:  strings.ToUpper(hex.EncodeToString(sig)),
	}
	cp.BatchSigners = append(cp.BatchSigners, ps)

	return &SignedCopy{Envelope: cp, Signature: ps}, nil
}

// VerifyPartialSignature checks one partial signature against the envelope
// fingerprint it claims to sign.
func VerifyPartialSignature(env *Envelope, ps PartialSignature) (bool, error) {
	fp, err := env.Fingerprint()
	if err != nil {
		return false, err
	}
	sig, err := hex.DecodeString(ps.TxnSignature)
	if err != nil {
		return false, errors.Wrapf(ErrUnexpectedSigner, "verify: signature of %s is not hex", ps.Account)
	}
	return wallet.VerifyData(ps.SigningPubKey, fp[:], sig), nil
}
