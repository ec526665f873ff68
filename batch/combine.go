// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"sort"

	"github.com/pkg/errors"
)

// Combine merges the partial signatures of several signed copies of one
// envelope into a single submittable envelope. All copies must share the same
// canonical fingerprint; a copy that drifted in any field other than its
// signature list is rejected with the offending copy's index. The merge is
// deterministic and commutative: signatures are keyed by account and emitted
// in ascending account order, so the output does not depend on the order the
// copies were supplied in. One account signing twice with identical bytes is
// deduplicated; two different signatures from one account are a hard error,
// since deterministic signing over identical envelopes cannot produce them.
func Combine(copies []*SignedCopy) (*Envelope, error) {
	if len(copies) == 0 {
		return nil, errors.Wrap(ErrNoSignedCopies, "combine")
	}

	base := copies[0].Envelope
	baseFP, err := base.Fingerprint()
	if err != nil {
		return nil, errors.WithMessage(err, "combine: fingerprinting copy 0")
	}

	sigs := make(map[string]PartialSignature)
	for i, c := range copies {
		fp, err := c.Envelope.Fingerprint()
		if err != nil {
			return nil, errors.WithMessagef(err, "combine: fingerprinting copy %d", i)
		}
		if fp != baseFP {
			return nil, errors.Wrapf(ErrMismatchedEnvelope,
				"combine: copy %d has fingerprint %s, copy 0 has %s", i, fp, baseFP)
		}

		for _, ps := range c.Envelope.BatchSigners {
			prev, ok := sigs[ps.Account]
			if ok && prev.TxnSignature != ps.TxnSignature {
				return nil, errors.Wrapf(ErrDuplicateSigner,
					"combine: copy %d re-signs account %s with different bytes", i, ps.Account)
			}
			sigs[ps.Account] = ps
		}
	}

	accounts := make([]string, 0, len(sigs))
	for acc := range sigs {
		accounts = append(accounts, acc)
	}
	sort.Strings(accounts)

	out := base.Clone()
	out.BatchSigners = make([]PartialSignature, len(accounts))
	for i, acc := range accounts {
		out.BatchSigners[i] = sigs[acc]
	}
	return out, nil
}
