// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"github.com/pkg/errors"

	"github.com/xrpl-demos/batch-backend/wallet"
)

// Assemble builds an unsigned batch envelope from the passed intents. The
// intents are normalized and placed into RawTransactions in caller order,
// which is semantically significant for the OnlyOne and UntilFailure
// policies and is therefore never changed. Assemble is pure construction: it
// neither signs nor submits, and all validation failures happen here, before
// any side effect.
func Assemble(account wallet.Address, policy ExecutionPolicy, intents []Intent) (*Envelope, error) {
	if len(intents) < MinInnerTransactions || len(intents) > MaxInnerTransactions {
		return nil, errors.Wrapf(ErrInvalidBatchSize, "assemble: %d inner transactions, want %d..%d",
			len(intents), MinInnerTransactions, MaxInnerTransactions)
	}
	if !policy.Valid() {
		return nil, errors.Wrapf(ErrInvalidExecutionPolicy, "assemble: flags %#x", uint32(policy))
	}

	raws := make([]RawTransaction, len(intents))
	for i, in := range intents {
		tx, err := Normalize(in)
		if err != nil {
			return nil, errors.WithMessagef(err, "assemble: intent %d", i)
		}
		raws[i] = RawTransaction{RawTransaction: tx}
	}

	return &Envelope{
		TransactionType: TransactionTypeBatch,
		Account:         account.String(),
		Flags:           uint32(policy),
		RawTransactions: raws,
	}, nil
}
