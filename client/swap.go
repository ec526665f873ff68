// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/ledger"
	"github.com/xrpl-demos/batch-backend/wallet"
)

// SwapIntents builds the two legs of an atomic swap: a pays b `offer`, b pays
// a `ask`. Combined with AllOrNothing, either both legs apply or neither.
func SwapIntents(a, b wallet.Address, offer, ask batch.Amount) []batch.Intent {
	return []batch.Intent{
		{
			Kind:        batch.KindPayment,
			Account:     a,
			Destination: &b,
			Amount:      offer,
		},
		{
			Kind:        batch.KindPayment,
			Account:     b,
			Destination: &a,
			Amount:      ask,
		},
	}
}

// Swap runs a two-party atomic swap with the counterparty. Both parties sign
// independent deep copies of the identical autofilled envelope; the demo runs
// the counterparty's signing pass in-process, where a production flow would
// ship the envelope to the counterparty and receive its signed copy back.
func (c *BatchClient) Swap(
	ctx context.Context,
	counterparty wallet.Account,
	offer, ask batch.Amount,
) (*ledger.SubmitResult, error) {
	intents := SwapIntents(c.Address(), counterparty.Address(), offer, ask)
	return c.RunBatch(ctx, batch.AllOrNothing, intents, counterparty)
}
