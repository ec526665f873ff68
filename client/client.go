// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/ledger"
	"github.com/xrpl-demos/batch-backend/log"
	"github.com/xrpl-demos/batch-backend/wallet"
)

// BatchClient drives the batch pipeline for one submitting account: assemble,
// autofill, per-signer signing passes, combine, submit. It holds no network
// state of its own; the ledger is an injected collaborator.
type BatchClient struct {
	log.Embedding

	account wallet.Account
	ledger  ledger.Client
}

// NewBatchClient creates a client around the submitting account.
func NewBatchClient(acc wallet.Account, l ledger.Client) *BatchClient {
	return &BatchClient{
		Embedding: log.MakeEmbedding(log.Default().WithField("account", acc.Address().String())),
		account:   acc,
		ledger:    l,
	}
}

// Address returns the submitting account's address.
func (c *BatchClient) Address() wallet.Address {
	return c.account.Address()
}

// RunBatch executes one full batch run. The submitting account always signs;
// cosigners are the additional accounts whose inner transactions require
// their own signature. A failure at any stage before submission abandons the
// run wholesale: nothing is partially signed or partially submitted.
func (c *BatchClient) RunBatch(
	ctx context.Context,
	policy batch.ExecutionPolicy,
	intents []batch.Intent,
	cosigners ...wallet.Account,
) (*ledger.SubmitResult, error) {
	env, err := batch.Assemble(c.account.Address(), policy, intents)
	if err != nil {
		return nil, errors.WithMessage(err, "assembly stage")
	}
	c.Log().Debugf("assembled %s batch with %d inner transactions",
		policy, len(env.RawTransactions))

	signers := append([]wallet.Account{c.account}, cosigners...)
	if err := c.ledger.Autofill(ctx, env, len(signers)); err != nil {
		return nil, errors.WithMessage(err, "autofill stage")
	}

	// Fan-out: every signer signs its own deep copy of the same autofilled
	// envelope. The envelope itself stays untouched from here on.
	copies := make([]*batch.SignedCopy, len(signers))
	for i, s := range signers {
		sc, err := batch.SignCopy(env, s)
		if err != nil {
			return nil, errors.WithMessagef(err, "signing stage (signer %s)", s.Address())
		}
		copies[i] = sc
	}

	combined, err := batch.Combine(copies)
	if err != nil {
		return nil, errors.WithMessage(err, "combining stage")
	}
	c.Log().Debugf("combined %d partial signatures", len(combined.BatchSigners))

	res, err := c.ledger.Submit(ctx, combined)
	if err != nil {
		return nil, errors.WithMessage(err, "submission stage")
	}
	c.Log().Infof("batch %s: %s", res.Hash, res.ResultCode)
	return res, nil
}

// Pay builds a payment intent from this client's account.
func (c *BatchClient) Pay(dest wallet.Address, amount batch.Amount) batch.Intent {
	return batch.Intent{
		Kind:        batch.KindPayment,
		Account:     c.account.Address(),
		Destination: &dest,
		Amount:      amount,
	}
}
