// SPDX-License-Identifier: Apache-2.0

// Package ledger holds the narrow interface to the ledger network: autofill,
// submission and account queries. Two implementations exist, a websocket
// connection for real endpoints and an in-process ledger for demos and tests.
package ledger

import (
	"context"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/wallet"
)

// SubmitResult is the terminal outcome of a submission. ResultCode is one of
// the ledger-defined outcome codes and is treated as an opaque string here.
type SubmitResult struct {
	Hash       string `json:"hash"`
	ResultCode string `json:"engine_result"`
}

// AccountInfo is the live state of an account.
type AccountInfo struct {
	Address  wallet.Address
	Sequence uint32
	Balance  uint64 // drops
}

// Client is the capability set the batch pipeline needs from the network.
type Client interface {
	// Autofill populates the envelope's fee (sized by the number of inner
	// transactions and signers) and every sequence field, reading live
	// per-account counters. It must be called exactly once per batch run,
	// after assembly and before any signing pass.
	Autofill(ctx context.Context, env *batch.Envelope, signerCount int) error

	// Submit sends a combined envelope to the network.
	Submit(ctx context.Context, env *batch.Envelope) (*SubmitResult, error)

	// AccountInfo queries balance and sequence of an account.
	AccountInfo(ctx context.Context, addr wallet.Address) (*AccountInfo, error)
}

// Succeeded reports whether a result code is the ledger's success code.
func (r *SubmitResult) Succeeded() bool {
	return r.ResultCode == "tesSUCCESS"
}
