// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidBatchSize the number of inner transactions was out of range.
	ErrInvalidBatchSize = errors.New("batch size out of range")
	// ErrInvalidExecutionPolicy zero or more than one policy bit was set.
	ErrInvalidExecutionPolicy = errors.New("exactly one execution policy must be set")
	// ErrUnsupportedKind an intent's transaction kind is not batch-capable.
	ErrUnsupportedKind = errors.New("transaction kind not allowed inside a batch")
	// ErrInvalidIntent an intent is missing or misusing a field.
	ErrInvalidIntent = errors.New("invalid inner transaction intent")
	// ErrInvalidCurrency a currency code could not be encoded or decoded.
	ErrInvalidCurrency = errors.New("invalid currency code")
	// ErrUnexpectedSigner a signing key does not belong to any account of the batch.
	ErrUnexpectedSigner = errors.New("signer not referenced by the batch")
	// ErrNoSignedCopies combine was called without any signed copies.
	ErrNoSignedCopies = errors.New("no signed copies to combine")
	// ErrMismatchedEnvelope signed copies disagree on the canonical envelope.
	ErrMismatchedEnvelope = errors.New("signed copies disagree on the envelope")
	// ErrDuplicateSigner one account supplied two different signatures.
	ErrDuplicateSigner = errors.New("conflicting signatures for the same account")
)
