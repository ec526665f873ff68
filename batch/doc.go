// SPDX-License-Identifier: Apache-2.0

// Package batch implements the batch-transaction pipeline: intents are
// normalized into canonical inner transactions, assembled into an unsigned
// envelope, signed by each participant over an identical deep copy, and the
// partial signatures are combined deterministically into one submittable
// envelope. Autofill and submission live behind the ledger.Client interface;
// this package performs no I/O.
package batch
