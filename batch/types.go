// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"math/bits"

	"github.com/xrpl-demos/batch-backend/wallet"
)

const (
	// MinInnerTransactions and MaxInnerTransactions bound the number of inner
	// transactions a batch envelope may carry.
	MinInnerTransactions = 2
	MaxInnerTransactions = 8

	// TfInnerBatchTxn marks a transaction as existing only inside a batch
	// wrapper. It is distinct from every transaction's semantic flags.
	TfInnerBatchTxn uint32 = 0x40000000

	// TransactionTypeBatch is the outer envelope's transaction type.
	TransactionTypeBatch = "Batch"
)

// ExecutionPolicy governs how inner-transaction failures propagate across a
// batch. Exactly one policy bit must be set on an envelope.
type ExecutionPolicy uint32

const (
	// AllOrNothing voids the whole batch on any inner failure.
	AllOrNothing ExecutionPolicy = 0x00010000
	// OnlyOne applies only the first inner transaction that succeeds.
	OnlyOne ExecutionPolicy = 0x00020000
	// UntilFailure applies in order and stops at the first failure.
	UntilFailure ExecutionPolicy = 0x00040000
	// Independent applies all inner transactions regardless of outcome.
	Independent ExecutionPolicy = 0x00080000

	policyMask = AllOrNothing | OnlyOne | UntilFailure | Independent
)

// Valid reports whether exactly one policy bit is set and no foreign bits are.
func (p ExecutionPolicy) Valid() bool {
	return p&^policyMask == 0 && bits.OnesCount32(uint32(p)) == 1
}

func (p ExecutionPolicy) String() string {
	switch p {
	case AllOrNothing:
		return "AllOrNothing"
	case OnlyOne:
		return "OnlyOne"
	case UntilFailure:
		return "UntilFailure"
	case Independent:
		return "Independent"
	}
	return "InvalidPolicy"
}

// Kind is a transaction type name as it appears on the wire.
type Kind string

const (
	KindPayment     Kind = "Payment"
	KindTrustSet    Kind = "TrustSet"
	KindOfferCreate Kind = "OfferCreate"
	KindAccountSet  Kind = "AccountSet"
)

// Intent is the user-declared skeleton for one leg of a batch. It is
// immutable once handed to Assemble; the assembler converts it into a
// canonical inner transaction.
type Intent struct {
	// Kind selects the transaction type of the leg.
	Kind Kind
	// Account is the source account of the leg.
	Account wallet.Address
	// Destination is the receiving account (Payment only).
	Destination *wallet.Address
	// Amount is the principal amount: Payment's Amount, TrustSet's
	// LimitAmount, OfferCreate's TakerGets.
	Amount Amount
	// SecondAmount is OfferCreate's TakerPays; unused otherwise.
	SecondAmount Amount
	// SequenceHint pre-seeds the sequence field. Autofill overwrites it with
	// a fresh allocation before signing.
	SequenceHint uint32
}

// InnerTransaction is the canonical, finalized form of an intent as injected
// into RawTransactions. Its Flags always carry TfInnerBatchTxn, its Fee is the
// literal "0" and its SigningPubKey the empty sentinel.
type InnerTransaction struct {
	TransactionType Kind   `json:"TransactionType"`
	Account         string `json:"Account"`
	Destination     string `json:"Destination,omitempty"`
	Amount          Amount `json:"Amount,omitempty"`
	LimitAmount     Amount `json:"LimitAmount,omitempty"`
	TakerGets       Amount `json:"TakerGets,omitempty"`
	TakerPays       Amount `json:"TakerPays,omitempty"`
	Flags           uint32 `json:"Flags"`
	Sequence        uint32 `json:"Sequence"`
	Fee             string `json:"Fee"`
	SigningPubKey   string `json:"SigningPubKey"`
}

// RawTransaction wraps an inner transaction the way the wire format nests it.
type RawTransaction struct {
	RawTransaction *InnerTransaction `json:"RawTransaction"`
}

// PartialSignature is one signer's contribution to a multi-party batch.
type PartialSignature struct {
	Account       string `json:"Account"`
	SigningPubKey string `json:"SigningPubKey"`
	TxnSignature  string `json:"TxnSignature"`
}

// Envelope is the outer batch container. Once autofilled it is treated as
// immutable; signing and combining always operate on deep copies.
type Envelope struct {
	TransactionType string             `json:"TransactionType"`
	Account         string             `json:"Account"`
	Flags           uint32             `json:"Flags"`
	Sequence        uint32             `json:"Sequence,omitempty"`
	RawTransactions []RawTransaction   `json:"RawTransactions"`
	BatchSigners    []PartialSignature `json:"BatchSigners,omitempty"`
	Fee             string             `json:"Fee,omitempty"`
}

// Policy returns the envelope's execution policy bits.
func (e *Envelope) Policy() ExecutionPolicy {
	return ExecutionPolicy(e.Flags) & policyMask
}

// Inner returns the i-th inner transaction.
func (e *Envelope) Inner(i int) *InnerTransaction {
	return e.RawTransactions[i].RawTransaction
}

// Clone returns a deep copy of the envelope. Amount values are immutable, so
// sharing them between copies is safe.
func (e *Envelope) Clone() *Envelope {
	cp := *e
	cp.RawTransactions = make([]RawTransaction, len(e.RawTransactions))
	for i, rt := range e.RawTransactions {
		inner := *rt.RawTransaction
		cp.RawTransactions[i] = RawTransaction{RawTransaction: &inner}
	}
	cp.BatchSigners = append([]PartialSignature(nil), e.BatchSigners...)
	return &cp
}

// References reports whether addr is the submitting account or the source of
// any inner transaction.
func (e *Envelope) References(addr wallet.Address) bool {
	enc := addr.String()
	if e.Account == enc {
		return true
	}
	for _, rt := range e.RawTransactions {
		if rt.RawTransaction.Account == enc {
			return true
		}
	}
	return false
}
