// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"strconv"

	"github.com/pkg/errors"
)

// Normalize converts an intent into its canonical inner-transaction form. It
// never trusts caller-supplied flags, fee or signing key: those fields are
// overwritten unconditionally so that every produced record carries the
// inner-batch marker, a zero fee and an empty signing key. Normalization is
// pure; calling it twice with the same intent yields identical records.
func Normalize(in Intent) (*InnerTransaction, error) {
	switch in.Kind {
	case KindPayment, KindTrustSet, KindOfferCreate, KindAccountSet:
	default:
		return nil, errors.Wrapf(ErrUnsupportedKind, "normalize: %q", in.Kind)
	}

	tx := &InnerTransaction{
		TransactionType: in.Kind,
		Account:         in.Account.String(),
		Flags:           TfInnerBatchTxn,
		Sequence:        in.SequenceHint,
		Fee:             "0",
		SigningPubKey:   "",
	}

	switch in.Kind {
	case KindPayment:
		if in.Destination == nil {
			return nil, errors.Wrap(ErrInvalidIntent, "normalize: Payment without destination")
		}
		if in.Amount == nil {
			return nil, errors.Wrap(ErrInvalidIntent, "normalize: Payment without amount")
		}
		amt, err := canonicalAmount(in.Amount)
		if err != nil {
			return nil, errors.WithMessage(err, "normalize: Payment amount")
		}
		tx.Destination = in.Destination.String()
		tx.Amount = amt

	case KindTrustSet:
		limit, ok := in.Amount.(IssuedAmount)
		if !ok {
			return nil, errors.Wrap(ErrInvalidIntent, "normalize: TrustSet needs an issued-currency limit")
		}
		amt, err := canonicalAmount(limit)
		if err != nil {
			return nil, errors.WithMessage(err, "normalize: TrustSet limit")
		}
		tx.LimitAmount = amt

	case KindOfferCreate:
		if in.Amount == nil || in.SecondAmount == nil {
			return nil, errors.Wrap(ErrInvalidIntent, "normalize: OfferCreate needs TakerGets and TakerPays")
		}
		gets, err := canonicalAmount(in.Amount)
		if err != nil {
			return nil, errors.WithMessage(err, "normalize: OfferCreate TakerGets")
		}
		pays, err := canonicalAmount(in.SecondAmount)
		if err != nil {
			return nil, errors.WithMessage(err, "normalize: OfferCreate TakerPays")
		}
		tx.TakerGets = gets
		tx.TakerPays = pays

	case KindAccountSet:
		// Carries no amount fields.
	}

	return tx, nil
}

// canonicalAmount validates an amount and rewrites issued-currency codes into
// their fixed-width wire form. Exhaustive over the Amount union.
func canonicalAmount(a Amount) (Amount, error) {
	switch amt := a.(type) {
	case XRPAmount:
		if _, err := strconv.ParseUint(amt.Drops, 10, 64); err != nil {
			return nil, errors.Wrapf(ErrInvalidIntent, "drops value %q", amt.Drops)
		}
		return amt, nil

	case IssuedAmount:
		if amt.Issuer == "" || amt.Value == "" {
			return nil, errors.Wrap(ErrInvalidIntent, "issued amount needs issuer and value")
		}
		code, err := EncodeCurrency(amt.Currency)
		if err != nil {
			return nil, err
		}
		amt.Currency = code
		return amt, nil

	case MPTAmount:
		if amt.IssuanceID == "" || amt.Value == "" {
			return nil, errors.Wrap(ErrInvalidIntent, "MPT amount needs issuance id and value")
		}
		return amt, nil
	}
	return nil, errors.Wrapf(ErrInvalidIntent, "unknown amount shape %T", a)
}
