// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Amount is the tagged union of the three asset shapes a transaction can
// carry: native XRP (a drops string on the wire), an issued currency object,
// or a multi-purpose token object. Shape dispatch happens exclusively here;
// no other package branches on amount shapes.
type Amount interface {
	json.Marshaler

	isAmount()
}

// XRPAmount is a native amount denominated in drops.
type XRPAmount struct {
	Drops string
}

// DropsAmount is a convenience constructor for native amounts.
func DropsAmount(drops uint64) XRPAmount {
	return XRPAmount{Drops: strconv.FormatUint(drops, 10)}
}

func (XRPAmount) isAmount() {}

// MarshalJSON renders the amount as the bare drops string the wire expects.
func (a XRPAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Drops)
}

// IssuedAmount is a non-native asset identified by currency code and issuer.
type IssuedAmount struct {
	Currency string
	Issuer   string
	Value    string
}

func (IssuedAmount) isAmount() {}

func (a IssuedAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(issuedAmountJSON{
		Currency: a.Currency,
		Issuer:   a.Issuer,
		Value:    a.Value,
	})
}

// MPTAmount is a multi-purpose token amount identified by its issuance id.
type MPTAmount struct {
	IssuanceID string
	Value      string
}

func (MPTAmount) isAmount() {}

func (a MPTAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(mptAmountJSON{
		IssuanceID: a.IssuanceID,
		Value:      a.Value,
	})
}

type issuedAmountJSON struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

type mptAmountJSON struct {
	IssuanceID string `json:"mpt_issuance_id"`
	Value      string `json:"value"`
}

// DecodeAmount parses any of the three wire shapes into an Amount.
func DecodeAmount(raw json.RawMessage) (Amount, error) {
	var drops string
	if err := json.Unmarshal(raw, &drops); err == nil {
		return XRPAmount{Drops: drops}, nil
	}

	var probe struct {
		Currency   *string `json:"currency"`
		IssuanceID *string `json:"mpt_issuance_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.Wrapf(ErrInvalidIntent, "undecodable amount %s", raw)
	}

	switch {
	case probe.IssuanceID != nil:
		var m mptAmountJSON
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, errors.Wrapf(ErrInvalidIntent, "undecodable MPT amount %s", raw)
		}
		return MPTAmount{IssuanceID: m.IssuanceID, Value: m.Value}, nil
	case probe.Currency != nil:
		var c issuedAmountJSON
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrapf(ErrInvalidIntent, "undecodable issued amount %s", raw)
		}
		return IssuedAmount{Currency: c.Currency, Issuer: c.Issuer, Value: c.Value}, nil
	}
	return nil, errors.Wrapf(ErrInvalidIntent, "amount %s matches no known shape", raw)
}

// UnmarshalJSON decodes an inner transaction, dispatching the amount-shaped
// fields through DecodeAmount.
func (tx *InnerTransaction) UnmarshalJSON(data []byte) error {
	type alias struct {
		TransactionType Kind            `json:"TransactionType"`
		Account         string          `json:"Account"`
		Destination     string          `json:"Destination"`
		Amount          json.RawMessage `json:"Amount"`
		LimitAmount     json.RawMessage `json:"LimitAmount"`
		TakerGets       json.RawMessage `json:"TakerGets"`
		TakerPays       json.RawMessage `json:"TakerPays"`
		Flags           uint32          `json:"Flags"`
		Sequence        uint32          `json:"Sequence"`
		Fee             string          `json:"Fee"`
		SigningPubKey   string          `json:"SigningPubKey"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*tx = InnerTransaction{
		TransactionType: a.TransactionType,
		Account:         a.Account,
		Destination:     a.Destination,
		Flags:           a.Flags,
		Sequence:        a.Sequence,
		Fee:             a.Fee,
		SigningPubKey:   a.SigningPubKey,
	}

	for _, f := range []struct {
		raw json.RawMessage
		dst *Amount
	}{
		{a.Amount, &tx.Amount},
		{a.LimitAmount, &tx.LimitAmount},
		{a.TakerGets, &tx.TakerGets},
		{a.TakerPays, &tx.TakerPays},
	} {
		if len(f.raw) == 0 {
			continue
		}
		amt, err := DecodeAmount(f.raw)
		if err != nil {
			return err
		}
		*f.dst = amt
	}
	return nil
}
