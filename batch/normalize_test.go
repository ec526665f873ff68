// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnforcesInvariants(t *testing.T) {
	accs := testAccounts(t, 2)
	a, b := accs[0].Address(), accs[1].Address()

	in := paymentIntent(a, b, 5000)
	in.SequenceHint = 42

	tx, err := Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, TfInnerBatchTxn, tx.Flags, "inner-batch marker bit")
	assert.Equal(t, "0", tx.Fee, "inner transactions never pay their own fee")
	assert.Equal(t, "", tx.SigningPubKey, "inner transactions are never independently signed")
	assert.Equal(t, uint32(42), tx.Sequence, "sequence hint carried until autofill")
	assert.Equal(t, a.String(), tx.Account)
	assert.Equal(t, b.String(), tx.Destination)
}

func TestNormalizeIsPure(t *testing.T) {
	accs := testAccounts(t, 2)
	in := paymentIntent(accs[0].Address(), accs[1].Address(), 5000)

	tx1, err := Normalize(in)
	require.NoError(t, err)
	tx2, err := Normalize(in)
	require.NoError(t, err)

	b1, err := json.Marshal(tx1)
	require.NoError(t, err)
	b2, err := json.Marshal(tx2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "normalization must inject no timestamps or nonces")
}

func TestNormalizeKindAllowlist(t *testing.T) {
	accs := testAccounts(t, 1)
	a := accs[0].Address()

	for _, kind := range []Kind{"SignerListSet", "Batch", "EscrowCreate", ""} {
		_, err := Normalize(Intent{Kind: kind, Account: a})
		assert.ErrorIs(t, err, ErrUnsupportedKind, "kind %q", kind)
	}

	_, err := Normalize(Intent{Kind: KindAccountSet, Account: a})
	assert.NoError(t, err, "AccountSet needs no amount fields")
}

func TestNormalizeFieldValidation(t *testing.T) {
	accs := testAccounts(t, 2)
	a, b := accs[0].Address(), accs[1].Address()

	_, err := Normalize(Intent{Kind: KindPayment, Account: a, Amount: DropsAmount(1)})
	assert.ErrorIs(t, err, ErrInvalidIntent, "Payment without destination")

	_, err = Normalize(Intent{Kind: KindPayment, Account: a, Destination: &b})
	assert.ErrorIs(t, err, ErrInvalidIntent, "Payment without amount")

	_, err = Normalize(Intent{Kind: KindPayment, Account: a, Destination: &b,
		Amount: XRPAmount{Drops: "12.5"}})
	assert.ErrorIs(t, err, ErrInvalidIntent, "drops must be an integer string")

	_, err = Normalize(Intent{Kind: KindTrustSet, Account: a, Amount: DropsAmount(1)})
	assert.ErrorIs(t, err, ErrInvalidIntent, "TrustSet limit must be issued currency")

	_, err = Normalize(Intent{Kind: KindOfferCreate, Account: a, Amount: DropsAmount(1)})
	assert.ErrorIs(t, err, ErrInvalidIntent, "OfferCreate without TakerPays")
}

func TestNormalizeEncodesCurrency(t *testing.T) {
	accs := testAccounts(t, 2)
	a, b := accs[0].Address(), accs[1].Address()

	tx, err := Normalize(Intent{
		Kind:    KindTrustSet,
		Account: a,
		Amount:  IssuedAmount{Currency: "DOGECOIN", Issuer: b.String(), Value: "9"},
	})
	require.NoError(t, err)

	limit := tx.LimitAmount.(IssuedAmount)
	assert.Len(t, limit.Currency, 40, "long codes become fixed-width hex")

	back, err := DecodeCurrency(limit.Currency)
	require.NoError(t, err)
	assert.Equal(t, "DOGECOIN", back)

	tx, err = Normalize(Intent{
		Kind:    KindTrustSet,
		Account: a,
		Amount:  IssuedAmount{Currency: "USD", Issuer: b.String(), Value: "9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", tx.LimitAmount.(IssuedAmount).Currency)
}

func TestNormalizeOfferCreate(t *testing.T) {
	accs := testAccounts(t, 2)
	a, b := accs[0].Address(), accs[1].Address()

	tx, err := Normalize(Intent{
		Kind:         KindOfferCreate,
		Account:      a,
		Amount:       DropsAmount(77),
		SecondAmount: IssuedAmount{Currency: "EUR", Issuer: b.String(), Value: "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "77", tx.TakerGets.(XRPAmount).Drops)
	assert.Equal(t, "EUR", tx.TakerPays.(IssuedAmount).Currency)
	assert.Nil(t, tx.Amount)
}
