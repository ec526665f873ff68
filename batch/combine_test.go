// SPDX-License-Identifier: Apache-2.0
package batch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-demos/batch-backend/wallet"
)

// swapEnvelope assembles a two-leg swap between the first two accounts and
// fakes the autofill a ledger would perform.
func swapEnvelope(t *testing.T, accs []wallet.Account) *Envelope {
	t.Helper()
	a, b := accs[0].Address(), accs[1].Address()

	env, err := Assemble(a, AllOrNothing, []Intent{
		paymentIntent(a, b, 1000),
		paymentIntent(b, a, 2000),
	})
	require.NoError(t, err)

	env.Fee = "60"
	env.Sequence = 7
	env.Inner(0).Sequence = 8
	env.Inner(1).Sequence = 3
	return env
}

func TestSignCopyLeavesEnvelopeUntouched(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	before, err := json.Marshal(env)
	require.NoError(t, err)

	sc, err := SignCopy(env, accs[0])
	require.NoError(t, err)
	require.NotSame(t, env, sc.Envelope)
	require.Len(t, sc.Envelope.BatchSigners, 1)

	after, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, before, after, "signing must not mutate the shared envelope")

	// Mutating the copy must not leak into the original either.
	sc.Envelope.Inner(0).Fee = "999"
	assert.Equal(t, "0", env.Inner(0).Fee)
}

func TestSignCopyRejectsUnexpectedSigner(t *testing.T) {
	accs := testAccounts(t, 3)
	env := swapEnvelope(t, accs)

	_, err := SignCopy(env, accs[2])
	assert.ErrorIs(t, err, ErrUnexpectedSigner)
	assert.Contains(t, err.Error(), accs[2].Address().String(),
		"failure must name the implicated signer")
}

func TestCombineCommutativity(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	scA, err := SignCopy(env, accs[0])
	require.NoError(t, err)
	scB, err := SignCopy(env, accs[1])
	require.NoError(t, err)

	ab, err := Combine([]*SignedCopy{scA, scB})
	require.NoError(t, err)
	ba, err := Combine([]*SignedCopy{scB, scA})
	require.NoError(t, err)

	encAB, err := json.Marshal(ab)
	require.NoError(t, err)
	encBA, err := json.Marshal(ba)
	require.NoError(t, err)
	assert.Equal(t, encAB, encBA, "combine must be order-independent")

	require.Len(t, ab.BatchSigners, 2)
	assert.LessOrEqual(t, ab.BatchSigners[0].Account, ab.BatchSigners[1].Account,
		"signers sorted ascending by account")
}

func TestCombineRejectsDrift(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	scA, err := SignCopy(env, accs[0])
	require.NoError(t, err)
	scB, err := SignCopy(env, accs[1])
	require.NoError(t, err)

	// Tamper with one inner transaction of B's copy after signing.
	scB.Envelope.Inner(1).Amount = DropsAmount(999999)

	_, err = Combine([]*SignedCopy{scA, scB})
	assert.ErrorIs(t, err, ErrMismatchedEnvelope)
	assert.Contains(t, err.Error(), "copy 1", "failure must name the offending copy")
}

func TestCombineDuplicateSigner(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	scA, err := SignCopy(env, accs[0])
	require.NoError(t, err)
	scA2, err := SignCopy(env, accs[0])
	require.NoError(t, err)

	// Identical re-sign is idempotent: deterministic signing over the same
	// envelope carries no new information.
	out, err := Combine([]*SignedCopy{scA, scA2})
	require.NoError(t, err)
	assert.Len(t, out.BatchSigners, 1)

	// The same account claiming different bytes is a hard error.
	scA2.Signature.TxnSignature = "DEADBEEF"
	scA2.Envelope.BatchSigners[0].TxnSignature = "DEADBEEF"
	_, err = Combine([]*SignedCopy{scA, scA2})
	assert.ErrorIs(t, err, ErrDuplicateSigner)
	assert.Contains(t, err.Error(), accs[0].Address().String())
}

func TestCombineSingleCopyIsIdentity(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	sc, err := SignCopy(env, accs[0])
	require.NoError(t, err)

	out, err := Combine([]*SignedCopy{sc})
	require.NoError(t, err)

	encIn, err := json.Marshal(sc.Envelope)
	require.NoError(t, err)
	encOut, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, encIn, encOut)
}

func TestCombineEmpty(t *testing.T) {
	_, err := Combine(nil)
	assert.ErrorIs(t, err, ErrNoSignedCopies)
}

func TestCombinedEnvelopeVerifies(t *testing.T) {
	accs := testAccounts(t, 2)
	env := swapEnvelope(t, accs)

	scA, err := SignCopy(env, accs[0])
	require.NoError(t, err)
	scB, err := SignCopy(env, accs[1])
	require.NoError(t, err)

	out, err := Combine([]*SignedCopy{scA, scB})
	require.NoError(t, err)

	for _, ps := range out.BatchSigners {
		ok, err := VerifyPartialSignature(out, ps)
		require.NoError(t, err)
		assert.True(t, ok, "signature by %s must verify against the combined envelope", ps.Account)
	}
}
