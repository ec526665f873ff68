// SPDX-License-Identifier: Apache-2.0

package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	ptest "polycry.pt/poly-go/test"
)

func TestAccountDeterminism(t *testing.T) {
	rng := ptest.Prng(t)
	w, err := NewRAMWallet(rng)
	require.NoError(t, err, "creating wallet")

	acc := w.NewAccount()

	sig1, err := acc.SignData([]byte("payload"))
	require.NoError(t, err)
	sig2, err := acc.SignData([]byte("payload"))
	require.NoError(t, err)
	require.Equal(t, sig1, sig2, "signing must be deterministic")

	require.True(t, VerifyData(acc.PubKeyHex(), []byte("payload"), sig1))
	require.False(t, VerifyData(acc.PubKeyHex(), []byte("tampered"), sig1))
}

func TestFsWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_wallet")

	w, err := CreateOrLoadFsWallet(path, ptest.Prng(t))
	require.NoError(t, err, "creating wallet")

	acc := w.NewAccount()

	load, err := CreateOrLoadFsWallet(path, nil)
	require.NoError(t, err, "loading wallet")

	_, err = load.Unlock(acc.Address())
	require.Error(t, err, "expected unlocking to fail")

	w.IncrementUsage(acc.Address())
	load, err = CreateOrLoadFsWallet(path, nil)
	require.NoError(t, err, "loading wallet")

	acc2, err := load.Unlock(acc.Address())
	require.NoError(t, err, "unlocking account")
	require.Equal(t, acc, acc2, "loaded account must be the generated account")
}

func TestLockAll(t *testing.T) {
	w, err := NewRAMWallet(ptest.Prng(t))
	require.NoError(t, err)

	acc := w.NewAccount()
	addr := acc.Address()

	w.LockAll()
	relocked, err := w.Unlock(addr)
	require.NoError(t, err, "unlock regenerates the key from the seed")
	require.Equal(t, addr, relocked.Address())
}
