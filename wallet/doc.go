// SPDX-License-Identifier: Apache-2.0

// Package wallet contains the local key store used by the batch demos. It
// derives ed25519 accounts from a wallet seed and renders their classic
// base58check addresses.
package wallet
