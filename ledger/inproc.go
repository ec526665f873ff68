// SPDX-License-Identifier: Apache-2.0
package ledger

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/log"
	"github.com/xrpl-demos/batch-backend/wallet"
)

// DefaultBaseFee is the in-process ledger's reference fee in drops.
const DefaultBaseFee = 10

// InProcLedger is an in-memory ledger for demos and tests. It allocates
// sequence numbers, sizes wrapper fees, verifies batch signatures and applies
// inner payments under the envelope's execution policy, so callers observe
// realistic policy semantics without a network.
type InProcLedger struct {
	log.Embedding

	mu       sync.Mutex
	baseFee  uint64
	accounts map[wallet.Address]*acctState
}

type acctState struct {
	sequence uint32
	balance  uint64
}

// NewInProcLedger creates an empty in-process ledger.
func NewInProcLedger() *InProcLedger {
	return &InProcLedger{
		Embedding: log.MakeEmbedding(log.Default()),
		baseFee:   DefaultBaseFee,
		accounts:  make(map[wallet.Address]*acctState),
	}
}

// Fund credits an account, creating it at sequence 1 if necessary.
func (l *InProcLedger) Fund(addr wallet.Address, drops uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[addr]
	if !ok {
		acc = &acctState{sequence: 1}
		l.accounts[addr] = acc
	}
	acc.balance += drops
}

// Autofill implements Client. Sequence numbers are read from the live
// counters at call time and consumed exactly once, so two inner transactions
// of one account can never claim the same number.
func (l *InProcLedger) Autofill(_ context.Context, env *batch.Envelope, signerCount int) error {
	if env.Fee != "" {
		return errors.Wrap(ErrAlreadyAutofilled, "autofill")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sub, err := l.lookupLocked(env.Account)
	if err != nil {
		return errors.WithMessage(err, "autofill: submitter")
	}
	env.Sequence = sub.nextSequence()

	for i := range env.RawTransactions {
		tx := env.Inner(i)
		acc, err := l.lookupLocked(tx.Account)
		if err != nil {
			return errors.WithMessagef(err, "autofill: inner transaction %d", i)
		}
		tx.Sequence = acc.nextSequence()
	}

	fee := l.baseFee * uint64(2+len(env.RawTransactions)+signerCount)
	env.Fee = strconv.FormatUint(fee, 10)

	l.Log().WithField("account", env.Account).
		Debugf("autofilled batch: fee=%s, %d inner transactions, %d signers",
			env.Fee, len(env.RawTransactions), signerCount)
	return nil
}

// Submit implements Client. It validates signature coverage before touching
// any state and applies inner payments under the envelope's policy.
func (l *InProcLedger) Submit(_ context.Context, env *batch.Envelope) (*SubmitResult, error) {
	if env.Fee == "" {
		return nil, errors.Wrap(ErrNotSubmittable, "submit: envelope not autofilled")
	}
	if len(env.BatchSigners) == 0 {
		return nil, errors.Wrap(ErrNotSubmittable, "submit: no batch signers")
	}
	if !env.Policy().Valid() {
		return nil, errors.Wrapf(ErrNotSubmittable, "submit: flags %#x carry no single policy", env.Flags)
	}
	if err := l.checkSignatures(env); err != nil {
		return nil, err
	}

	fee, err := strconv.ParseUint(env.Fee, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrNotSubmittable, "submit: fee %q", env.Fee)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sub, lerr := l.lookupLocked(env.Account)
	if lerr != nil {
		return nil, errors.WithMessage(lerr, "submit")
	}
	if sub.balance < fee {
		return l.result(env, "telINSUF_FEE_P")
	}
	sub.balance -= fee

	code := l.applyLocked(env)
	l.Log().WithField("account", env.Account).
		Infof("batch submitted: policy=%s result=%s", env.Policy(), code)
	return l.result(env, code)
}

// AccountInfo implements Client.
func (l *InProcLedger) AccountInfo(_ context.Context, addr wallet.Address) (*AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[addr]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAccount, "%s", addr)
	}
	return &AccountInfo{Address: addr, Sequence: acc.sequence, Balance: acc.balance}, nil
}

func (a *acctState) nextSequence() uint32 {
	seq := a.sequence
	a.sequence++
	return seq
}

func (l *InProcLedger) lookupLocked(addr string) (*acctState, error) {
	dec, err := wallet.DecodeAddress(addr)
	if err != nil {
		return nil, err
	}
	acc, ok := l.accounts[dec]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAccount, "%s", addr)
	}
	return acc, nil
}

// checkSignatures requires a valid signature from the submitter and from the
// source of every inner transaction.
func (l *InProcLedger) checkSignatures(env *batch.Envelope) error {
	valid := make(map[string]bool, len(env.BatchSigners))
	for _, ps := range env.BatchSigners {
		ok, err := batch.VerifyPartialSignature(env, ps)
		if err != nil {
			return errors.WithMessage(err, "submit")
		}
		if !ok {
			return errors.Wrapf(ErrNotSubmittable, "submit: invalid signature by %s", ps.Account)
		}
		valid[ps.Account] = true
	}

	if !valid[env.Account] {
		return errors.Wrapf(ErrNotSubmittable, "submit: missing signature of submitter %s", env.Account)
	}
	for i := range env.RawTransactions {
		if acc := env.Inner(i).Account; !valid[acc] {
			return errors.Wrapf(ErrNotSubmittable,
				"submit: missing signature of inner account %s (transaction %d)", acc, i)
		}
	}
	return nil
}

// applyLocked executes the inner transactions under the envelope's policy and
// returns the outer result code.
func (l *InProcLedger) applyLocked(env *batch.Envelope) string {
	switch env.Policy() {
	case batch.AllOrNothing:
		backup := l.snapshotLocked()
		for i := range env.RawTransactions {
			if err := l.applyInnerLocked(env.Inner(i)); err != nil {
				l.restoreLocked(backup)
				l.Log().WithError(err).Debugf("AllOrNothing batch voided by inner transaction %d", i)
				return "tecBATCH_FAILURE"
			}
		}
		return "tesSUCCESS"

	case batch.OnlyOne:
		for i := range env.RawTransactions {
			if err := l.applyInnerLocked(env.Inner(i)); err == nil {
				l.Log().Debugf("OnlyOne batch applied inner transaction %d", i)
				return "tesSUCCESS"
			}
		}
		return "tecBATCH_FAILURE"

	case batch.UntilFailure:
		for i := range env.RawTransactions {
			if err := l.applyInnerLocked(env.Inner(i)); err != nil {
				l.Log().WithError(err).Debugf("UntilFailure batch stopped at inner transaction %d", i)
				break
			}
		}
		return "tesSUCCESS"

	default: // Independent
		for i := range env.RawTransactions {
			if err := l.applyInnerLocked(env.Inner(i)); err != nil {
				l.Log().WithError(err).Debugf("Independent batch: inner transaction %d failed", i)
			}
		}
		return "tesSUCCESS"
	}
}

// applyInnerLocked applies one inner transaction. Only native payments move
// balances; trust lines, offers and account settings are accepted without a
// modelled effect.
func (l *InProcLedger) applyInnerLocked(tx *batch.InnerTransaction) error {
	if tx.TransactionType != batch.KindPayment {
		return nil
	}
	amt, ok := tx.Amount.(batch.XRPAmount)
	if !ok {
		return nil
	}

	drops, err := strconv.ParseUint(amt.Drops, 10, 64)
	if err != nil {
		return errors.Wrapf(ErrNotSubmittable, "drops %q", amt.Drops)
	}
	src, err := l.lookupLocked(tx.Account)
	if err != nil {
		return err
	}
	dst, err := l.lookupLocked(tx.Destination)
	if err != nil {
		return err
	}
	if src.balance < drops {
		return errors.Errorf("insufficient balance: %d < %d", src.balance, drops)
	}
	src.balance -= drops
	dst.balance += drops
	return nil
}

func (l *InProcLedger) snapshotLocked() map[wallet.Address]acctState {
	snap := make(map[wallet.Address]acctState, len(l.accounts))
	for addr, acc := range l.accounts {
		snap[addr] = *acc
	}
	return snap
}

func (l *InProcLedger) restoreLocked(snap map[wallet.Address]acctState) {
	for addr, acc := range snap {
		cp := acc
		l.accounts[addr] = &cp
	}
}

func (l *InProcLedger) result(env *batch.Envelope, code string) (*SubmitResult, error) {
	enc, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	sum := sha512.Sum512(enc)
	return &SubmitResult{
		Hash:       strings.ToUpper(hex.EncodeToString(sum[:32])),
		ResultCode: code,
	}, nil
}

var _ Client = (*InProcLedger)(nil)
