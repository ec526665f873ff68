// SPDX-License-Identifier: Apache-2.0
package ledger

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/log"
	"github.com/xrpl-demos/batch-backend/wallet"
)

// Config collects the parameters of a websocket endpoint.
type Config struct {
	// URL of the websocket endpoint, e.g. "wss://s.devnet.rippletest.net:51233".
	URL string
	// DialTimeout bounds connection establishment. Zero means no timeout.
	DialTimeout time.Duration
}

// Connection talks JSON over a websocket to a ledger node. Requests are
// correlated to responses by id; the connection serializes request/response
// pairs, so it is safe for concurrent use.
type Connection struct {
	log.Embedding

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

// Dial opens a websocket connection to the configured endpoint.
func Dial(cfg Config) (*Connection, error) {
	dialer := websocket.Dialer{HandshakeTimeout: cfg.DialTimeout}
	conn, _, err := dialer.Dial(cfg.URL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", cfg.URL)
	}
	return &Connection{
		Embedding: log.MakeEmbedding(log.Default().WithField("endpoint", cfg.URL)),
		conn:      conn,
	}, nil
}

// Close shuts the connection down.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

type wsResponse struct {
	ID     uint64          `json:"id"`
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

// request sends one command and waits for the matching response. Websocket
// reads cannot take a context, so a watcher goroutine force-closes the
// connection when the context fires; the connection is unusable afterwards,
// as it is after any read error.
func (c *Connection) request(ctx context.Context, payload map[string]interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.nextID++
	id := c.nextID
	payload["id"] = id

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-done:
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}

	if err := c.conn.WriteJSON(payload); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(err, "sending %v command", payload["command"])
	}

	for {
		var resp wsResponse
		if err := c.conn.ReadJSON(&resp); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, errors.Wrapf(err, "reading %v response", payload["command"])
		}
		if resp.ID != id {
			// Stream or stray message; not ours.
			continue
		}
		if resp.Status != "success" {
			return nil, errors.Errorf("%v command failed: %s", payload["command"], resp.Error)
		}
		return resp.Result, nil
	}
}

// baseFee queries the node's current reference fee in drops.
func (c *Connection) baseFee(ctx context.Context) (uint64, error) {
	res, err := c.request(ctx, map[string]interface{}{"command": "fee"})
	if err != nil {
		return 0, err
	}
	var out struct {
		Drops struct {
			BaseFee string `json:"base_fee"`
		} `json:"drops"`
	}
	if err := json.Unmarshal(res, &out); err != nil {
		return 0, errors.Wrap(err, "decoding fee response")
	}
	return strconv.ParseUint(out.Drops.BaseFee, 10, 64)
}

func (c *Connection) accountData(ctx context.Context, account string) (seq uint32, balance uint64, err error) {
	res, err := c.request(ctx, map[string]interface{}{
		"command":      "account_info",
		"account":      account,
		"ledger_index": "current",
	})
	if err != nil {
		return 0, 0, err
	}
	var out struct {
		AccountData struct {
			Sequence uint32 `json:"Sequence"`
			Balance  string `json:"Balance"`
		} `json:"account_data"`
	}
	if err := json.Unmarshal(res, &out); err != nil {
		return 0, 0, errors.Wrap(err, "decoding account_info response")
	}
	bal, err := strconv.ParseUint(out.AccountData.Balance, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "account %s balance", account)
	}
	return out.AccountData.Sequence, bal, nil
}

// Autofill implements Client against a live node. Sequences are fetched
// fresh for every account; consecutive inner transactions of one account
// receive consecutive numbers.
func (c *Connection) Autofill(ctx context.Context, env *batch.Envelope, signerCount int) error {
	if env.Fee != "" {
		return errors.Wrap(ErrAlreadyAutofilled, "autofill")
	}

	base, err := c.baseFee(ctx)
	if err != nil {
		return errors.WithMessage(err, "autofill")
	}

	next := make(map[string]uint32)
	alloc := func(account string) (uint32, error) {
		seq, ok := next[account]
		if !ok {
			seq, _, err = c.accountData(ctx, account)
			if err != nil {
				return 0, err
			}
		}
		next[account] = seq + 1
		return seq, nil
	}

	seq, err := alloc(env.Account)
	if err != nil {
		return errors.WithMessage(err, "autofill: submitter")
	}
	env.Sequence = seq

	for i := range env.RawTransactions {
		tx := env.Inner(i)
		seq, err := alloc(tx.Account)
		if err != nil {
			return errors.WithMessagef(err, "autofill: inner transaction %d", i)
		}
		tx.Sequence = seq
	}

	env.Fee = strconv.FormatUint(base*uint64(2+len(env.RawTransactions)+signerCount), 10)
	c.Log().Debugf("autofilled batch for %s: fee=%s", env.Account, env.Fee)
	return nil
}

// Submit implements Client against a live node. The node's result code is
// surfaced verbatim; no retries are attempted here.
func (c *Connection) Submit(ctx context.Context, env *batch.Envelope) (*SubmitResult, error) {
	if env.Fee == "" || len(env.BatchSigners) == 0 {
		return nil, errors.Wrap(ErrNotSubmittable, "submit")
	}

	res, err := c.request(ctx, map[string]interface{}{
		"command": "submit",
		"tx_json": env,
	})
	if err != nil {
		return nil, errors.Wrap(ErrNetworkSubmission, err.Error())
	}

	var out struct {
		EngineResult string `json:"engine_result"`
		TxJSON       struct {
			Hash string `json:"hash"`
		} `json:"tx_json"`
	}
	if err := json.Unmarshal(res, &out); err != nil {
		return nil, errors.Wrap(err, "decoding submit response")
	}
	return &SubmitResult{Hash: out.TxJSON.Hash, ResultCode: out.EngineResult}, nil
}

// AccountInfo implements Client against a live node.
func (c *Connection) AccountInfo(ctx context.Context, addr wallet.Address) (*AccountInfo, error) {
	seq, bal, err := c.accountData(ctx, addr.String())
	if err != nil {
		return nil, err
	}
	return &AccountInfo{Address: addr, Sequence: seq, Balance: bal}, nil
}

var _ Client = (*Connection)(nil)
