// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"time"

	"github.com/xrpl-demos/batch-backend/utils"
)

// Balance queries the client account's current balance in drops.
func (c *BatchClient) Balance(ctx context.Context) (uint64, error) {
	info, err := c.ledger.AccountInfo(ctx, c.Address())
	if err != nil {
		return 0, err
	}
	return info.Balance, nil
}

// FormatBalance renders a drops balance for display.
func FormatBalance(drops uint64) string {
	return utils.FormatWithUnderscores(drops) + " drops (" + utils.DropsToXRP(drops) + " XRP)"
}

// PollBalances calls onChange whenever the account balance changes, once per
// interval, until the context is cancelled.
func (c *BatchClient) PollBalances(ctx context.Context, interval time.Duration, onChange func(uint64)) {
	defer c.Log().Debugf("PollBalances: stopped")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last uint64
	seen := false
	for {
		balance, err := c.Balance(ctx)
		if err != nil {
			c.Log().WithError(err).Warnf("PollBalances: querying balance")
		} else if !seen || balance != last {
			last, seen = balance, true
			onChange(balance)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
