package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// dropsPerXRP is the number of drops in one XRP.
const dropsPerXRP = 1_000_000

// FormatWithUnderscores renders a number with thousands groups separated by
// underscores, the way ledger explorers display drop amounts.
func FormatWithUnderscores(n uint64) string {
	s := fmt.Sprintf("%d", n)
	parts := make([]string, 0, (len(s)+2)/3)

	for len(s) > 0 {
		chunkSize := len(s) % 3
		if chunkSize == 0 {
			chunkSize = 3
		}
		parts = append(parts, s[:chunkSize])
		s = s[chunkSize:]
	}

	return strings.Join(parts, "_")
}

// DropsToXRP converts a drop count to a decimal XRP string without losing
// precision.
func DropsToXRP(drops uint64) string {
	whole := drops / dropsPerXRP
	frac := drops % dropsPerXRP
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fracStr := fmt.Sprintf("%06d", frac)
	fracStr = strings.TrimRight(fracStr, "0")
	return strconv.FormatUint(whole, 10) + "." + fracStr
}

// XRPToDrops parses a decimal XRP string into drops.
func XRPToDrops(xrp string) (uint64, error) {
	whole, frac := xrp, ""
	if i := strings.IndexByte(xrp, '.'); i >= 0 {
		whole, frac = xrp[:i], xrp[i+1:]
	}
	if len(frac) > 6 {
		return 0, fmt.Errorf("XRP value %q has more than 6 decimal places", xrp)
	}
	frac += strings.Repeat("0", 6-len(frac))

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("XRP value %q: %v", xrp, err)
	}
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("XRP value %q: %v", xrp, err)
	}
	if w > (math.MaxUint64-f)/dropsPerXRP {
		return 0, fmt.Errorf("XRP value %q overflows the drop range", xrp)
	}
	return w*dropsPerXRP + f, nil
}
