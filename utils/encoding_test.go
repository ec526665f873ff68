package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithUnderscores(t *testing.T) {
	assert.Equal(t, "0", FormatWithUnderscores(0))
	assert.Equal(t, "999", FormatWithUnderscores(999))
	assert.Equal(t, "1_000", FormatWithUnderscores(1000))
	assert.Equal(t, "100_000_000", FormatWithUnderscores(100_000_000))
}

func TestDropsXRPRoundTrip(t *testing.T) {
	cases := map[uint64]string{
		0:          "0",
		1:          "0.000001",
		500_000:    "0.5",
		1_000_000:  "1",
		12_345_678: "12.345678",
	}
	for drops, xrp := range cases {
		assert.Equal(t, xrp, DropsToXRP(drops))
		back, err := XRPToDrops(xrp)
		require.NoError(t, err)
		assert.Equal(t, drops, back)
	}

	_, err := XRPToDrops("1.2345678")
	assert.Error(t, err, "more than 6 decimal places")
	_, err = XRPToDrops("abc")
	assert.Error(t, err)
}

func TestXRPToDropsOverflow(t *testing.T) {
	// The largest representable drop count.
	max, err := XRPToDrops("18446744073709.551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), max)

	_, err = XRPToDrops("18446744073709.551616")
	assert.Error(t, err, "one drop past the ceiling must not wrap")
	_, err = XRPToDrops("18446744073710")
	assert.Error(t, err)
	_, err = XRPToDrops("99999999999999999999")
	assert.Error(t, err)
}
