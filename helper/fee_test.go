package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayFeeBelowThreshold(t *testing.T) {
	// plain 1.5%, no flat fee
	assert.Equal(t, int64(1500), GatewayFee(100000))
	assert.Equal(t, int64(150), GatewayFee(10000))
	assert.Equal(t, int64(0), GatewayFee(0))

	// half-up rounding on the real-valued product
	assert.Equal(t, int64(2), GatewayFee(100))  // 1.5
	assert.Equal(t, int64(2), GatewayFee(101))  // 1.515
	assert.Equal(t, int64(1), GatewayFee(99))   // 1.485
	assert.Equal(t, int64(50), GatewayFee(3333)) // 49.995

	// last amount before the flat fee kicks in
	assert.Equal(t, int64(3750), GatewayFee(249999))
}

func TestGatewayFeeWithFlatFee(t *testing.T) {
	// exactly at the threshold the flat fee applies
	assert.Equal(t, int64(13750), GatewayFee(250000))
	assert.Equal(t, int64(17500), GatewayFee(500000))
	assert.Equal(t, int64(25000), GatewayFee(1000000))
}

func TestGatewayFeeCap(t *testing.T) {
	// 1.5% + flat fee would exceed the cap
	assert.Equal(t, int64(200000), GatewayFee(20000000))
	assert.Equal(t, int64(200000), GatewayFee(100000000))

	// just under the cap: 1.5% of 12,660,000 = 189,900 (+10,000 = 199,900)
	assert.Equal(t, int64(199900), GatewayFee(12660000))
	// first amount where the cap binds: fee would be 200,050
	assert.Equal(t, int64(200000), GatewayFee(12670000))
}

func TestComputeBreakdownInvariants(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 99, 100, 3333, 249999, 250000, 500000, 12345678} {
		bd := ComputeBreakdown(subtotal)

		assert.Equal(t, subtotal, bd.PlatformAmount+bd.OrganizerAmount,
			"platform + organizer must equal subtotal for %d", subtotal)
		assert.Equal(t, subtotal+bd.GatewayFee, bd.TotalAmount,
			"total must be subtotal + fee for %d", subtotal)
		assert.Equal(t, GatewayFee(subtotal), bd.GatewayFee)
	}
}

func TestComputeBreakdownWorkedExample(t *testing.T) {
	// ₦5,000 ticket: fee 7,500 + 10,000 = 17,500 (under the cap),
	// platform 7% = 35,000, organizer keeps the rest.
	bd := ComputeBreakdown(500000)

	assert.Equal(t, int64(500000), bd.Subtotal)
	assert.Equal(t, int64(17500), bd.GatewayFee)
	assert.Equal(t, int64(517500), bd.TotalAmount)
	assert.Equal(t, int64(35000), bd.PlatformAmount)
	assert.Equal(t, int64(465000), bd.OrganizerAmount)
}

func TestAmountsMatch(t *testing.T) {
	assert.True(t, AmountsMatch(517500, 517500))
	assert.True(t, AmountsMatch(517600, 517500))  // exactly +100
	assert.True(t, AmountsMatch(517400, 517500))  // exactly -100
	assert.False(t, AmountsMatch(517601, 517500)) // +101
	assert.False(t, AmountsMatch(517399, 517500)) // -101
}
