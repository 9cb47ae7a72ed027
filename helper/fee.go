package helper

import (
	"event_ticketing/model"

	"github.com/shopspring/decimal"
)

// Gateway fee schedule (Paystack NGN pricing, kobo): 1.5% of the amount,
// plus a 100 naira flat fee once the amount reaches 2,500 naira, the whole
// fee capped at 2,000 naira.
const (
	flatFeeThreshold = 250000
	flatFee          = 10000
	gatewayFeeCap    = 200000

	// AmountTolerance is the maximum difference (kobo) allowed between a
	// client-computed total and the server-side recomputation.
	AmountTolerance = 100
)

var (
	gatewayFeeRate  = decimal.RequireFromString("0.015")
	platformFeeRate = decimal.RequireFromString("0.07")
)

// GatewayFee computes the gateway charge for an amount in kobo.
// Rounding is half-up on the real-valued product; these integers feed real
// money so the tier/cap structure must hold exactly.
func GatewayFee(amount int64) int64 {
	fee := decimal.NewFromInt(amount).Mul(gatewayFeeRate).Round(0).IntPart()
	if amount < flatFeeThreshold {
		return fee
	}
	fee += flatFee
	if fee > gatewayFeeCap {
		return gatewayFeeCap
	}
	return fee
}

// ComputeBreakdown splits a ticket subtotal into the five settlement
// amounts. The gateway fee is customer-borne: it is added on top of the
// subtotal, never deducted from the organizer.
func ComputeBreakdown(subtotal int64) model.Breakdown {
	platform := decimal.NewFromInt(subtotal).Mul(platformFeeRate).Round(0).IntPart()
	fee := GatewayFee(subtotal)
	return model.Breakdown{
		Subtotal:        subtotal,
		GatewayFee:      fee,
		PlatformAmount:  platform,
		OrganizerAmount: subtotal - platform,
		TotalAmount:     subtotal + fee,
	}
}

// AmountsMatch reports whether a client-supplied total agrees with the
// server-side amount within AmountTolerance kobo.
func AmountsMatch(clientAmount, serverAmount int64) bool {
	diff := clientAmount - serverAmount
	if diff < 0 {
		diff = -diff
	}
	return diff <= AmountTolerance
}
