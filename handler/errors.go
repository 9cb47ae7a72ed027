package handler

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateReference means a payment with the same reference already
	// exists. References carry enough entropy that this should never fire,
	// but the DB unique index backs it up.
	ErrDuplicateReference = errors.New("payment reference already exists")

	// ErrPaymentNotFound means no payment row exists for a reference.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrOversoldAtSettlement means the gateway reported success but the
	// capacity re-check inside the minting transaction failed. The payment
	// is settled FAILED locally while money may already have moved; it must
	// be escalated for manual refund, never swallowed.
	ErrOversoldAtSettlement = errors.New("ticket type sold out at settlement")
)

// InsufficientInventoryError names the ticket type that cannot satisfy a
// requested quantity.
type InsufficientInventoryError struct {
	TicketTypeName string
	Requested      int
	Remaining      int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %q: requested %d, %d remaining",
		e.TicketTypeName, e.Requested, e.Remaining)
}
