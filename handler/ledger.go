package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"event_ticketing/helper"
	"event_ticketing/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock on the selected rows. sqlite (used by the
// tests) rejects FOR UPDATE; its transactions are single-writer anyway, so
// the capacity re-check still serializes there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreatePaymentRecord opens a PENDING payment row. The reference must be
// unique; the DB index enforces it even if the pre-check races.
func CreatePaymentRecord(db *gorm.DB, payment *model.Payment) error {
	var count int64
	if err := db.Model(&model.Payment{}).
		Where("reference = ?", payment.Reference).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateReference
	}

	payment.Status = model.PaymentPending
	if err := db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// TransitionPayment moves a payment to a terminal status exactly once.
//
// Target COMPLETED re-checks capacity for every snapshot line under ticket
// type row locks inside the same transaction that mints the tickets. If any
// type would oversell, the payment settles FAILED instead and
// ErrOversoldAtSettlement is returned with the (committed) payment so the
// caller can escalate. Target FAILED just flips the status.
//
// Re-entry on an already-settled payment is a no-op returning the existing
// state: a client poll and a gateway webhook may race on the same reference
// and at most one of them mints.
func TransitionPayment(db *gorm.DB, reference string, target string) (*model.Payment, bool, error) {
	if target != model.PaymentCompleted && target != model.PaymentFailed {
		return nil, false, fmt.Errorf("invalid transition target %q", target)
	}

	var payment model.Payment
	var minted bool
	var oversold bool

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("reference = ?", reference).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		// Terminal states are terminal.
		if payment.Status != model.PaymentPending {
			return nil
		}

		if target == model.PaymentFailed {
			return setPaymentStatus(tx, &payment, model.PaymentFailed)
		}

		var snapshot model.PaymentSnapshot
		if err := json.Unmarshal([]byte(payment.Metadata), &snapshot); err != nil {
			return fmt.Errorf("corrupt payment snapshot for %s: %w", reference, err)
		}

		wanted := make(map[uint]int)
		for _, line := range snapshot.Lines {
			wanted[line.TicketTypeID] += line.Quantity
		}

		// Lock types in a fixed order so concurrent settlements for
		// overlapping carts cannot deadlock.
		typeIDs := make([]uint, 0, len(wanted))
		for typeID := range wanted {
			typeIDs = append(typeIDs, typeID)
		}
		sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })

		for _, typeID := range typeIDs {
			var tt model.TicketType
			if err := lockForUpdate(tx).First(&tt, typeID).Error; err != nil {
				return err
			}
			if tt.Capacity == nil {
				continue
			}

			sold, err := soldCount(tx, typeID)
			if err != nil {
				return err
			}
			if sold+int64(wanted[typeID]) > int64(*tt.Capacity) {
				// Release the slot to the next contender: the purchaser
				// sees a definite failure, not a retryable ambiguity.
				oversold = true
				return setPaymentStatus(tx, &payment, model.PaymentFailed)
			}
		}

		tickets := buildTickets(&payment, snapshot.Lines)
		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}

		now := time.Now()
		payment.Status = model.PaymentCompleted
		payment.PaidAt = &now
		if err := tx.Model(&payment).
			Updates(map[string]any{"status": model.PaymentCompleted, "paid_at": now}).
			Error; err != nil {
			return err
		}

		payment.Tickets = tickets
		minted = true
		return nil
	})

	if err != nil {
		return nil, false, err
	}
	if oversold {
		return &payment, false, ErrOversoldAtSettlement
	}
	return &payment, minted, nil
}

// DeletePendingPayment removes a payment the gateway refused to initialize.
// Only PENDING rows without tickets may be deleted; no money could ever
// have moved for them.
func DeletePendingPayment(db *gorm.DB, paymentID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var payment model.Payment
		if err := lockForUpdate(tx).First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status != model.PaymentPending {
			return fmt.Errorf("cannot delete payment %s in status %s", payment.Reference, payment.Status)
		}

		var ticketCount int64
		if err := tx.Model(&model.Ticket{}).
			Where("payment_id = ?", payment.ID).
			Count(&ticketCount).Error; err != nil {
			return err
		}
		if ticketCount > 0 {
			return fmt.Errorf("cannot delete payment %s with minted tickets", payment.Reference)
		}

		return tx.Delete(&payment).Error
	})
}

func setPaymentStatus(tx *gorm.DB, payment *model.Payment, status string) error {
	payment.Status = status
	return tx.Model(payment).Update("status", status).Error
}

func buildTickets(payment *model.Payment, lines []model.SnapshotLine) []model.Ticket {
	var tickets []model.Ticket
	for _, line := range lines {
		for i := 0; i < line.Quantity; i++ {
			tickets = append(tickets, model.Ticket{
				ConfirmationCode: helper.GenerateConfirmationCode(),
				TicketTypeID:     line.TicketTypeID,
				PaymentID:        payment.ID,
				EventID:          payment.EventID,
				AttendeeName:     line.AttendeeName,
				AttendeeEmail:    line.AttendeeEmail,
				AttendeePhone:    line.AttendeePhone,
				Status:           model.TicketActive,
			})
		}
	}
	return tickets
}
