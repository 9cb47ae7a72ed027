package handler

import (
	"encoding/json"
	"errors"

	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Checkout turns a validated checkout request into a PENDING payment and a
// gateway redirect. No tickets are created here; minting is deferred to
// reconciliation.
func Checkout(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CheckoutInput)
	db := database.DB

	var event model.Event
	if err := db.Preload("TicketTypes").First(&event, input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.RecordCheckout("event_not_found")
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load event", err)
	}

	if event.Status == model.EventCompleted {
		monitoring.RecordCheckout("sales_closed")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket sales for this event have closed", nil)
	}

	// Every requested ticket type must belong to this event; prices come
	// from the server-side rows, never from the client.
	types := make(map[uint]model.TicketType)
	for _, tt := range event.TicketTypes {
		types[tt.ID] = tt
	}
	for _, line := range input.Tickets {
		if _, ok := types[line.TicketTypeID]; !ok {
			monitoring.RecordCheckout("invalid_ticket_type")
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket type for this event", nil)
		}
	}

	// Advisory only: the authoritative check runs again inside the minting
	// transaction. This one exists to fail fast before the gateway call.
	if err := CheckInventory(db, types, input.Tickets); err != nil {
		var invErr *InsufficientInventoryError
		if errors.As(err, &invErr) {
			monitoring.RecordCheckout("insufficient_inventory")
			return utils.ErrorResponse(c, fiber.StatusBadRequest, invErr.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Inventory check failed", err)
	}

	var subtotal int64
	snapshotLines := make([]model.SnapshotLine, 0, len(input.Tickets))
	for _, line := range input.Tickets {
		tt := types[line.TicketTypeID]
		subtotal += tt.Price * int64(line.Quantity)
		snapshotLines = append(snapshotLines, model.SnapshotLine{
			TicketTypeID:  line.TicketTypeID,
			Quantity:      line.Quantity,
			UnitPrice:     tt.Price,
			AttendeeName:  line.AttendeeName,
			AttendeeEmail: line.AttendeeEmail,
			AttendeePhone: line.AttendeePhone,
		})
	}

	breakdown := helper.ComputeBreakdown(subtotal)
	if !helper.AmountsMatch(input.Amount, breakdown.TotalAmount) {
		// Rejects both honest client bugs and tampering; the client must
		// refetch pricing.
		monitoring.RecordCheckout("amount_mismatch")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount does not match server-side pricing", nil)
	}

	snapshot := model.PaymentSnapshot{Lines: snapshotLines, Breakdown: breakdown}
	metadata, err := json.Marshal(snapshot)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to snapshot order", err)
	}

	reference := helper.GeneratePaymentReference()
	payment := model.Payment{
		Reference:       reference,
		EventID:         event.ID,
		Amount:          breakdown.TotalAmount,
		PlatformAmount:  breakdown.PlatformAmount,
		OrganizerAmount: breakdown.OrganizerAmount,
		CustomerEmail:   input.CustomerEmail,
		Metadata:        string(metadata),
	}
	if err := CreatePaymentRecord(db, &payment); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open payment", err)
	}

	paystack := NewPaystack()
	init, err := paystack.InitializeTransaction(model.InitializeRequest{
		Email:     input.CustomerEmail,
		Amount:    breakdown.TotalAmount,
		Reference: reference,
		Metadata:  metadata,
	})
	if err != nil {
		// The gateway never saw a usable reservation; remove the orphaned
		// PENDING row so it cannot confuse later accounting.
		if delErr := DeletePendingPayment(db, payment.ID); delErr != nil {
			logrus.WithError(delErr).WithField("reference", reference).
				Error("failed to clean up payment after gateway rejection")
		}
		monitoring.RecordCheckout("gateway_init_failed")
		logrus.WithError(err).WithField("reference", reference).Error("gateway initialize failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Payment gateway could not start this transaction", nil)
	}

	monitoring.RecordCheckout("ok")
	logrus.WithFields(logrus.Fields{
		"reference": reference,
		"eventId":   event.ID,
		"amount":    breakdown.TotalAmount,
	}).Info("checkout opened")

	return c.JSON(fiber.Map{
		"success":          true,
		"message":          "Checkout created, redirect customer to complete payment",
		"authorizationUrl": init.AuthorizationURL,
		"accessCode":       init.AccessCode,
		"reference":        reference,
	})
}
