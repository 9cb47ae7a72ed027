package handler

import (
	"encoding/json"
	"errors"

	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// finalizePayment is the single idempotent core both reconciliation entry
// points converge on. It decides the terminal outcome from the gateway
// verdict, mints from the stored snapshot, and handles the oversold
// fallback. The returned payment reflects committed state even when
// ErrOversoldAtSettlement is returned.
func finalizePayment(db *gorm.DB, reference string, gatewaySaysSuccess bool) (*model.Payment, bool, error) {
	target := model.PaymentFailed
	if gatewaySaysSuccess {
		target = model.PaymentCompleted
	}

	payment, minted, err := TransitionPayment(db, reference, target)
	if err != nil {
		if errors.Is(err, ErrOversoldAtSettlement) {
			// Money may already have moved at the gateway while local
			// inventory could not honor it. Flag loudly for manual refund.
			monitoring.RecordOversellEscalation()
			monitoring.RecordSettlement(model.PaymentFailed)
			logrus.WithFields(logrus.Fields{
				"reference": reference,
				"eventId":   payment.EventID,
				"amount":    payment.Amount,
			}).Error("OVERSOLD AT SETTLEMENT: gateway collected payment but inventory is exhausted, manual refund required")
		}
		return payment, false, err
	}

	if minted {
		monitoring.RecordSettlement(payment.Status)
		monitoring.RecordTicketsMinted(len(payment.Tickets))
		notifyTicketsIssued(db, payment)
	} else if payment.Status == model.PaymentFailed && !gatewaySaysSuccess {
		monitoring.RecordSettlement(model.PaymentFailed)
	}

	return payment, minted, nil
}

// notifyTicketsIssued sends the confirmation email for a freshly-minted
// payment. Fire-and-forget.
func notifyTicketsIssued(db *gorm.DB, payment *model.Payment) {
	var event model.Event
	if err := db.First(&event, payment.EventID).Error; err != nil {
		logrus.WithError(err).Error("load event for confirmation email")
		return
	}

	codes := make([]string, 0, len(payment.Tickets))
	for _, t := range payment.Tickets {
		codes = append(codes, t.ConfirmationCode)
	}

	utils.SendTicketConfirmationEmail(payment.CustomerEmail, utils.TicketConfirmationData{
		Reference:         payment.Reference,
		EventTitle:        event.Title,
		Venue:             event.Venue,
		StartTime:         event.StartTime.Format("02/01/2006 15:04"),
		ConfirmationCodes: codes,
		TicketCount:       len(codes),
		TotalAmount:       payment.Amount,
	})
}

// VerifyPayment is the client-initiated reconciliation poll:
// GET /api/v1/payments/verify?reference=...
func VerifyPayment(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing reference", nil)
	}

	db := database.DB

	var payment model.Payment
	if err := db.Where("reference = ?", reference).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load payment", err)
	}

	// Already settled: report the terminal state without another gateway
	// round trip.
	if payment.Status != model.PaymentPending {
		return verificationResponse(c, db, &payment)
	}

	verify, err := NewPaystack().VerifyTransaction(reference)
	if err != nil {
		// The verification call itself failed; nothing can be concluded
		// about the payment, so no state is mutated and the caller may
		// retry.
		logrus.WithError(err).WithField("reference", reference).Warn("gateway verify unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Verification temporarily unavailable, try again shortly",
		})
	}

	settled, _, err := finalizePayment(db, reference, verify.Status == "success")
	if err != nil && !errors.Is(err, ErrOversoldAtSettlement) {
		if errors.Is(err, ErrPaymentNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to settle payment", err)
	}
	if errors.Is(err, ErrOversoldAtSettlement) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":  false,
			"status":   settled.Status,
			"oversold": true,
			"message":  "Payment was received but the tickets sold out; a refund will be processed",
		})
	}

	return verificationResponse(c, db, settled)
}

func verificationResponse(c *fiber.Ctx, db *gorm.DB, payment *model.Payment) error {
	if payment.Status == model.PaymentFailed {
		return c.JSON(fiber.Map{
			"success": false,
			"status":  payment.Status,
			"message": "Payment was not successful",
		})
	}

	var event model.Event
	db.First(&event, payment.EventID)

	var tickets []model.Ticket
	if err := db.Where("payment_id = ?", payment.ID).Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load tickets", err)
	}

	codes := make([]string, 0, len(tickets))
	for _, t := range tickets {
		codes = append(codes, t.ConfirmationCode)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"status":          payment.Status,
		"eventTitle":      event.Title,
		"confirmationIds": codes,
		"ticketCount":     len(codes),
		"amount":          payment.Amount,
	})
}

// PaystackWebhook is the gateway-initiated reconciliation push. The signed
// body must be authenticated before anything in it is trusted.
func PaystackWebhook(c *fiber.Ctx) error {
	paystack := NewPaystack()
	body := c.Body()

	signature := c.Get("x-paystack-signature")
	if !paystack.ValidWebhookSignature(body, signature) {
		logrus.Warn("webhook with invalid signature rejected")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid signature", nil)
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Malformed webhook payload", err)
	}

	switch event.Event {
	case "charge.success", "charge.failed":
	default:
		// Not a settlement event; acknowledge so the gateway stops
		// resending it.
		return c.JSON(fiber.Map{"success": true})
	}

	success := event.Event == "charge.success" && event.Data.Status == "success"
	_, _, err := finalizePayment(database.DB, event.Data.Reference, success)
	if err != nil && !errors.Is(err, ErrOversoldAtSettlement) {
		if errors.Is(err, ErrPaymentNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Unknown payment reference", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to settle payment", err)
	}

	return c.JSON(fiber.Map{"success": true})
}
