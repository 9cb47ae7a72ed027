package handler

import (
	"encoding/base64"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GetPurchase returns the tickets minted for a payment reference, one QR per
// confirmation code.
func GetPurchase(c *fiber.Ctx) error {
	reference := c.Params("reference")
	db := database.DB

	var payment model.Payment
	if err := db.Preload("Tickets").Preload("Event").
		Where("reference = ?", reference).First(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Purchase not found", err)
	}

	if payment.Status != model.PaymentCompleted {
		return c.JSON(fiber.Map{
			"success": false,
			"status":  payment.Status,
			"message": "Payment has not completed",
		})
	}

	tickets := make([]fiber.Map, 0, len(payment.Tickets))
	for _, ticket := range payment.Tickets {
		qrBase64 := ""
		qrBytes, err := utils.GenerateQRCode(ticket.ConfirmationCode, 400)
		if err != nil {
			logrus.WithError(err).WithField("code", ticket.ConfirmationCode).Error("generate ticket QR")
		} else {
			qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
		}

		tickets = append(tickets, fiber.Map{
			"confirmationCode": ticket.ConfirmationCode,
			"attendeeName":     ticket.AttendeeName,
			"status":           ticket.Status,
			"qrCode":           qrBase64,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"reference":   payment.Reference,
		"eventTitle":  payment.Event.Title,
		"venue":       payment.Event.Venue,
		"startTime":   payment.Event.StartTime.Format("02/01/2006 15:04"),
		"amount":      payment.Amount,
		"ticketCount": len(tickets),
		"tickets":     tickets,
	})
}

// CheckInTicket flips an ACTIVE ticket to USED at the venue entrance.
func CheckInTicket(c *fiber.Ctx) error {
	code := c.Params("code")
	db := database.DB

	var ticket model.Ticket
	if err := db.Preload("Event").
		Where("confirmation_code = ?", code).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket not found", err)
	}

	if ticket.Status == model.TicketUsed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already used", nil)
	}
	if ticket.Status != model.TicketActive {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket is not valid for entry", nil)
	}

	now := time.Now()
	ticket.Status = model.TicketUsed
	ticket.UsedAt = &now
	if err := db.Save(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update ticket", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"confirmationCode": ticket.ConfirmationCode,
		"attendeeName":     ticket.AttendeeName,
		"usedAt":           now.Format("02/01/2006 15:04"),
	})
}
