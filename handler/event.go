package handler

import (
	"errors"

	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetEvents(c *fiber.Ctx) error {
	db := database.DB

	var events []model.Event
	query := db.Preload("TicketTypes").Where("status = ?", model.EventPublished)

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 1)
	if limit > 0 {
		query = utils.ApplyPagination(query, &limit, &page)
	}

	if err := query.Order("start_time asc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load events", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

func GetEventBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var event model.Event
	if err := database.DB.Preload("TicketTypes").
		Where("slug = ?", slug).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)
	identity := c.Locals("identity").(model.TokenClaim)
	db := database.DB

	status := model.EventDraft
	if input.Publish {
		status = model.EventPublished
	}

	event := model.Event{
		Title:       input.Title,
		Slug:        helper.GenerateUniqueEventSlug(db, input.Title),
		Description: input.Description,
		Venue:       input.Venue,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      status,
		OrganizerID: identity.UserID,
		BankCode:    input.BankCode,
	}

	if err := db.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create event", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func EditEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.EditEventInput)
	identity := c.Locals("identity").(model.TokenClaim)
	eventId := c.Locals("inputId").(int)
	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load event", err)
	}

	if event.OrganizerID != identity.UserID && identity.Role != "ADMIN" {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your event", nil)
	}

	if err := copier.CopyWithOption(&event, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply changes", err)
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update event", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateTicketType(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTicketTypeInput)
	identity := c.Locals("identity").(model.TokenClaim)
	eventId := c.Locals("inputId").(int)
	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load event", err)
	}

	if event.OrganizerID != identity.UserID && identity.Role != "ADMIN" {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your event", nil)
	}

	ticketType := model.TicketType{
		EventID:  event.ID,
		Name:     input.Name,
		Price:    input.Price,
		Capacity: input.Capacity,
	}

	if err := db.Create(&ticketType).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create ticket type", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, ticketType)
}
