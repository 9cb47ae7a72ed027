package model

import "time"

const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventCompleted = "COMPLETED"
)

type Event struct {
	DTO
	Title       string       `gorm:"not null" json:"title"`
	Slug        string       `gorm:"size:120;uniqueIndex" json:"slug"`
	Description string       `json:"description"`
	Venue       string       `json:"venue"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     time.Time    `json:"endTime"`
	Status      string       `gorm:"not null;default:'DRAFT'" json:"status"`
	OrganizerID uint         `json:"organizerId"`
	BankCode    string       `json:"bankCode"` // settlement bank for organizer payouts
	TicketTypes []TicketType `gorm:"foreignKey:EventID" json:"ticketTypes,omitempty"`
}

// TicketType is one admission tier of an event. Price is in kobo.
// Capacity nil means unlimited.
type TicketType struct {
	DTO
	EventID  uint   `gorm:"not null;index" json:"eventId"`
	Name     string `gorm:"not null" json:"name"`
	Price    int64  `gorm:"not null" json:"price"`
	Capacity *int   `json:"capacity"`

	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

type CreateEventInput struct {
	Title       string    `json:"title" validate:"required,min=3"`
	Description string    `json:"description" validate:"omitempty"`
	Venue       string    `json:"venue" validate:"required"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	BankCode    string    `json:"bankCode" validate:"omitempty"`
	Publish     bool      `json:"publish"`
}

type EditEventInput struct {
	Title       string     `json:"title" validate:"omitempty,min=3"`
	Description string     `json:"description" validate:"omitempty"`
	Venue       string     `json:"venue" validate:"omitempty"`
	StartTime   *time.Time `json:"startTime" validate:"omitempty"`
	EndTime     *time.Time `json:"endTime" validate:"omitempty"`
	BankCode    string     `json:"bankCode" validate:"omitempty"`
	Status      string     `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED COMPLETED"`
}

type CreateTicketTypeInput struct {
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"required,gte=0"`
	Capacity *int   `json:"capacity" validate:"omitempty,gt=0"`
}
