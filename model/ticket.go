package model

import "time"

const (
	TicketActive   = "ACTIVE"
	TicketUsed     = "USED"
	TicketRefunded = "REFUNDED"
)

// Ticket is minted only when its payment settles COMPLETED, one row per
// purchased unit.
type Ticket struct {
	DTO
	ConfirmationCode string     `gorm:"size:32;uniqueIndex;not null" json:"confirmationCode"`
	TicketTypeID     uint       `gorm:"not null;index" json:"ticketTypeId"`
	PaymentID        uint       `gorm:"not null;index" json:"paymentId"`
	EventID          uint       `gorm:"not null;index" json:"eventId"`
	AttendeeName     string     `json:"attendeeName"`
	AttendeeEmail    string     `json:"attendeeEmail"`
	AttendeePhone    string     `json:"attendeePhone"`
	Status           string     `gorm:"not null;default:'ACTIVE'" json:"status"`
	UsedAt           *time.Time `json:"usedAt,omitempty"`

	TicketType TicketType `gorm:"foreignKey:TicketTypeID" json:"-"`
	Payment    Payment    `gorm:"foreignKey:PaymentID" json:"-"`
	Event      Event      `gorm:"foreignKey:EventID" json:"-"`
}
