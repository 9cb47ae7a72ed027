package model

import "time"

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Payment is one checkout attempt. All amounts are in kobo.
// Amount = ticket subtotal + gateway fee, fixed at creation time from the
// metadata snapshot, never recomputed from live ticket-type prices.
type Payment struct {
	DTO
	Reference       string     `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	EventID         uint       `gorm:"not null;index" json:"eventId"`
	Amount          int64      `gorm:"not null" json:"amount"`
	PlatformAmount  int64      `gorm:"not null" json:"platformAmount"`
	OrganizerAmount int64      `gorm:"not null" json:"organizerAmount"`
	CustomerEmail   string     `gorm:"not null" json:"customerEmail"`
	Status          string     `gorm:"not null;default:'PENDING'" json:"status"`
	Metadata        string     `gorm:"type:text" json:"-"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`

	Event   Event    `gorm:"foreignKey:EventID" json:"-"`
	Tickets []Ticket `gorm:"foreignKey:PaymentID" json:"-"`
}

// Breakdown is the server-side settlement math for one checkout.
// All five fields are persisted in the payment snapshot; settlement to the
// organizer uses OrganizerAmount independently of what the gateway reports.
type Breakdown struct {
	Subtotal        int64 `json:"subtotal"`
	GatewayFee      int64 `json:"gatewayFee"`
	PlatformAmount  int64 `json:"platformAmount"`
	OrganizerAmount int64 `json:"organizerAmount"`
	TotalAmount     int64 `json:"totalAmount"`
}

type TicketLine struct {
	TicketTypeID  uint   `json:"ticketTypeId" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	AttendeeName  string `json:"attendeeName" validate:"required"`
	AttendeeEmail string `json:"attendeeEmail" validate:"omitempty,email"`
	AttendeePhone string `json:"attendeePhone" validate:"omitempty"`
}

type CheckoutInput struct {
	EventID       uint         `json:"eventId" validate:"required,gt=0"`
	Tickets       []TicketLine `json:"tickets" validate:"required,min=1,dive"`
	Amount        int64        `json:"amount" validate:"required,gt=0"`
	CustomerEmail string       `json:"customerEmail" validate:"required,email"`
}

// SnapshotLine freezes one requested line item with the unit price that was
// in effect when the payment was opened.
type SnapshotLine struct {
	TicketTypeID  uint   `json:"ticketTypeId"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unitPrice"`
	AttendeeName  string `json:"attendeeName"`
	AttendeeEmail string `json:"attendeeEmail"`
	AttendeePhone string `json:"attendeePhone"`
}

// PaymentSnapshot is the immutable metadata blob stored on a payment.
// Reconciliation mints tickets from it verbatim.
type PaymentSnapshot struct {
	Lines     []SnapshotLine `json:"tickets"`
	Breakdown Breakdown      `json:"breakdown"`
}
