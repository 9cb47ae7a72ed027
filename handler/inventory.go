package handler

import (
	"event_ticketing/model"

	"gorm.io/gorm"
)

// soldCount returns how many tickets are currently held against a ticket
// type. ACTIVE and USED tickets occupy capacity; REFUNDED ones release it.
func soldCount(db *gorm.DB, ticketTypeID uint) (int64, error) {
	var sold int64
	err := db.Model(&model.Ticket{}).
		Where("ticket_type_id = ? AND status IN ?", ticketTypeID,
			[]string{model.TicketActive, model.TicketUsed}).
		Count(&sold).Error
	return sold, err
}

// aggregateQuantities sums requested quantities per ticket type so two lines
// for the same type are checked together.
func aggregateQuantities(lines []model.TicketLine) map[uint]int {
	wanted := make(map[uint]int)
	for _, line := range lines {
		wanted[line.TicketTypeID] += line.Quantity
	}
	return wanted
}

// CheckInventory is the advisory capacity check run before any gateway call.
// It holds no locks: its job is a fast, friendly rejection with the
// offending ticket type named. The authoritative check is re-run inside the
// minting transaction (TransitionPayment), because concurrent checkouts can
// both pass here.
func CheckInventory(db *gorm.DB, types map[uint]model.TicketType, lines []model.TicketLine) error {
	for typeID, requested := range aggregateQuantities(lines) {
		tt := types[typeID]
		if tt.Capacity == nil {
			continue
		}

		sold, err := soldCount(db, typeID)
		if err != nil {
			return err
		}

		if sold+int64(requested) > int64(*tt.Capacity) {
			remaining := int64(*tt.Capacity) - sold
			if remaining < 0 {
				remaining = 0
			}
			return &InsufficientInventoryError{
				TicketTypeName: tt.Name,
				Requested:      requested,
				Remaining:      int(remaining),
			}
		}
	}
	return nil
}
