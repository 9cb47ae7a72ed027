package database

import (
	"time"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedData creates a demo published event so a fresh install can exercise
// the checkout flow end to end.
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.Event{}).Count(&count)
	if count > 0 {
		return
	}

	start := time.Now().AddDate(0, 1, 0)
	event := model.Event{
		Title:       "Lagos Tech Fest",
		Slug:        "lagos-tech-fest",
		Description: "A full day of talks, demos and networking.",
		Venue:       "Landmark Centre, Lagos",
		StartTime:   start,
		EndTime:     start.Add(10 * time.Hour),
		Status:      model.EventPublished,
		OrganizerID: 1,
		BankCode:    "058",
		TicketTypes: []model.TicketType{
			{Name: "Regular", Price: 500000, Capacity: utils.Ptr(200)},
			{Name: "VIP", Price: 1500000, Capacity: utils.Ptr(50)},
			{Name: "Online", Price: 100000, Capacity: nil},
		},
	}

	if err := db.Create(&event).Error; err != nil {
		logrus.WithError(err).Error("failed to seed demo event")
		return
	}
	logrus.WithField("slug", event.Slug).Info("seeded demo event")
}
