package helper

import (
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

var eventScheduler gocron.Scheduler

// AutoCompleteEvents moves published events whose end time has passed to
// COMPLETED. It never touches payments or tickets; settlement outcomes are
// decided only by the reconciliation path.
func AutoCompleteEvents() {
	res := database.DB.Model(&model.Event{}).
		Where("status = ? AND end_time < ?", model.EventPublished, time.Now()).
		Update("status", model.EventCompleted)
	if res.Error != nil {
		logrus.WithError(res.Error).Error("event status sweep failed")
		return
	}
	if res.RowsAffected > 0 {
		logrus.WithField("events", res.RowsAffected).Info("marked past events completed")
	}
}

func StartEventStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		logrus.Fatal(err)
	}

	eventScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(AutoCompleteEvents),
	)
	if err != nil {
		logrus.Fatal(err)
	}

	s.Start()
	logrus.Info("event status scheduler started (every 10m)")
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		_ = eventScheduler.Shutdown()
		logrus.Info("event status scheduler stopped")
	}
}
