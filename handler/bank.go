package handler

import (
	"encoding/json"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	bankCacheKey = "paystack:banks"
	bankCacheTTL = 6 * time.Hour
)

// GetBanks serves the gateway bank directory used when organizers pick a
// settlement bank. The list changes rarely, so it is cached in redis; this
// cache is auxiliary lookup data only and is never consulted for ticket
// counts or pricing.
func GetBanks(c *fiber.Ctx) error {
	ctx := c.Context()

	if database.Redis != nil {
		cached, err := database.Redis.Get(ctx, bankCacheKey).Result()
		if err == nil {
			var banks []model.Bank
			if err := json.Unmarshal([]byte(cached), &banks); err == nil {
				return utils.SuccessResponse(c, fiber.StatusOK, banks)
			}
		}
	}

	banks, err := NewPaystack().ListBanks()
	if err != nil {
		logrus.WithError(err).Error("fetch bank directory")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load bank list", nil)
	}

	if database.Redis != nil {
		raw, err := json.Marshal(banks)
		if err == nil {
			if err := database.Redis.Set(ctx, bankCacheKey, string(raw), bankCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("cache bank directory")
			}
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, banks)
}
