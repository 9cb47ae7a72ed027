package helper

import (
	"fmt"

	"event_ticketing/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueEventSlug derives a URL slug from the event title, suffixing
// a counter until it is free.
func GenerateUniqueEventSlug(tx *gorm.DB, title string) string {
	base := slug.Make(title)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Event{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
