package bootstrap

import (
	"log"

	"github.com/uvichacks/showcase/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Submission{},
		&model.Registration{},
		&model.User{},
		&model.Event{},
		&model.EventRegistration{},
	)
}

// SeedEvents guarantees the main event row every new account is registered
// against. Events are not created through the HTTP surface.
func SeedEvents(db *gorm.DB) error {
	defaultEvents := []model.Event{
		{ID: 1, Title: "UVic Hacks 2026", Description: "The main hackathon event."},
	}

	for _, event := range defaultEvents {
		var count int64
		if err := db.Model(&model.Event{}).
			Where("id = ?", event.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&event).Error; err != nil {
				return err
			}
			log.Printf("Seeded event %q", event.Title)
		}
	}

	return nil
}
