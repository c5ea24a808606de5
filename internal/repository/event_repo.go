package repository

import (
	"context"

	"github.com/uvichacks/showcase/internal/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	CreateRegistration(ctx context.Context, registration *model.EventRegistration) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateRegistration(ctx context.Context, registration *model.EventRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}
