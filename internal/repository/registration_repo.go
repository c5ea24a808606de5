package repository

import (
	"context"

	"github.com/uvichacks/showcase/internal/model"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) error
	FindAll(ctx context.Context) ([]model.Registration, error)
	CountDistinctEmails(ctx context.Context) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) FindAll(ctx context.Context) ([]model.Registration, error) {
	var registrations []model.Registration
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		return nil, err
	}

	return registrations, nil
}

// CountDistinctEmails dedupes repeat sign-ups so the landing page counter
// reflects people, not form submissions.
func (r *registrationRepository) CountDistinctEmails(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Distinct("email").
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
