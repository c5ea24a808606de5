package service

import (
	"context"

	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
)

type CreateRegistrationInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	VNumber string `json:"vnumber" binding:"required"`
}

type RegistrationService interface {
	Create(ctx context.Context, input CreateRegistrationInput) error
	List(ctx context.Context) ([]model.Registration, error)
	Count(ctx context.Context) (int64, error)
}

type registrationService struct {
	repo repository.RegistrationRepository
}

func NewRegistrationService(repo repository.RegistrationRepository) RegistrationService {
	return &registrationService{repo: repo}
}

// Create does not enforce uniqueness; the same person signing up twice is
// tolerated and deduped at count time.
func (s *registrationService) Create(ctx context.Context, input CreateRegistrationInput) error {
	registration := &model.Registration{
		Name:    input.Name,
		Email:   input.Email,
		VNumber: input.VNumber,
	}

	return s.repo.Create(ctx, registration)
}

func (s *registrationService) List(ctx context.Context) ([]model.Registration, error) {
	return s.repo.FindAll(ctx)
}

func (s *registrationService) Count(ctx context.Context) (int64, error) {
	return s.repo.CountDistinctEmails(ctx)
}
