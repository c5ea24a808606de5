package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/pkg/apperror"
	"gorm.io/gorm"
)

type EventRegisterInput struct {
	UserID  uint `json:"userId" binding:"required"`
	EventID uint `json:"eventId" binding:"required"`
}

type EventService interface {
	Register(ctx context.Context, input EventRegisterInput) (*model.EventRegistration, error)
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) Register(ctx context.Context, input EventRegisterInput) (*model.EventRegistration, error) {
	registration := &model.EventRegistration{
		UserID:  input.UserID,
		EventID: input.EventID,
	}

	if err := s.repo.CreateRegistration(ctx, registration); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "already registered for this event", apperror.ErrDuplicate)
		}
		return nil, err
	}

	return registration, nil
}
