package service

import (
	"context"
	"log"

	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/pkg/storage"
)

type AdminUser struct {
	model.User
	ResumeURL *string `json:"resume_url"`
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]AdminUser, error)
}

type adminService struct {
	repo            repository.UserRepository
	documentStorage storage.DocumentStorage
}

func NewAdminService(repo repository.UserRepository, documentStorage storage.DocumentStorage) AdminService {
	return &adminService{
		repo:            repo,
		documentStorage: documentStorage,
	}
}

// ListUsers attaches a short-lived signed resume URL to every account that
// has one. A signing failure degrades that one account's URL to null
// instead of failing the whole listing.
func (s *adminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]AdminUser, 0, len(users))
	for _, user := range users {
		user.PasswordHash = ""
		entry := AdminUser{User: *user}

		if user.ResumePath != nil && s.documentStorage != nil {
			url, err := s.documentStorage.SignedURL(*user.ResumePath, signedResumeTTL)
			if err != nil {
				log.Printf("failed to sign resume url for user %d: %v", user.ID, err)
			} else {
				entry.ResumeURL = &url
			}
		}

		result = append(result, entry)
	}

	return result, nil
}
