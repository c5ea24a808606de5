package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/pkg/apperror"
	"github.com/uvichacks/showcase/pkg/storage"
	"gorm.io/gorm"
)

// Short-lived tier used for profile and admin views of resumes.
const signedResumeTTL = 15 * time.Minute

type UpdateProfileInput struct {
	Name *string `form:"name"`
	Bio  *string `form:"bio"`
}

type ProfileResponse struct {
	User      *model.User `json:"user"`
	ResumeURL *string     `json:"resume_url,omitempty"`
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput, resume *UploadFile) (*ProfileResponse, error)
}

type profileService struct {
	repo            repository.UserRepository
	documentStorage storage.DocumentStorage
	sanitizer       *bluemonday.Policy
}

func NewProfileService(repo repository.UserRepository, documentStorage storage.DocumentStorage) ProfileService {
	return &profileService{
		repo:            repo,
		documentStorage: documentStorage,
		sanitizer:       bluemonday.StrictPolicy(),
	}
}

// UpdateProfile merges: a field left out of the request keeps its stored
// value. A new resume replaces the reference; the superseded object is not
// deleted from the bucket.
func (s *profileService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput, resume *UploadFile) (*ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Bio != nil {
		cleaned := strings.TrimSpace(s.sanitizer.Sanitize(*input.Bio))
		if cleaned == "" {
			user.Bio = nil
		} else {
			user.Bio = &cleaned
		}
	}

	if resume != nil && resume.Reader != nil && s.documentStorage != nil {
		key, err := s.documentStorage.UploadDocument(ctx, resume.Reader, resume.FileName)
		if err != nil {
			return nil, err
		}
		user.ResumePath = &key
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	var resumeURL *string
	if user.ResumePath != nil && s.documentStorage != nil {
		url, err := s.documentStorage.SignedURL(*user.ResumePath, signedResumeTTL)
		if err != nil {
			log.Printf("failed to sign resume url for user %d: %v", user.ID, err)
		} else {
			resumeURL = &url
		}
	}

	user.PasswordHash = ""

	return &ProfileResponse{
		User:      user,
		ResumeURL: resumeURL,
	}, nil
}
