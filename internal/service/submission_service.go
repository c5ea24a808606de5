package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/pkg/apperror"
	"github.com/uvichacks/showcase/pkg/storage"
	"gorm.io/gorm"
)

type CreateSubmissionInput struct {
	ProjectName string `form:"projectName" binding:"required"`
	UserName    string `form:"userName" binding:"required"`
	ProjectURL  string `form:"projectUrl" binding:"required"`
}

type SubmissionService interface {
	Create(ctx context.Context, input CreateSubmissionInput, image *UploadFile) (*model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
	GetByID(ctx context.Context, id uint) (*model.Submission, error)
}

type submissionService struct {
	repo         repository.SubmissionRepository
	imageStorage storage.ImageStorage
	search       SearchService
}

func NewSubmissionService(repo repository.SubmissionRepository, imageStorage storage.ImageStorage, search SearchService) SubmissionService {
	return &submissionService{
		repo:         repo,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *submissionService) Create(ctx context.Context, input CreateSubmissionInput, image *UploadFile) (*model.Submission, error) {
	if image == nil || image.Reader == nil {
		return nil, apperror.New(http.StatusBadRequest, "Missing required fields", apperror.ErrBadRequest)
	}

	imageURL, err := s.imageStorage.UploadImage(ctx, image.Reader, image.FileName)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ProjectName: input.ProjectName,
		UserName:    input.UserName,
		ProjectURL:  input.ProjectURL,
		ImageURL:    imageURL,
	}

	// The image stays behind if this insert fails; nothing reconciles
	// orphaned uploads.
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexSubmission(submission); err != nil {
			log.Printf("failed to index submission %d: %v", submission.ID, err)
		}
	}

	return submission, nil
}

func (s *submissionService) List(ctx context.Context) ([]model.Submission, error) {
	return s.repo.FindAll(ctx)
}

func (s *submissionService) GetByID(ctx context.Context, id uint) (*model.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Submission not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return submission, nil
}
