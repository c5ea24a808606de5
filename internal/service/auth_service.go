package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/uvichacks/showcase/internal/model"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/pkg/apperror"
	"github.com/uvichacks/showcase/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Every new account is auto-registered for the seeded main event.
const defaultEventID = 1

const tokenTTL = 24 * time.Hour

// Login responses carry a long-lived resume link so the dashboard can show
// it for the whole session.
const loginResumeTTL = 24 * time.Hour

type RegisterAccountInput struct {
	Name     string  `form:"name" binding:"required"`
	Email    string  `form:"email" binding:"required,email"`
	VNumber  string  `form:"vnumber" binding:"required"`
	Password string  `form:"password" binding:"required,min=8"`
	Bio      *string `form:"bio"`
}

type RegisterAccountResult struct {
	UserID     uint    `json:"userId"`
	ResumePath *string `json:"resume_path"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	User      *model.User `json:"user"`
	ResumeURL *string     `json:"resume_url,omitempty"`
}

type AuthService interface {
	RegisterAccount(ctx context.Context, input RegisterAccountInput, resume *UploadFile) (*RegisterAccountResult, error)
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
}

type authService struct {
	repo            repository.UserRepository
	documentStorage storage.DocumentStorage
	sanitizer       *bluemonday.Policy
	secret          string
}

func NewAuthService(repo repository.UserRepository, documentStorage storage.DocumentStorage) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &authService{
		repo:            repo,
		documentStorage: documentStorage,
		sanitizer:       bluemonday.StrictPolicy(),
		secret:          secret,
	}
}

func (s *authService) RegisterAccount(ctx context.Context, input RegisterAccountInput, resume *UploadFile) (*RegisterAccountResult, error) {
	// The resume goes to the bucket before the transaction opens. If the
	// insert below fails the object stays behind; nothing reconciles it.
	var resumePath *string
	if resume != nil && resume.Reader != nil && s.documentStorage != nil {
		key, err := s.documentStorage.UploadDocument(ctx, resume.Reader, resume.FileName)
		if err != nil {
			return nil, err
		}
		resumePath = &key
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		VNumber:      input.VNumber,
		PasswordHash: string(hashedPassword),
		ResumePath:   resumePath,
		Bio:          s.sanitizeOptional(input.Bio),
	}

	if err := s.repo.CreateWithEventRegistration(ctx, user, defaultEventID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "email or vnumber already in use", apperror.ErrDuplicate)
		}
		return nil, err
	}

	return &RegisterAccountResult{
		UserID:     user.ID,
		ResumePath: user.ResumePath,
	}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	var resumeURL *string
	if user.ResumePath != nil && s.documentStorage != nil {
		url, err := s.documentStorage.SignedURL(*user.ResumePath, loginResumeTTL)
		if err != nil {
			log.Printf("failed to sign resume url for user %d: %v", user.ID, err)
		} else {
			resumeURL = &url
		}
	}

	user.PasswordHash = ""

	return &LoginResponse{
		Token:     token,
		User:      user,
		ResumeURL: resumeURL,
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *authService) sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(*value))
	if cleaned == "" {
		return nil
	}

	return &cleaned
}

// invalidCredentials is identical for unknown email and wrong password so
// the response never leaks which one was wrong.
func invalidCredentials() error {
	return apperror.New(http.StatusUnauthorized, "invalid email or password", apperror.ErrUnauthorized)
}
