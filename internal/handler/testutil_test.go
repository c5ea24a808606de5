package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uvichacks/showcase/internal/bootstrap"
	"github.com/uvichacks/showcase/internal/middleware"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := bootstrap.SeedEvents(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	return db
}

func setupImageStorage(t *testing.T) storage.ImageStorage {
	t.Helper()

	s, err := storage.NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create disk storage: %v", err)
	}
	return s
}

// fakeDocumentStorage stands in for the GCS bucket in tests.
type fakeDocumentStorage struct {
	uploads map[string][]byte
	signErr bool
}

func newFakeDocumentStorage() *fakeDocumentStorage {
	return &fakeDocumentStorage{uploads: make(map[string][]byte)}
}

func (f *fakeDocumentStorage) UploadDocument(ctx context.Context, r io.Reader, fileName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("resumes/%d-%s", len(f.uploads), fileName)
	f.uploads[key] = data
	return key, nil
}

func (f *fakeDocumentStorage) SignedURL(key string, expiry time.Duration) (string, error) {
	if f.signErr {
		return "", errors.New("signing failed")
	}
	if _, ok := f.uploads[key]; !ok {
		return "", errors.New("no such object")
	}
	return "https://storage.example.com/signed/" + key, nil
}

// newTestRouter wires the full API surface the way the server does, minus
// redis, meilisearch and cloudinary.
func newTestRouter(t *testing.T, db *gorm.DB, docs *fakeDocumentStorage) *gin.Engine {
	t.Helper()

	images := setupImageStorage(t)

	submissionRepo := repository.NewSubmissionRepository(db)
	submissionSvc := service.NewSubmissionService(submissionRepo, images, nil)
	submissionHandler := NewSubmissionHandler(submissionSvc, nil)

	registrationRepo := repository.NewRegistrationRepository(db)
	registrationSvc := service.NewRegistrationService(registrationRepo)
	registrationHandler := NewRegistrationHandler(registrationSvc)

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, docs)
	authHandler := NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(userRepo, docs)
	profileHandler := NewProfileHandler(profileSvc)

	adminSvc := service.NewAdminService(userRepo, docs)
	adminHandler := NewAdminHandler(adminSvc)

	eventRepo := repository.NewEventRepository(db)
	eventSvc := service.NewEventService(eventRepo)
	eventHandler := NewEventHandler(eventSvc)

	authMiddleware := middleware.NewAuthMiddleware()

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/health", Health)

		api.POST("/submissions", submissionHandler.CreateSubmission)
		api.GET("/submissions", submissionHandler.ListSubmissions)
		api.GET("/submissions/search", submissionHandler.SearchSubmissions)
		api.GET("/submissions/:id", submissionHandler.GetSubmission)

		api.POST("/registrations", registrationHandler.CreateRegistration)
		api.GET("/registrations", middleware.RequireAPIKey(testAPIKey), registrationHandler.ListRegistrations)
		api.GET("/registrations/count", registrationHandler.CountRegistrations)
		api.GET("/registrations/live", registrationHandler.LiveCount)

		api.POST("/account-reg", authHandler.RegisterAccount)
		api.POST("/login", authHandler.Login)
		api.PUT("/profile", authMiddleware.RequireAuth(), profileHandler.UpdateProfile)

		api.GET("/admin/registrations", middleware.RequireAPIKey(testAPIKey), adminHandler.ListAccountRegistrations)

		api.POST("/events/register", eventHandler.RegisterForEvent)
	}

	return router
}

const testAPIKey = "test-admin-key"

func newBareRouter() *gin.Engine {
	return gin.New()
}

func httptestGet(url string) *http.Request {
	return httptest.NewRequest(http.MethodGet, url, nil)
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return doRequest(router, req)
}

// multipartBody builds a multipart form with string fields and, when
// fileField is non-empty, one attached file.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return buf, writer.FormDataContentType()
}

func doMultipart(t *testing.T, router *gin.Engine, method, url string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, fileField, fileName, fileContent)
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	return doRequest(router, req)
}
