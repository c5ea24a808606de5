package server

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/uvichacks/showcase/internal/config"
	"github.com/uvichacks/showcase/internal/handler"
	"github.com/uvichacks/showcase/internal/middleware"
	"github.com/uvichacks/showcase/internal/repository"
	"github.com/uvichacks/showcase/internal/service"
	"github.com/uvichacks/showcase/pkg/storage"
	"gorm.io/gorm"
)

// Matches the 20MB multer cap the upload form was built around.
const maxUploadBytes = 20 << 20

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	uploadDir := filepath.Join(cfg.DataDir, "uploads")

	var imageStorage storage.ImageStorage
	var err error
	if cfg.CloudinaryURL != "" {
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		imageStorage, err = storage.NewDiskStorage(uploadDir)
		if err != nil {
			log.Fatalf("failed to initialize disk storage: %v", err)
		}
	}

	var documentStorage storage.DocumentStorage
	if cfg.GCSBucket != "" {
		documentStorage, err = storage.NewGCSStorage(context.Background(), cfg.GCSBucket, cfg.GoogleCredentials)
		if err != nil {
			log.Fatalf("failed to initialize gcs storage: %v", err)
		}
	} else {
		log.Println("GCS_BUCKET not set, resume storage disabled")
	}

	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewSearchService(meiliClient)
	}

	submissionRepo := repository.NewSubmissionRepository(db)
	submissionSvc := service.NewSubmissionService(submissionRepo, imageStorage, searchSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, searchSvc)

	registrationRepo := repository.NewRegistrationRepository(db)
	registrationSvc := service.NewRegistrationService(registrationRepo)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc)

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, documentStorage)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(userRepo, documentStorage)
	profileHandler := handler.NewProfileHandler(profileSvc)

	adminSvc := service.NewAdminService(userRepo, documentStorage)
	adminHandler := handler.NewAdminHandler(adminSvc)

	eventRepo := repository.NewEventRepository(db)
	eventSvc := service.NewEventService(eventRepo)
	eventHandler := handler.NewEventHandler(eventSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = maxUploadBytes

	// Disk-stored submission images are public by a static path; resumes
	// never are.
	router.Static(storage.PublicPrefix, uploadDir)

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		api.POST("/submissions",
			middleware.RateLimit(redisClient, "submission", cfg.RateLimitWindow),
			submissionHandler.CreateSubmission)
		api.GET("/submissions", submissionHandler.ListSubmissions)
		api.GET("/submissions/search", submissionHandler.SearchSubmissions)
		api.GET("/submissions/:id", submissionHandler.GetSubmission)

		api.POST("/registrations",
			middleware.RateLimit(redisClient, "registration", cfg.RateLimitWindow),
			registrationHandler.CreateRegistration)
		api.GET("/registrations", middleware.RequireAPIKey(cfg.AdminAPIKey), registrationHandler.ListRegistrations)
		api.GET("/registrations/count", registrationHandler.CountRegistrations)
		api.GET("/registrations/live", registrationHandler.LiveCount)

		api.POST("/account-reg", authHandler.RegisterAccount)
		api.POST("/login", authHandler.Login)
		api.PUT("/profile", authMiddleware.RequireAuth(), profileHandler.UpdateProfile)

		api.GET("/admin/registrations", middleware.RequireAPIKey(cfg.AdminAPIKey), adminHandler.ListAccountRegistrations)

		api.POST("/events/register", eventHandler.RegisterForEvent)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-api-key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
