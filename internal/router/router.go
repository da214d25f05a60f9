package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pastryvapors/promohub/backend/internal/handlers"
	"github.com/pastryvapors/promohub/backend/internal/middleware"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/internal/ws"
	"github.com/pastryvapors/promohub/backend/pkg/cloudinary"
	"github.com/pastryvapors/promohub/backend/pkg/config"
	"github.com/pastryvapors/promohub/backend/pkg/firebase"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Deps carries the optional external clients. firebaseApp and Images may be
// nil when the corresponding integration is not configured.
type Deps struct {
	FirebaseApp *firebase.App
	Images      *cloudinary.Client
	Hub         *ws.Hub
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the repositories the background scheduler shares.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, deps Deps) (repositories.UserRepository, repositories.SubmissionRepository) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.Announcement{},
		&models.SignupSetting{},
		&models.GoogleAccount{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	submissionRepo := repositories.NewMongoSubmissionRepository(mgClient.Database(cfg.MongoDatabase))
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	announcementRepo := repositories.NewPostgresAnnouncementRepository(pgdb)
	settingsRepo := repositories.NewPostgresSettingsRepository(pgdb)
	googleAccountRepo := repositories.NewPostgresGoogleAccountRepository(pgdb)

	var firebaseAuthClient *auth.Client
	if deps.FirebaseApp != nil {
		firebaseAuthClient = deps.FirebaseApp.AuthClient
	}

	// --- Unprotected routes ---
	public := e.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(userRepo, settingsRepo, googleAccountRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(public.Group("/auth"))
	log.Println("Auth routes configured.")

	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	settingsHandler.RegisterPublicSettingsRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Promoter routes
	submissionHandler := handlers.NewSubmissionHandler(submissionRepo, userRepo, notificationRepo, deps.Hub)
	submissionHandler.RegisterSubmissionRoutes(api)

	profileHandler := handlers.NewProfileHandler(userRepo, deps.Images)
	profileHandler.RegisterProfileRoutes(api)

	rankingHandler := handlers.NewRankingHandler(userRepo)
	rankingHandler.RegisterRankingRoutes(api)

	announcementHandler := handlers.NewAnnouncementHandler(announcementRepo)
	announcementHandler.RegisterAnnouncementRoutes(api)
	log.Println("Promoter routes configured.")

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly(userRepo))

	reviewHandler := handlers.NewReviewHandler(submissionRepo, userRepo, deps.Hub)
	reviewHandler.RegisterReviewRoutes(admin)

	promoterHandler := handlers.NewPromoterHandler(userRepo, submissionRepo, deps.FirebaseApp)
	promoterHandler.RegisterPromoterRoutes(admin)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(admin)

	announcementHandler.RegisterAdminAnnouncementRoutes(admin)
	settingsHandler.RegisterAdminSettingsRoutes(admin)
	log.Println("Admin routes configured.")

	return userRepo, submissionRepo
}
