package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/router"
	"github.com/pastryvapors/promohub/backend/internal/scheduler"
	"github.com/pastryvapors/promohub/backend/internal/ws"
	"github.com/pastryvapors/promohub/backend/pkg/cloudinary"
	"github.com/pastryvapors/promohub/backend/pkg/config"
	"github.com/pastryvapors/promohub/backend/pkg/firebase"
	"github.com/pastryvapors/promohub/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase (optional; Google sign-in is disabled without it)
	ctx := context.Background()
	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	} else {
		log.Println("Firebase credentials not configured; Google sign-in disabled.")
	}

	// Initialize Cloudinary (optional; picture uploads are disabled without it)
	var images *cloudinary.Client
	if cfg.CloudinaryURL != "" {
		images, err = cloudinary.New(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
	} else {
		log.Println("Cloudinary not configured; profile picture uploads disabled.")
	}

	// Review-queue websocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	userRepo, submissionRepo := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, router.Deps{
		FirebaseApp: firebaseApp,
		Images:      images,
		Hub:         hub,
	})

	// Background jobs: counter reconciliation and suspension sweep
	jobs, err := scheduler.New(cfg, userRepo, submissionRepo)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
