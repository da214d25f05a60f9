package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	CloudinaryURL           string
	CloudinaryUploadFolder  string
	ReconcileCron           string
	SuspensionSweepCron     string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "promohub"),
		CloudinaryURL:           getEnv("CLOUDINARY_URL", ""),
		CloudinaryUploadFolder:  getEnv("CLOUDINARY_UPLOAD_FOLDER", "pastryvapors"),
		ReconcileCron:           getEnv("RECONCILE_CRON", "30 3 * * *"),
		SuspensionSweepCron:     getEnv("SUSPENSION_SWEEP_CRON", "0 * * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
