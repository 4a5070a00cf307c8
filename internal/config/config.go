package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		log.Println("WARNING: JWT_SECRET not set, using fallback (not secure for production)")
		secret = "fallback-secret-key-change-in-production"
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		JWT: JWTConfig{
			Secret: secret,
			Expiry: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
