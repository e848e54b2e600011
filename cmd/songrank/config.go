package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL    string
	Addr           string
	AllowedOrigins []string

	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	SpotifyClientID     string
	SpotifyClientSecret string
	YouTubeAPIKey       string

	LogLevel  string
	LogFormat string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return Config{}, errors.New("SESSION_SECRET env var is required")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if password == "" && passwordHash == "" {
		return Config{}, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH env var is required")
	}

	ttl, err := parseSessionTTL(envOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseURL:         dsn,
		Addr:                fmt.Sprintf(":%s", envOrDefault("PORT", "8080")),
		AllowedOrigins:      parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		AdminPassword:       password,
		AdminPasswordHash:   passwordHash,
		SessionSecret:       secret,
		SessionTTL:          ttl,
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		YouTubeAPIKey:       os.Getenv("YOUTUBE_API_KEY"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func parseSessionTTL(raw string) (time.Duration, error) {
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return 0, fmt.Errorf("invalid SESSION_TTL %q", raw)
	}
	return ttl, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
