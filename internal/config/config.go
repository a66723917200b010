// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Store   StoreConfig
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
	Token   TokenConfig
}

// StoreConfig holds document store connection settings
type StoreConfig struct {
	URI      string
	Database string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// TokenConfig holds session token configuration
type TokenConfig struct {
	Secret string
	Expiry time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Document store configuration
	storeURI := os.Getenv("MONGO_URI")
	if storeURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	cfg.Store.URI = storeURI

	storeDB := os.Getenv("MONGO_DB")
	if storeDB == "" {
		storeDB = "bistroBoss" // default database name
	}
	cfg.Store.Database = storeDB

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "5000" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// Token configuration
	tokenSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if tokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	cfg.Token.Secret = tokenSecret

	// Token expiry (default: 1 hour)
	tokenExpiryStr := os.Getenv("TOKEN_EXPIRY")
	if tokenExpiryStr == "" {
		tokenExpiryStr = "1h"
	}
	tokenExpiry, err := time.ParseDuration(tokenExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}
	cfg.Token.Expiry = tokenExpiry

	return cfg, nil
}
