package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Geocode  GeocodeConfig
}

// ServerConfig - HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig - MySQL settings
type DatabaseConfig struct {
	DSN string // e.g. "root:@tcp(localhost:3306)/sgdata_hr?parseTime=true"
}

// JWTConfig - token signing settings
type JWTConfig struct {
	Secret string
}

// GeocodeConfig - external geocoding/distance collaborators.
// Both providers are optional; the attendance flow degrades to raw
// coordinates when they are unreachable.
type GeocodeConfig struct {
	APIURL       string
	APIKey       string
	NominatimURL string
}

// Load reads configuration from .env / environment variables.
func Load() (*Config, error) {
	// .env is optional; real environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", ":8080"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("MYSQL_DSN", "root:@tcp(localhost:3306)/sgdata_hr?parseTime=true"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "sgdata_dev_secret"),
		},
		Geocode: GeocodeConfig{
			APIURL:       getEnv("GEOCODE_API_URL", ""),
			APIKey:       getEnv("GEOCODE_API_KEY", ""),
			NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		},
	}

	if cfg.Server.Port == "" {
		return nil, errors.New("server port must be set")
	}
	if cfg.JWT.Secret == "sgdata_dev_secret" {
		log.Println("WARNING: using default JWT secret, set JWT_SECRET for production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
