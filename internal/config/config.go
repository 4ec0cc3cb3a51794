package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the complete application configuration, read from the
// environment with an optional .env overlay.
type Config struct {
	Server   ServerConfig
	Solver   SolverConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// SolverConfig holds annealing and constraint-encoding settings.
type SolverConfig struct {
	Offset      float64
	Reads       int
	Sweeps      int
	TempStart   float64
	TempEnd     float64
	Seed        int64
	Parallelism int
}

// DatabaseConfig holds solution persistence settings. URL may be empty,
// in which case persistence is disabled.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] loaded .env overlay")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Solver: SolverConfig{
			Offset:      getEnvFloatOrDefault("SCORE_OFFSET", 1000),
			Reads:       getEnvIntOrDefault("SOLVER_READS", 10),
			Sweeps:      getEnvIntOrDefault("SOLVER_SWEEPS", 1000),
			TempStart:   getEnvFloatOrDefault("SOLVER_TEMP_START", 5.0),
			TempEnd:     getEnvFloatOrDefault("SOLVER_TEMP_END", 1e-5),
			Seed:        getEnvInt64OrDefault("SOLVER_SEED", 1),
			Parallelism: getEnvIntOrDefault("SOLVER_PARALLELISM", 4),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
