package config

import (
	"fmt"
	"os"
)

// NetworkConfig holds network-related configuration
type NetworkConfig struct {
	// Hosts
	LocalHost string

	// Ports
	HTTPPort     string
	PostgresPort string

	// URLs and addresses
	WhisperBaseURL string
	DatabaseURL    string
	RedisAddr      string
	TemporalHost   string
	MinioEndpoint  string
}

// GetNetworkConfig returns network configuration from environment or defaults
func GetNetworkConfig() *NetworkConfig {
	httpPort := getEnvOrDefault("HTTP_PORT", DefaultHTTPPort)
	if err := ValidatePort(httpPort, "HTTP"); err != nil {
		httpPort = DefaultHTTPPort
	}

	return &NetworkConfig{
		LocalHost:      getEnvOrDefault("LOCAL_HOST", "localhost"),
		HTTPPort:       httpPort,
		PostgresPort:   getEnvOrDefault("POSTGRES_PORT", "5432"),
		WhisperBaseURL: getEnvOrDefault("WHISPER_BASE_URL", ""),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", ""),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", ""),
		TemporalHost:   getEnvOrDefault("TEMPORAL_HOST", "localhost:7233"),
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", ""),
	}
}

// GetWhisperBaseURL returns the hosted whisper API base URL
func (nc *NetworkConfig) GetWhisperBaseURL() string {
	if nc.WhisperBaseURL != "" {
		return nc.WhisperBaseURL
	}
	return "https://api.openai.com/v1"
}

// GetPostgresConnectionString constructs PostgreSQL connection string
func (nc *NetworkConfig) GetPostgresConnectionString() string {
	if nc.DatabaseURL != "" {
		return nc.DatabaseURL
	}

	host := getEnvOrDefault("DB_HOST", nc.LocalHost)
	port := getEnvOrDefault("DB_PORT", nc.PostgresPort)
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "postgres")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
