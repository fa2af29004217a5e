package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GigaChat GigaChatConfig
	Ingest   IngestConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	// URL is the full connection string of the hosted Postgres instance
	// (e.g. the credential-bearing URI Supabase hands out).
	URL string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

// IngestConfig bounds the two outbound calls of one ingestion. A timeout
// surfaces as the matching failure kind, never as a hang.
type IngestConfig struct {
	ExtractTimeout time.Duration
	StoreTimeout   time.Duration
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. It fails when a required secret is absent so a misconfigured
// process dies at startup instead of at the first request.
func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	var missing []string
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	apiKey := os.Getenv("GIGACHAT_API_KEY")
	if apiKey == "" {
		missing = append(missing, "GIGACHAT_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	extractTimeout, _ := strconv.Atoi(getEnv("EXTRACT_TIMEOUT_SECONDS", "10"))
	storeTimeout, _ := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "5"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			URL: dbURL,
		},
		GigaChat: GigaChatConfig{
			APIKey:             apiKey,
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Ingest: IngestConfig{
			ExtractTimeout: time.Duration(extractTimeout) * time.Second,
			StoreTimeout:   time.Duration(storeTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
