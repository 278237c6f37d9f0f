package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort       string
	PublicBaseURL string
	LogLevel      string
	LogFormat     string

	DBPath         string
	UploadDir      string
	MaxUploadBytes int64
	MinResumeText  int

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int
	QdrantTimeout    time.Duration

	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string

	LLMProvider    string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration
	LLMMaxRetries  int

	SearchLimit   int
	ShortlistSize int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:       getEnv("API_PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),

		DBPath:    getEnv("DB_PATH", "./data/talentmatch.db"),
		UploadDir: getEnv("UPLOAD_DIR", "./data/uploads"),

		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "resumes"),

		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		LLMProvider: getEnv("LLM_PROVIDER", "openai"),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),
	}

	// QDRANT_VECTOR_SIZE must match the output vector size of the embeddings
	// model (1536 for text-embedding-3-small). If the size changes, the Qdrant
	// collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.MaxUploadBytes, err = getEnvInt64("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.MinResumeText, err = getEnvInt("MIN_RESUME_TEXT", 100); err != nil {
		return nil, err
	}
	if cfg.QdrantTimeout, err = getEnvDuration("QDRANT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.LLMMaxTokens, err = getEnvInt("LLM_MAX_TOKENS", 1024); err != nil {
		return nil, err
	}
	if cfg.LLMTemperature, err = getEnvFloat("LLM_TEMPERATURE", 0.2); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getEnvDuration("LLM_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.LLMMaxRetries, err = getEnvInt("LLM_MAX_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = getEnvInt("SEARCH_LIMIT", 12); err != nil {
		return nil, err
	}
	if cfg.ShortlistSize, err = getEnvInt("SHORTLIST_SIZE", 5); err != nil {
		return nil, err
	}

	switch cfg.LLMProvider {
	case "openai", "anthropic", "gemini", "none", "":
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be one of openai, anthropic, gemini, none (got %q)", cfg.LLMProvider)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be greater than 0")
	}
	if cfg.MinResumeText <= 0 {
		return nil, fmt.Errorf("MIN_RESUME_TEXT must be greater than 0")
	}
	if cfg.SearchLimit <= 0 {
		return nil, fmt.Errorf("SEARCH_LIMIT must be greater than 0")
	}
	if cfg.ShortlistSize <= 0 {
		return nil, fmt.Errorf("SHORTLIST_SIZE must be greater than 0")
	}

	// Create data directories if they don't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}
