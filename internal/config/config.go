package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Ai       AIConfig
	Resolver ResolverConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	UnansweredLogPath  string
	CorsAllowedOrigins string
}

type StoreConfig struct {
	// Backend selects the FAQ store implementation: "file" or "postgres".
	Backend        string
	FaqFilePath    string
	VectorFilePath string
	Connection     string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "gemini"
	OllamaBaseURL     string
	OllamaModel       string
	GeminiApiKey      string
}

type ResolverConfig struct {
	ExactThreshold    float64
	ProbableThreshold float64
	TopK              int
	HistoryCapacity   int
	SessionTTL        time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			UnansweredLogPath:  getEnv("UNANSWERED_LOG_PATH", "logs/not_answered.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Backend:        getEnv("FAQ_STORE_BACKEND", "file"),
			FaqFilePath:    getEnv("FAQ_FILE_PATH", "data/faq.json"),
			VectorFilePath: getEnv("FAQ_VECTOR_FILE_PATH", "data/embeddings.json"),
			Connection:     getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiApiKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Resolver: ResolverConfig{
			ExactThreshold:    getEnvAsFloat("RESOLVER_EXACT_THRESHOLD", 0.80),
			ProbableThreshold: getEnvAsFloat("RESOLVER_PROBABLE_THRESHOLD", 0.45),
			TopK:              getEnvAsInt("RESOLVER_TOP_K", 3),
			HistoryCapacity:   getEnvAsInt("SESSION_HISTORY_CAPACITY", 10),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
