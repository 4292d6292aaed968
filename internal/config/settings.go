package config

import (
	"os"
	"strconv"
)

// Settings holds the environment-provided configuration. It is loaded once in
// main and handed to constructors so nothing reads the environment at call time.
type Settings struct {
	Provider       string //"openai" or "gemini"
	OpenAIKey      string
	GeminiKey      string
	ModelName      string
	EmbeddingModel string

	QdrantHost string
	QdrantPort int

	RedisAddr     string
	RedisPassword string

	AuthToken    string
	NoAuthBypass bool

	ListenAddr string
}

func Load() *Settings {
	return &Settings{
		Provider:       getEnv("LLM_PROVIDER", "openai"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		ModelName:      getEnv("LLM_MODEL", OpenAIModelName),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", OpenAIEmbeddingModel),
		QdrantHost:     getEnv("QDRANT_HOST", QdrantHost),
		QdrantPort:     getEnvInt("QDRANT_PORT", QdrantGrpcPort),
		RedisAddr:      getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AuthToken:      os.Getenv("API_AUTH_TOKEN"),
		NoAuthBypass:   os.Getenv("NO_AUTH_BYPASS") == "true",
		ListenAddr:     getEnv("LISTEN_ADDR", ServerListenAddr),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
