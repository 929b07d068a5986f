package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Databricks DatabricksConfig
	Athena     AthenaConfig
	Vector     VectorConfig
	Ingest     IngestConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

// DatabricksConfig points at model-serving endpoints: one for embeddings,
// one for chat-style text generation. Both share the same API key.
type DatabricksConfig struct {
	EmbeddingURL      string
	TextGenerationURL string
	APIKey            string
}

type AthenaConfig struct {
	AuthURL  string
	BaseURL  string
	ClientID string
	Username string
	Password string
}

type VectorConfig struct {
	Dimension int
}

type IngestConfig struct {
	OnenoteDataDir string
	ChunkSize      int
	ChunkOverlap   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "servicedeskhelper.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			IngestTopic:        getEnv("EMBED_TICKET_TOPIC_NAME", "EMBED_TICKET"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Databricks: DatabricksConfig{
			EmbeddingURL:      getEnv("DATABRICKS_EMBEDDING_URL", ""),
			TextGenerationURL: getEnv("DATABRICKS_TEXT_GENERATION_URL", ""),
			APIKey:            getEnv("DATABRICKS_API_KEY", ""),
		},
		Athena: AthenaConfig{
			AuthURL:  getEnv("ATHENA_AUTH_URL", ""),
			BaseURL:  getEnv("ATHENA_BASE_URL", ""),
			ClientID: getEnv("ATHENA_CLIENT_ID", ""),
			Username: getEnv("ATHENA_USERNAME", ""),
			Password: getEnv("ATHENA_PASSWORD", ""),
		},
		Vector: VectorConfig{
			Dimension: getEnvAsInt("VECTOR_DIMENSION", 1024),
		},
		Ingest: IngestConfig{
			OnenoteDataDir: getEnv("ONENOTE_DATA_DIR", "./data/onenote/workbooks"),
			ChunkSize:      getEnvAsInt("INGEST_CHUNK_SIZE", 1500),
			ChunkOverlap:   getEnvAsInt("INGEST_CHUNK_OVERLAP", 200),
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
