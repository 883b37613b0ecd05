package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	MongoURL    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleProjectID  string
	VertexLocation   string
	VertexTunedModel string
	VertexBaseModel  string

	AITimeout      time.Duration
	StoreTimeout   time.Duration
	CareerCacheTTL time.Duration

	CORSAllowedOrigins []string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		JWTKey:           []byte(getEnv("JWT_SECRET", "")),
		JWTExp:           time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		MongoURL:         getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGODB_DB", "career_advisor"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		GoogleProjectID:  getEnv("GOOGLE_PROJECT_ID", ""),
		VertexLocation:   getEnv("VERTEX_LOCATION", "us-central1"),
		VertexTunedModel: getEnv("VERTEX_TUNED_MODEL", ""),
		VertexBaseModel:  getEnv("VERTEX_BASE_MODEL", "gemini-2.5-flash-lite"),
		AITimeout:        time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 45)) * time.Second,
		StoreTimeout:     time.Duration(getEnvAsInt("STORE_TIMEOUT_SECONDS", 5)) * time.Second,
		CareerCacheTTL:   time.Duration(getEnvAsInt("CAREER_CACHE_TTL_HOURS", 24)) * time.Hour,

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
