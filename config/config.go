package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	ADMIN_TOKEN string
	CORS_ORIGIN string

	OPENAI_API_KEY string

	PAGE_CACHE_TTL time.Duration
	SEED_DEMO      bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	ADMIN_TOKEN = mustEnv("ADMIN_TOKEN")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	OPENAI_API_KEY = getEnv("OPENAI_API_KEY", "")

	PAGE_CACHE_TTL = getSeconds("PAGE_CACHE_TTL", 60)
	SEED_DEMO = getEnv("SEED_DEMO", "") == "1"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Invalid %s=%q, using %ds", key, raw, fallback)
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}
