package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI         string
	DBName           string
	JWTSecret        string
	TokenTTL         time.Duration
	PaymentAPIURL    string
	PaymentAPIKey    string
	PaymentAPISecret string
	Port             string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:           getEnvOrDefault("DB_NAME", "shopmall"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:         getDurationEnv("TOKEN_TTL", 168, time.Hour),
		PaymentAPIURL:    getEnvOrDefault("PAYMENT_API_URL", "https://api.iamport.kr"),
		PaymentAPIKey:    getEnvOrDefault("PAYMENT_API_KEY", ""),
		PaymentAPISecret: getEnvOrDefault("PAYMENT_API_SECRET", ""),
		Port:             getEnvOrDefault("PORT", "8080"),
	}

	if AppEnv.JWTSecret == "" {
		log.Println("[CONFIG] [WARN] JWT_SECRET is not set; tokens cannot be issued safely")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
