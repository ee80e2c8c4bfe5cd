package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	ServerPort string
	LogFormat  string
	StaticDir  string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "coursework"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "coursework.db"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		TokenTTL:   time.Duration(ttlMinutes) * time.Minute,
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		StaticDir:  getEnv("STATIC_DIR", "./static"),
	}, nil
}

// DSN собирает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
