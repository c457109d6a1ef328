package config

import (
	"os"
	"strings"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SessionSecret string
	GinMode       string
	Port          string
	UploadDir     string
	UploadBaseURL string

	// AllowedEmailDomains restricts registration to institutional addresses.
	AllowedEmailDomains []string

	// AllowedOrigins is consumed by the CORS middleware.
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "taskboard"),
		DBPassword:          getEnv("DB_PASSWORD", "taskboard"),
		DBName:              getEnv("DB_NAME", "taskboard"),
		SessionSecret:       getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		Port:                getEnv("PORT", "8080"),
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),
		UploadBaseURL:       getEnv("UPLOAD_BASE_URL", "/uploads"),
		AllowedEmailDomains: getEnvList("ALLOWED_EMAIL_DOMAINS", []string{"iiit.ac.in"}),
		AllowedOrigins:      getEnvList("ALLOW_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, strings.ToLower(trimmed))
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
