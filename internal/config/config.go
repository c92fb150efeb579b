package config

import (
	"fmt"
	"os"
	"strconv"
)

// DBConfig holds database configuration.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GetDSN returns the PostgreSQL connection string.
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port       string
	CORSOrigin string
}

// JWTConfig holds token signing options.
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// SchedulerConfig holds the cron expression for the daily inventory job.
type SchedulerConfig struct {
	AlertSchedule string
}

// Config holds all configuration.
type Config struct {
	DB        DBConfig
	Server    ServerConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pharmacy"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:       getEnv("SERVER_PORT", "8080"),
			CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "pharmacysecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Scheduler: SchedulerConfig{
			AlertSchedule: getEnv("ALERT_CRON", "0 8 * * *"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
