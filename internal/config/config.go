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
	Env  string
	Port string

	DBDriver         string
	UsersDatabaseURL string
	LeadsDatabaseURL string
	Pool             PoolConfig

	CORSOrigins      []string
	CaptureRateLimit int

	RabbitMQURL string
	Mail        MailConfig

	AnalyticsRetention time.Duration
}

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether an SMTP host was configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:         getEnv("DB_DRIVER", "pgx"),
		UsersDatabaseURL: mustGetEnv("USERS_DATABASE_URL"),
		LeadsDatabaseURL: mustGetEnv("LEADS_DATABASE_URL"),
		Pool: PoolConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME_MIN", 5)) * time.Minute,
		},

		CORSOrigins:      getEnvAsList("CORS_ORIGINS", []string{"*"}),
		CaptureRateLimit: getEnvAsInt("CAPTURE_RATE_LIMIT", 10),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     getEnvAsInt("MAIL_PORT", 587),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     getEnv("MAIL_FROM", "nao-responda@dietatransform.com.br"),
		},

		AnalyticsRetention: time.Duration(getEnvAsInt("ANALYTICS_RETENTION_DAYS", 90)) * 24 * time.Hour,
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsList(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
