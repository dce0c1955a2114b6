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
	ServerAddr string
	LogLevel   string

	DatabaseURL string

	JWTSecret          string
	JWTAlgorithm       string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	URLTokenMaxAge     time.Duration

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	MailUsername string
	MailPassword string
	MailServer   string
	MailPort     int
	MailFrom     string
	MailFromName string

	Domain string

	KafkaBrokers []string

	ESURL       string
	ESUser      string
	ESPassword  string
	ESBookIndex string
}

// Load reads .env when present and falls back to the process environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		ServerAddr: EnvDefault("SERVER_ADDR", ":8000"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTAlgorithm:       EnvDefault("JWT_ALGORITHM", "HS256"),
		AccessTokenExpiry:  EnvDurationDefault("ACCESS_TOKEN_EXPIRY", time.Hour),
		RefreshTokenExpiry: EnvDurationDefault("REFRESH_TOKEN_EXPIRY", 48*time.Hour),
		URLTokenMaxAge:     EnvDurationDefault("URL_TOKEN_MAX_AGE", time.Hour),

		RedisHost:     EnvDefault("REDIS_HOST", "localhost"),
		RedisPort:     EnvIntDefault("REDIS_PORT", 6379),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),

		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     EnvIntDefault("MAIL_PORT", 587),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: EnvDefault("MAIL_FROM_NAME", "Bookly"),

		Domain: EnvDefault("DOMAIN", "localhost:8000"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:       os.Getenv("ES_URL"),
		ESUser:      os.Getenv("ES_USER"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		ESBookIndex: EnvDefault("ES_BOOK_INDEX", "books"),
	}
}

// RedisAddr is host:port of the revocation store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + strconv.Itoa(c.RedisPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDurationDefault accepts Go durations ("90m") or plain seconds ("3600").
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
