package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string
	AppEnv  string
	DBDSN   string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	CORSOrigins string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	ImageKitPublicKey   string
	ImageKitPrivateKey  string
	ImageKitURLEndpoint string

	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "production"),
		DBDSN:   must("DB_DSN"),

		AccessTokenSecret:  must("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: must("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     duration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL:    duration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		CORSOrigins: get("CORS_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       integer("REDIS_DB", 0),

		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),

		ImageKitPublicKey:   get("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitPrivateKey:  get("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitURLEndpoint: get("IMAGEKIT_URL_ENDPOINT", ""),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		panic("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	return cfg
}

// Development reports whether cookies may be sent without the Secure flag.
func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func get(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

func duration(k string, def time.Duration) time.Duration {
	v := get(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		panic("invalid duration in env: " + k)
	}
	return d
}

func integer(k string, def int) int {
	v := get(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic("invalid integer in env: " + k)
	}
	return n
}
