package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	CookieSecure     bool

	// Uploads
	UploadTempDir string
	BodyLimitMB   int

	// Media relay: "s3" or "local"
	MediaDriver       string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3PublicBaseURL   string
	S3Prefix          string
	LocalMediaDir     string
	LocalMediaBaseURL string
	FFProbeEnabled    bool

	// Redis (optional, shared rate limiter state)
	RedisURL string

	// Observability
	SentryDSN    string
	AppEnv       string
	LogRetention time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "vidtube"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "240h"), 240*time.Hour),
		CookieSecure:     parseBool(getEnv("COOKIE_SECURE", "true")),

		UploadTempDir: getEnv("UPLOAD_TEMP_DIR", "./public/temp"),
		BodyLimitMB:   parseInt(getEnv("BODY_LIMIT_MB", "512"), 512),

		MediaDriver:       getEnv("MEDIA_DRIVER", "local"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		S3Prefix:          getEnv("S3_PREFIX", "vidtube"),
		LocalMediaDir:     getEnv("LOCAL_MEDIA_DIR", "./uploads"),
		LocalMediaBaseURL: getEnv("LOCAL_MEDIA_BASE_URL", "/uploads"),
		FFProbeEnabled:    parseBool(getEnv("FFPROBE_ENABLED", "true")),

		RedisURL: getEnv("REDIS_URL", ""),

		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		Port:        getEnv("PORT", "8000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// BodyLimit is the maximum accepted request body in bytes.
func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
