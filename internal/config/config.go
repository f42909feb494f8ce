package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	// Site identity used as the token issuer and in outbound mail.
	SiteName   string
	SiteURL    string
	AdminEmail string

	// Optional storefront integration; empty means the commerce
	// capability is unavailable.
	AccountPageURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	RedisURL string

	JWTSecretKey string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Notifications string
}

// Load reads all configuration from environment variables. A missing signing
// secret is a startup-fatal misconfiguration, so Load fails rather than
// deferring the error to the first request.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:  getEnv("APP_PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		SiteName:   getEnv("SITE_NAME", "Voye"),
		SiteURL:    getEnv("SITE_URL", "https://voyeglobal.com"),
		AdminEmail: getEnv("ADMIN_EMAIL", "support@voyeglobal.com"),

		AccountPageURL: getEnv("ACCOUNT_PAGE_URL", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "voye-avatars"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecretKey: os.Getenv("JWT_SECRET_KEY"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@voyeglobal.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
