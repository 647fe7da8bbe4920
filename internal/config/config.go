package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// AppConfig holds every process-wide setting, built once at startup and
// handed to the components that need it. Nothing reads the environment
// after this point.
type AppConfig struct {
	Port       string
	CORSOrigin string

	MongoURI string
	Database string

	JWTKey string

	// Resend transactional mail
	ResendAPIKey string
	FromEmail    string

	// SMTP fallback (original Gmail-style account)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	// Object storage
	AWSRegion string
	S3Bucket  string
}

func NewAppConfig() (*AppConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DB_NAME", "isange_pro")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("AWS_REGION", "us-east-1")

	cfg := &AppConfig{
		Port:         v.GetString("PORT"),
		CORSOrigin:   v.GetString("CORS_ORIGIN"),
		MongoURI:     v.GetString("MONGO_URI"),
		Database:     v.GetString("DB_NAME"),
		JWTKey:       v.GetString("JWT_KEY"),
		ResendAPIKey: v.GetString("RESEND_API_KEY"),
		FromEmail:    v.GetString("FROM_EMAIL"),
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUser:     v.GetString("EMAIL"),
		SMTPPassword: v.GetString("PASS"),
		AWSRegion:    v.GetString("AWS_REGION"),
		S3Bucket:     v.GetString("S3_BUCKET"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI not set")
	}
	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY not set")
	}
	return cfg, nil
}
