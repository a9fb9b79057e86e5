package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds every runtime setting of the server
type AppConfig struct {
	Env        string
	ServerPort string

	DB *DBConfig

	JWTSecret          string
	JWTExpirationHours int64

	UploadsDir     string
	MaxUploadBytes int64

	WhatsAppNumber   string
	WhatsAppGroupURL string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	StaffEmail     string
	DigestCron     string
	DigestAfter    time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// IsProduction reports whether the server runs with production settings
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("JWT_EXPIRATION_HOURS", int64(24))
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_MB", int64(200))
	v.SetDefault("WHATSAPP_NUMBER", "+15551234567")
	v.SetDefault("WHATSAPP_GROUP_URL", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@nclexkeys.com")
	v.SetDefault("EMAIL_FROM_NAME", "NCLEX Keys")
	v.SetDefault("STAFF_EMAIL", "")
	v.SetDefault("DIGEST_CRON", "0 9 * * *")
	v.SetDefault("DIGEST_AFTER", 24*time.Hour)
	v.SetDefault("ADMIN_NAME", "NCLEX Keys Admin")

	v.AutomaticEnv()
	return v
}

// Load reads configuration from the environment, after loading an optional .env file
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}
	return FromViper(newViper())
}

// FromViper builds the configuration from an already populated viper instance
func FromViper(v *viper.Viper) (*AppConfig, error) {
	dbCfg, err := loadDBConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Env:                v.GetString("ENV"),
		ServerPort:         v.GetString("SERVER_PORT"),
		DB:                 dbCfg,
		JWTSecret:          v.GetString("JWT_SECRET_KEY"),
		JWTExpirationHours: v.GetInt64("JWT_EXPIRATION_HOURS"),
		UploadsDir:         v.GetString("UPLOADS_DIR"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_MB") * 1024 * 1024,
		WhatsAppNumber:     v.GetString("WHATSAPP_NUMBER"),
		WhatsAppGroupURL:   v.GetString("WHATSAPP_GROUP_URL"),
		SendgridAPIKey:     v.GetString("SENDGRID_API_KEY"),
		EmailFrom:          v.GetString("EMAIL_FROM"),
		EmailFromName:      v.GetString("EMAIL_FROM_NAME"),
		StaffEmail:         v.GetString("STAFF_EMAIL"),
		DigestCron:         v.GetString("DIGEST_CRON"),
		DigestAfter:        v.GetDuration("DIGEST_AFTER"),
		AdminEmail:         v.GetString("ADMIN_EMAIL"),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		AdminName:          v.GetString("ADMIN_NAME"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	if cfg.JWTExpirationHours <= 0 {
		log.Printf("Invalid JWT_EXPIRATION_HOURS %d, defaulting to 24", cfg.JWTExpirationHours)
		cfg.JWTExpirationHours = 24
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}
