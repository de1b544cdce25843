package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port           string
	Env            string
	PhoneRegion    string
	AllowedOrigins []string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig points at an S3-compatible bucket for uploaded medical records.
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PresignTTL      time.Duration
	MaxUploadMB     int64
}

type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	OnCall   string
	UseTLS   bool
	Timeout  time.Duration
}

type RateLimitConfig struct {
	EmergencyRequests int
	EmergencyWindow   time.Duration
	TrustedProxies    []string
}

// LoadConfig reads the given env file (".env" when empty) and lets real
// environment variables override it.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PHONE_DEFAULT_REGION", "US")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 28)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_MAX_UPLOAD_MB", 10)
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("RATE_LIMIT_EMERGENCY_REQUESTS", 5)

	if _, err := os.Stat(path); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	presignTTL, err := time.ParseDuration(viper.GetString("STORAGE_PRESIGN_TTL"))
	if err != nil {
		presignTTL = 5 * time.Minute
	}

	mailTimeout, err := time.ParseDuration(viper.GetString("MAIL_TIMEOUT"))
	if err != nil {
		mailTimeout = 10 * time.Second
	}

	redisDialTimeout, err := time.ParseDuration(viper.GetString("REDIS_DIAL_TIMEOUT"))
	if err != nil {
		redisDialTimeout = 5 * time.Second
	}

	emergencyWindow, err := time.ParseDuration(viper.GetString("RATE_LIMIT_EMERGENCY_WINDOW"))
	if err != nil {
		emergencyWindow = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			PhoneRegion:    viper.GetString("PHONE_DEFAULT_REGION"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:      viper.GetString("LOG_LEVEL"),
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:        viper.GetString("REDIS_HOST"),
			Port:        viper.GetString("REDIS_PORT"),
			Password:    viper.GetString("REDIS_PASSWORD"),
			DB:          viper.GetInt("REDIS_DB"),
			PoolSize:    viper.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: redisDialTimeout,
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Storage: StorageConfig{
			Endpoint:        viper.GetString("STORAGE_ENDPOINT"),
			Region:          viper.GetString("STORAGE_REGION"),
			Bucket:          viper.GetString("STORAGE_BUCKET"),
			AccessKeyID:     viper.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("STORAGE_SECRET_ACCESS_KEY"),
			PresignTTL:      presignTTL,
			MaxUploadMB:     viper.GetInt64("STORAGE_MAX_UPLOAD_MB"),
		},
		Mail: MailConfig{
			Enabled:  viper.GetBool("MAIL_ENABLED"),
			Host:     viper.GetString("MAIL_HOST"),
			Port:     viper.GetInt("MAIL_PORT"),
			Username: viper.GetString("MAIL_USERNAME"),
			Password: viper.GetString("MAIL_PASSWORD"),
			From:     viper.GetString("MAIL_FROM"),
			OnCall:   viper.GetString("MAIL_ONCALL_ADDRESS"),
			UseTLS:   viper.GetBool("MAIL_USE_TLS"),
			Timeout:  mailTimeout,
		},
		RateLimit: RateLimitConfig{
			EmergencyRequests: viper.GetInt("RATE_LIMIT_EMERGENCY_REQUESTS"),
			EmergencyWindow:   emergencyWindow,
			TrustedProxies:    splitList(viper.GetString("RATE_LIMIT_TRUSTED_PROXIES")),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
