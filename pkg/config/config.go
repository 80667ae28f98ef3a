package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Resources ResourcesConfig
	Slogan    SloganConfig
	Branding  BrandingConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the last-known-good snapshot cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// AuthConfig holds signup and admin-credential policy.
type AuthConfig struct {
	MinPasswordLength int
}

// ResourcesConfig controls resource file storage & validation.
type ResourcesConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// SloganConfig points at the generative-text API used for slogan suggestions.
type SloganConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// BrandingConfig supplies the defaults served before an admin saves branding.
type BrandingConfig struct {
	DefaultBrandName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_SNAPSHOT_CACHE"),
		TTL:     parseDuration(v.GetString("SNAPSHOT_CACHE_TTL"), 0),
	}

	cfg.Auth = AuthConfig{
		MinPasswordLength: v.GetInt("MIN_PASSWORD_LENGTH"),
	}

	maxResourceSize := v.GetInt64("RESOURCES_MAX_FILE_SIZE")
	if maxResourceSize <= 0 {
		maxResourceSize = 10 * 1024 * 1024
	}
	cfg.Resources = ResourcesConfig{
		StorageDir:        v.GetString("RESOURCES_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("RESOURCES_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("RESOURCES_SIGNED_URL_TTL"), 30*time.Minute),
		MaxFileSizeBytes:  maxResourceSize,
		AllowedExtensions: splitAndTrim(v.GetString("RESOURCES_ALLOWED_EXTENSIONS")),
	}

	cfg.Slogan = SloganConfig{
		Endpoint: v.GetString("SLOGAN_API_ENDPOINT"),
		APIKey:   v.GetString("SLOGAN_API_KEY"),
		Timeout:  parseDuration(v.GetString("SLOGAN_API_TIMEOUT"), 10*time.Second),
	}

	cfg.Branding = BrandingConfig{
		DefaultBrandName: v.GetString("DEFAULT_BRAND_NAME"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "elite_hub_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SNAPSHOT_CACHE", true)
	v.SetDefault("SNAPSHOT_CACHE_TTL", "0")

	v.SetDefault("MIN_PASSWORD_LENGTH", 6)

	v.SetDefault("RESOURCES_STORAGE_DIR", "./resources")
	v.SetDefault("RESOURCES_SIGNED_URL_SECRET", "dev_download_secret")
	v.SetDefault("RESOURCES_SIGNED_URL_TTL", "30m")
	v.SetDefault("RESOURCES_ALLOWED_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.webp,.pdf,.doc,.docx,.xls,.xlsx,.ppt,.pptx,.txt")

	v.SetDefault("SLOGAN_API_ENDPOINT", "")
	v.SetDefault("SLOGAN_API_KEY", "")
	v.SetDefault("SLOGAN_API_TIMEOUT", "10s")

	v.SetDefault("DEFAULT_BRAND_NAME", "ELITE HUB")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
