package config

import (
	"errors"
	"io/fs"
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
	Env  string
	Port int

	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Feedback FeedbackConfig
	Chat     ChatConfig
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig is optional; an empty Addr keeps presence in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Issuer        string
	Audience      string
	SigningSecret string
	PublicKeyFile string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type FeedbackConfig struct {
	HashSecret string
}

type ChatConfig struct {
	SummaryWindow int
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:  v.GetString("ENV"),
		Port: v.GetInt("PORT"),
	}

	cfg.Mongo = MongoConfig{
		URI:      v.GetString("MONGODB_URI"),
		Database: v.GetString("MONGODB_DATABASE"),
		Timeout:  parseDuration(v.GetString("MONGODB_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Issuer:        v.GetString("AUTH_ISSUER"),
		Audience:      v.GetString("AUTH_AUDIENCE"),
		SigningSecret: v.GetString("AUTH_SIGNING_SECRET"),
		PublicKeyFile: v.GetString("AUTH_PUBLIC_KEY_FILE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Feedback = FeedbackConfig{HashSecret: v.GetString("FEEDBACK_HASH_SECRET")}

	window := v.GetInt("SUMMARY_WINDOW")
	if window <= 0 {
		window = 100
	}
	cfg.Chat = ChatConfig{SummaryWindow: window}

	if cfg.Mongo.Database == "" {
		return nil, errors.New("config: MONGODB_DATABASE must not be empty")
	}
	if cfg.Auth.SigningSecret == "" && cfg.Auth.PublicKeyFile == "" {
		return nil, errors.New("config: AUTH_SIGNING_SECRET or AUTH_PUBLIC_KEY_FILE is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "campusbuddy")
	v.SetDefault("MONGODB_TIMEOUT", "10s")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_ISSUER", "")
	v.SetDefault("AUTH_AUDIENCE", "")
	v.SetDefault("AUTH_SIGNING_SECRET", "dev_identity_secret")
	v.SetDefault("AUTH_PUBLIC_KEY_FILE", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FEEDBACK_HASH_SECRET", "dev_feedback_secret")
	v.SetDefault("SUMMARY_WINDOW", 100)
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
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
