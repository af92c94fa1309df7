package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream marketplace API.
	UpstreamBaseURL    string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutSec int    `mapstructure:"UPSTREAM_TIMEOUT_SEC"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// Flow state lifetimes.
	DraftTTLMin    int `mapstructure:"DRAFT_TTL_MIN"`
	SessionTTLHour int `mapstructure:"SESSION_TTL_HOUR"`

	// Geolocation lookup upper bound before falling back to defaults.
	GeoTimeoutSec int `mapstructure:"GEO_TIMEOUT_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9090")
	viper.SetDefault("UPSTREAM_TIMEOUT_SEC", 15)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("DRAFT_TTL_MIN", 30)
	viper.SetDefault("SESSION_TTL_HOUR", 72)
	viper.SetDefault("GEO_TIMEOUT_SEC", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// UpstreamTimeout returns the transport timeout for marketplace API calls.
func UpstreamTimeout() time.Duration {
	return time.Duration(AppConfig.UpstreamTimeoutSec) * time.Second
}

// DraftTTL returns how long an idle booking draft survives in the cache.
func DraftTTL() time.Duration {
	return time.Duration(AppConfig.DraftTTLMin) * time.Minute
}

// SessionTTL returns how long a signed-in session survives.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLHour) * time.Hour
}

// GeoTimeout returns the upper bound for a geolocation lookup.
func GeoTimeout() time.Duration {
	return time.Duration(AppConfig.GeoTimeoutSec) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
