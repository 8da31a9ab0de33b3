package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSAllowOrigins  string `mapstructure:"CORS_ALLOW_ORIGINS"`
	TrustedProxiesCSV string `mapstructure:"TRUSTED_PROXIES"`

	// Remote villa API.
	APIBaseURL       string        `mapstructure:"API_BASE_URL"`
	APIHealthPath    string        `mapstructure:"API_HEALTH_PATH"`
	APITimeout       time.Duration `mapstructure:"API_TIMEOUT"`
	AuthProbeEnabled bool          `mapstructure:"AUTH_PROBE_ENABLED"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Browser sessions.
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	BannerTTL     time.Duration `mapstructure:"BANNER_TTL"`
	ToastDelay    time.Duration `mapstructure:"TOAST_DELAY"`

	// Google sign-in.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	PostLoginRedirect  string `mapstructure:"POST_LOGIN_REDIRECT"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("API_BASE_URL", "https://villa-finder-backend.onrender.com")
	v.SetDefault("API_HEALTH_PATH", "/api/health")
	v.SetDefault("API_TIMEOUT", 15*time.Second)
	v.SetDefault("AUTH_PROBE_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", 30*24*time.Hour)
	v.SetDefault("BANNER_TTL", 10*time.Second)
	v.SetDefault("TOAST_DELAY", 500*time.Millisecond)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback")
	v.SetDefault("POST_LOGIN_REDIRECT", "/")
}

// Load reads configuration into a fresh Config without touching AppConfig.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowOrigins)
}

// TrustedProxies splits TRUSTED_PROXIES on commas. Empty means forwarding
// headers are ignored and the socket address identifies the client.
func (c Config) TrustedProxies() []string {
	return splitList(c.TrustedProxiesCSV)
}

func splitList(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
