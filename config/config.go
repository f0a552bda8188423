package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds the gateway configuration.
// It is populated once at start-up and read through AppConfig afterwards.
type Config struct {
	Port           string   `yaml:"port"`
	JWTSecret      string   `yaml:"jwt_secret"`
	DatabaseURL    string   `yaml:"database_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	OpenWeatherAPIKey  string `yaml:"open_weather_api_key"`
	OpenWeatherBaseURL string `yaml:"open_weather_base_url"`
	OpenMeteoBaseURL   string `yaml:"open_meteo_base_url"`
	PredictionModelURL string `yaml:"prediction_model_url"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	// MarketTimezone is the IANA zone whose calendar date bounds market
	// queries.
	MarketTimezone string `yaml:"market_timezone"`

	// UpstreamTimeout bounds a single dispatcher call. Zero means no timeout.
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// AppConfig holds the application-wide configuration
var AppConfig Config

const (
	DefaultPort               = "3000"
	DefaultDatabaseURL        = "file:agrisphere.db"
	DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"
	DefaultOpenMeteoBaseURL   = "https://archive-api.open-meteo.com"
	DefaultPredictionModelURL = "http://localhost:8000"
	DefaultGeminiModel        = "gemini-1.5-pro-latest"
	DefaultMarketTimezone     = "Asia/Kolkata"
	DefaultAccessTokenTTL     = 15 * time.Minute
	DefaultRefreshTokenTTL    = 7 * 24 * time.Hour
)

// Default returns a Config with every optional field filled in.
func Default() Config {
	return Config{
		Port:               DefaultPort,
		DatabaseURL:        DefaultDatabaseURL,
		AllowedOrigins:     []string{"*"},
		OpenWeatherBaseURL: DefaultOpenWeatherBaseURL,
		OpenMeteoBaseURL:   DefaultOpenMeteoBaseURL,
		PredictionModelURL: DefaultPredictionModelURL,
		GeminiModel:        DefaultGeminiModel,
		MarketTimezone:     DefaultMarketTimezone,
		AccessTokenTTL:     DefaultAccessTokenTTL,
		RefreshTokenTTL:    DefaultRefreshTokenTTL,
		LogLevel:           "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (environment wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is not set")
	}
	if _, err := time.LoadLocation(cfg.MarketTimezone); err != nil {
		return cfg, fmt.Errorf("invalid MARKET_TIMEZONE: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.OpenWeatherAPIKey, "OPEN_WEATHER_API_KEY")
	setString(&c.OpenWeatherBaseURL, "OPEN_WEATHER_BASE_URL")
	setString(&c.OpenMeteoBaseURL, "OPEN_METEO_BASE_URL")
	setString(&c.PredictionModelURL, "PREDICTION_MODEL_URL")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.MarketTimezone, "MARKET_TIMEZONE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFile, "LOG_FILE")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}

	for name, dst := range map[string]*time.Duration{
		"UPSTREAM_TIMEOUT":  &c.UpstreamTimeout,
		"ACCESS_TOKEN_TTL":  &c.AccessTokenTTL,
		"REFRESH_TOKEN_TTL": &c.RefreshTokenTTL,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = d
	}
	return nil
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}
