package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	// OpenWeatherAPIKey may be empty; requests then fail with a configuration error.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds every outbound call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Resilience around the upstream. Zero retries keeps a single attempt per request.
	UpstreamMaxRetries int           `validate:"gte=0,lte=5"`
	BreakerMaxRequests uint32        `validate:"gte=1"`
	BreakerTimeout     time.Duration `validate:"gt=0"`

	// Upstream probing (0 interval disables it).
	ProbeInterval time.Duration `validate:"gte=0"`
	ProbeQuery    string        `validate:"required"`
	ProbeHistory  int           `validate:"gte=0"` // 0 = unlimited

	CORSAllowOrigins string `validate:"required"`

	AppEnv   string
	LogLevel string `validate:"oneof=debug info warn error"`
	Port     string `validate:"required,numeric"`
}

var defaults = map[string]string{
	"OPENWEATHER_BASE_URL": "https://api.openweathermap.org",
	"HTTP_TIMEOUT":         "10s",
	"UPSTREAM_MAX_RETRIES": "0",
	"BREAKER_MAX_REQUESTS": "5",
	"BREAKER_TIMEOUT":      "2m",
	"PROBE_INTERVAL":       "15m",
	"PROBE_QUERY":          "London",
	"PROBE_HISTORY":        "20",
	"CORS_ALLOW_ORIGINS":   "*",
	"APP_ENV":              "development",
	"LOG_LEVEL":            "info",
	"PORT":                 "8080",
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey:  v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: v.GetString("OPENWEATHER_BASE_URL"),
		UpstreamMaxRetries: v.GetInt("UPSTREAM_MAX_RETRIES"),
		BreakerMaxRequests: v.GetUint32("BREAKER_MAX_REQUESTS"),
		ProbeQuery:         v.GetString("PROBE_QUERY"),
		ProbeHistory:       v.GetInt("PROBE_HISTORY"),
		CORSAllowOrigins:   v.GetString("CORS_ALLOW_ORIGINS"),
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Port:               v.GetString("PORT"),
	}

	var err error
	if cfg.HTTPTimeout, err = parseDuration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = parseDuration(v, "BREAKER_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = parseDuration(v, "PROBE_INTERVAL"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
