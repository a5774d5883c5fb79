package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	// WeatherbitAPIKey is passed to the provider on construction; it is never
	// read from the environment at fetch time.
	WeatherbitAPIKey  string `validate:"required"`
	WeatherbitBaseURL string `validate:"required,url"`

	City string `validate:"required"`
	Days int    `validate:"min=1,max=16"`

	HTTPTimeout time.Duration `validate:"gt=0"`
	LoadTimeout time.Duration `validate:"gt=0"`

	FetchMaxRetries int `validate:"min=0,max=5"`

	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"min=1"`

	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates an AppConfig from a lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		WeatherbitAPIKey:  getenv("WEATHERBIT_API_KEY"),
		WeatherbitBaseURL: getenvDefault(getenv, "WEATHERBIT_BASE_URL", "https://api.weatherbit.io/v2.0"),
		City:              getenvDefault(getenv, "FORECAST_CITY", "Raleigh,NC"),
		Port:              getenvDefault(getenv, "PORT", "8080"),
		LogLevel:          getenvDefault(getenv, "LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Days, err = getenvInt(getenv, "FORECAST_DAYS", 15); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration(getenv, "HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LoadTimeout, err = getenvDuration(getenv, "LOAD_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchMaxRetries, err = getenvInt(getenv, "FETCH_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getenvInt(getenv, "RATE_LIMIT_BURST", 1); err != nil {
		return nil, err
	}

	rps := getenvDefault(getenv, "RATE_LIMIT_RPS", "1")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
