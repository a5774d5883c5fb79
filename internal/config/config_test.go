package config

import (
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{"WEATHERBIT_API_KEY": "secret"}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.City != "Raleigh,NC" || cfg.Days != 15 {
		t.Errorf("location = %q/%d, want Raleigh,NC/15", cfg.City, cfg.Days)
	}
	if cfg.WeatherbitBaseURL != "https://api.weatherbit.io/v2.0" {
		t.Errorf("base url = %q", cfg.WeatherbitBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.LoadTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.HTTPTimeout, cfg.LoadTimeout)
	}
	if cfg.FetchMaxRetries != 0 {
		t.Errorf("retries = %d, want 0", cfg.FetchMaxRetries)
	}
	if cfg.RateLimitRPS != 1 || cfg.RateLimitBurst != 1 {
		t.Errorf("rate limit = %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Errorf("port/log = %q/%q", cfg.Port, cfg.LogLevel)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"WEATHERBIT_API_KEY":  "secret",
		"WEATHERBIT_BASE_URL": "http://127.0.0.1:9000/v2.0",
		"FORECAST_DAYS":       "7",
		"HTTP_TIMEOUT":        "3s",
		"FETCH_MAX_RETRIES":   "2",
		"RATE_LIMIT_RPS":      "0.5",
		"PORT":                "9090",
		"LOG_LEVEL":           "debug",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Days != 7 || cfg.HTTPTimeout != 3*time.Second || cfg.FetchMaxRetries != 2 || cfg.RateLimitRPS != 0.5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "debug" || cfg.WeatherbitBaseURL != "http://127.0.0.1:9000/v2.0" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing api key": {},
		"days too large":  {"WEATHERBIT_API_KEY": "k", "FORECAST_DAYS": "30"},
		"days not int":    {"WEATHERBIT_API_KEY": "k", "FORECAST_DAYS": "two"},
		"bad timeout":     {"WEATHERBIT_API_KEY": "k", "HTTP_TIMEOUT": "soon"},
		"zero rps":        {"WEATHERBIT_API_KEY": "k", "RATE_LIMIT_RPS": "0"},
		"bad log level":   {"WEATHERBIT_API_KEY": "k", "LOG_LEVEL": "loud"},
		"bad base url":    {"WEATHERBIT_API_KEY": "k", "WEATHERBIT_BASE_URL": "not a url"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(envMap(env)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
