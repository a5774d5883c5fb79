package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/astrodash/internal/forecast"
)

// DefaultWeatherbitBaseURL is the Weatherbit v2.0 API root.
const DefaultWeatherbitBaseURL = "https://api.weatherbit.io/v2.0"

var validate = newValidator()

// newValidator lets `required` see through forecast.Temperature to the raw value.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if t, ok := field.Interface().(forecast.Temperature); ok {
			return t.String()
		}
		return nil
	}, forecast.Temperature{})
	return v
}

// WeatherbitProvider implements forecast.Source for the Weatherbit daily forecast.
type WeatherbitProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// WeatherbitOption customizes a WeatherbitProvider.
type WeatherbitOption func(*WeatherbitProvider)

// WithBaseURL points the provider at a different API root.
func WithBaseURL(base string) WeatherbitOption {
	return func(p *WeatherbitProvider) {
		if base != "" {
			p.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithBackoff enables retries. By default a fetch is a single request.
func WithBackoff(b BackoffConfig) WeatherbitOption {
	return func(p *WeatherbitProvider) {
		p.httpCfg.Backoff = b
	}
}

// NewWeatherbitProvider creates a provider that authenticates with apiKey.
// Without options it targets DefaultWeatherbitBaseURL and makes one attempt per fetch.
func NewWeatherbitProvider(client *http.Client, apiKey string, opts ...WeatherbitOption) *WeatherbitProvider {
	p := &WeatherbitProvider{
		name:    "weatherbit",
		apiKey:  apiKey,
		baseURL: DefaultWeatherbitBaseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      0,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("weatherbit"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier used in logs.
func (p *WeatherbitProvider) Name() string {
	return p.name
}

// dailyPayload is the subset of the /forecast/daily response we use.
type dailyPayload struct {
	CityName string               `json:"city_name"`
	Data     []forecast.RawRecord `json:"data" validate:"required,dive"`
}

// FetchDaily requests the daily forecast for city over the given number of days.
func (p *WeatherbitProvider) FetchDaily(ctx context.Context, city string, days int) ([]forecast.RawRecord, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherbit: %w", ErrMissingAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("days", strconv.Itoa(days))
		values.Set("city", city)
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s/forecast/daily?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("weatherbit: %w", err)
	}
	defer resp.Body.Close()

	var payload dailyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weatherbit: %w: %v", ErrMalformed, err)
	}

	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("weatherbit: %w: %v", ErrMalformed, err)
	}

	return payload.Data, nil
}

var _ forecast.Source = (*WeatherbitProvider)(nil)
