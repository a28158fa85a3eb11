package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-voice/internal/metrics"
	"weather-voice/internal/models"
	"weather-voice/pkg/logger"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	currentEndpoint  = "weather"
	forecastEndpoint = "forecast"
)

var ErrEmptyAPIKey = errors.New("API key cannot be empty")

type OpenWeatherRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrEmptyAPIKey
	}
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenWeatherRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OpenWeatherRepository) Name() string {
	return "openweathermap"
}

// FetchCurrent calls the current conditions endpoint.
func (o *OpenWeatherRepository) FetchCurrent(ctx context.Context, city string) (models.CurrentConditions, error) {
	var conditions models.CurrentConditions
	if err := o.get(ctx, currentEndpoint, city, &conditions); err != nil {
		return models.CurrentConditions{}, err
	}
	return conditions, nil
}

// FetchForecast calls the multi-point forecast endpoint.
func (o *OpenWeatherRepository) FetchForecast(ctx context.Context, city string) (models.ForecastList, error) {
	var forecast models.ForecastList
	if err := o.get(ctx, forecastEndpoint, city, &forecast); err != nil {
		return models.ForecastList{}, err
	}

	o.l.Debug("parsed forecast response", map[string]any{
		"city":  city,
		"items": len(forecast.List),
	})

	return forecast, nil
}

func (o *OpenWeatherRepository) get(ctx context.Context, endpoint, city string, out any) error {
	if strings.TrimSpace(o.APIKey) == "" {
		return ErrEmptyAPIKey
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", o.APIKey)
	params.Set("units", "metric")
	u := fmt.Sprintf("%s/%s?%s", o.BaseURL, endpoint, params.Encode())

	o.l.Info("making openweathermap API request", map[string]any{
		"endpoint": endpoint,
		"city":     city,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", withoutURL(err))
	}

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	if err != nil {
		metrics.ObserveProviderRequest(endpoint, "error", time.Since(start))
		return fmt.Errorf("failed to do request: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	metrics.ObserveProviderRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	o.l.Info("received openweathermap API response", map[string]any{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// withoutURL drops the request URL from err. The URL carries the API key.
func withoutURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
