package repositories

import (
	"context"
	"fmt"
	"net/http"

	"weather-voice/internal/models"
)

// HTTPClient is the subset of *http.Client used by the repositories.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository reads weather data for a city by name.
type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (models.CurrentConditions, error)
	FetchForecast(ctx context.Context, city string) (models.ForecastList, error)
}

// StatusError is returned when the provider answers with a non-200 status.
// Body keeps the raw provider response for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error (status %d): %s", e.StatusCode, e.Body)
}

func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
