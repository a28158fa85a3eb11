package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"weather-voice/internal/models"
	"weather-voice/internal/repositories"
)

const msgFetchFailed = "Failed to fetch weather."

// Reply is the body of a successful /api/weather response. Error is kept for
// servers that report failures with a 200 status.
type Reply struct {
	models.WeatherResult
	Error string `json:"error,omitempty"`
}

// Backend answers a structured weather query.
type Backend interface {
	Weather(ctx context.Context, req models.WeatherRequest) (Reply, error)
}

// HTTPBackend calls the weather-voice HTTP API.
type HTTPBackend struct {
	BaseURL    string
	httpClient repositories.HTTPClient
}

func NewHTTPBackend(baseURL string, httpClient repositories.HTTPClient) *HTTPBackend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPBackend{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Weather posts req to /api/weather. A non-2xx answer becomes an error
// carrying the server's "error" field, or a generic message when there is none.
func (b *HTTPBackend) Weather(ctx context.Context, req models.WeatherRequest) (Reply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Reply{}, errors.Wrap(err, "encode weather request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/api/weather", bytes.NewReader(payload))
	if err != nil {
		return Reply{}, errors.Wrap(err, "create weather request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, errors.Wrap(err, "call weather backend")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, errors.Wrap(err, "read weather response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure models.ErrorResponse
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			return Reply{}, errors.New(failure.Error)
		}
		return Reply{}, errors.New(msgFetchFailed)
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, errors.Wrap(err, "decode weather response")
	}
	return reply, nil
}
