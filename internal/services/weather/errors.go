package weather

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed query.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindMisconfigured        Kind = "misconfigured"
	KindUnsupportedTimeRange Kind = "unsupported_time_range"
	KindNotFound             Kind = "not_found"
	KindProviderError        Kind = "provider_error"
	KindInternal             Kind = "internal"
)

// HTTPStatus is the status code the API answers with for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindUnsupportedTimeRange:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Stage is a state of the query pipeline.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageValidating    Stage = "validating"
	StageFetching      Stage = "fetching"
	StageSlotSelecting Stage = "slot_selecting"
	StageNormalizing   Stage = "normalizing"
	StageComposing     Stage = "composing"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

// QueryError is returned by WeatherService.Query. Message is safe to show to
// the user; StatusCode and Body are set for provider failures.
type QueryError struct {
	Kind       Kind
	Stage      Stage
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches any *QueryError of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	return ok && t.Kind == e.Kind && t.Message == ""
}

var (
	ErrInvalidInput         = &QueryError{Kind: KindInvalidInput}
	ErrMisconfigured        = &QueryError{Kind: KindMisconfigured}
	ErrUnsupportedTimeRange = &QueryError{Kind: KindUnsupportedTimeRange}
	ErrNotFound             = &QueryError{Kind: KindNotFound}
	ErrProvider             = &QueryError{Kind: KindProviderError}
	ErrInternal             = &QueryError{Kind: KindInternal}
)

const (
	msgCityRequired   = "City parameter is required"
	msgNoAPIKey       = "OpenWeather API key not configured on the server."
	msgPastUnsupport  = "Sorry, I cannot fetch weather for the past."
	msgNoWeatherData  = "Could not retrieve weather data"
	msgUnreachable    = "Could not reach the weather provider."
	msgMalformedReply = "Malformed weather provider response"
)

func newError(kind Kind, stage Stage, format string, args ...any) *QueryError {
	return &QueryError{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)}
}
