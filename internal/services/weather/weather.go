package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"weather-voice/internal/compose"
	"weather-voice/internal/metrics"
	"weather-voice/internal/models"
	"weather-voice/internal/repositories"
	"weather-voice/pkg/logger"
)

// WeatherService answers one weather query with exactly one provider call.
type WeatherService struct {
	repo     repositories.WeatherRepository
	selector *SliceSelector
	tracer   trace.Tracer
	l        *logger.Logger
}

// NewWeatherService wires the pipeline. A nil repo means no provider
// credential was configured; every query then fails as misconfigured.
func NewWeatherService(repo repositories.WeatherRepository, selector *SliceSelector, l *logger.Logger) *WeatherService {
	if selector == nil {
		selector = NewSliceSelector(nil)
	}
	return &WeatherService{
		repo:     repo,
		selector: selector,
		tracer:   otel.Tracer("weather-voice/services/weather"),
		l:        l,
	}
}

// Query runs validate, fetch, select, normalize and compose. Every failure,
// including a panic, is returned as a *QueryError.
func (s *WeatherService) Query(ctx context.Context, q models.WeatherQuery) (result models.WeatherResult, err error) {
	q = q.WithDefaults()
	stage := StageIdle

	ctx, span := s.tracer.Start(ctx, "WeatherService.Query", trace.WithAttributes(
		attribute.String("weather.city", q.City),
		attribute.String("weather.time_intent", string(q.TimeIntent)),
		attribute.String("weather.metric", string(q.Metric)),
	))

	defer func() {
		if r := recover(); r != nil {
			err = &QueryError{
				Kind:    KindInternal,
				Stage:   stage,
				Message: fmt.Sprintf("unexpected failure: %v", r),
			}
		}
		s.finish(span, q, stage, err)
	}()

	stage = StageValidating
	if err = s.validate(q); err != nil {
		return models.WeatherResult{}, err
	}

	stage = StageFetching
	var measurement models.NormalizedMeasurement
	if q.TimeIntent.IsForecast() {
		var forecast models.ForecastList
		if forecast, err = s.repo.FetchForecast(ctx, q.City); err != nil {
			return models.WeatherResult{}, providerError(err, q.City, true)
		}

		stage = StageSlotSelecting
		sample := s.selector.Select(forecast.List, q.TimeIntent)
		if sample == nil {
			return models.WeatherResult{}, newError(KindInternal, stage, msgNoWeatherData)
		}

		stage = StageNormalizing
		measurement, err = NormalizeForecast(orDefault(forecast.City.Name, q.City), *sample)
	} else {
		var current models.CurrentConditions
		if current, err = s.repo.FetchCurrent(ctx, q.City); err != nil {
			return models.WeatherResult{}, providerError(err, q.City, false)
		}

		stage = StageNormalizing
		measurement, err = NormalizeCurrent(orDefault(current.Name, q.City), current)
	}
	if err != nil {
		return models.WeatherResult{}, err
	}

	stage = StageComposing
	result = models.WeatherResult{
		NormalizedMeasurement: measurement,
		Metric:                q.Metric,
		TimeIntent:            q.TimeIntent,
		Message:               compose.Message(compose.Written, q.Metric, q.TimeIntent, measurement),
	}

	stage = StageDone
	return result, nil
}

func (s *WeatherService) validate(q models.WeatherQuery) error {
	if strings.TrimSpace(q.City) == "" {
		return newError(KindInvalidInput, StageValidating, msgCityRequired)
	}
	if s.repo == nil {
		return newError(KindMisconfigured, StageValidating, msgNoAPIKey)
	}
	if q.TimeIntent == models.TimeYesterday {
		return newError(KindUnsupportedTimeRange, StageValidating, msgPastUnsupport)
	}
	return nil
}

func (s *WeatherService) finish(span trace.Span, q models.WeatherQuery, stage Stage, err error) {
	defer span.End()

	if err == nil {
		metrics.ObserveQuery("success", string(q.Metric), string(q.TimeIntent))
		s.l.Info("weather query completed", map[string]any{
			"city":       q.City,
			"metric":     q.Metric,
			"timeIntent": q.TimeIntent,
		})
		return
	}

	var qe *QueryError
	if !errors.As(err, &qe) {
		qe = &QueryError{Kind: KindInternal, Message: err.Error(), Err: err}
	}
	if qe.Stage == "" {
		qe.Stage = stage
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, qe.Message)
	metrics.ObserveQuery(string(qe.Kind), string(q.Metric), string(q.TimeIntent))

	fields := map[string]any{
		"city":       q.City,
		"metric":     q.Metric,
		"timeIntent": q.TimeIntent,
		"kind":       qe.Kind,
		"stage":      qe.Stage,
	}
	if qe.Err != nil {
		fields["cause"] = qe.Err.Error()
	}
	if qe.Kind.HTTPStatus() >= 500 {
		s.l.Error(err, fields)
		return
	}
	s.l.Warning("weather query rejected", fields)
}

// providerError converts a repository failure into the pipeline taxonomy.
func providerError(err error, city string, forecast bool) *QueryError {
	var statusErr *repositories.StatusError
	if !errors.As(err, &statusErr) {
		return &QueryError{Kind: KindInternal, Stage: StageFetching, Message: msgUnreachable, Err: err}
	}

	qe := &QueryError{
		Stage:      StageFetching,
		StatusCode: statusErr.StatusCode,
		Body:       statusErr.Body,
		Err:        err,
	}

	switch {
	case statusErr.NotFound() && forecast:
		qe.Kind = KindNotFound
		qe.Message = fmt.Sprintf("Forecast not available for \"%s\".%s", city, statusErr.Body)
	case statusErr.NotFound():
		qe.Kind = KindNotFound
		qe.Message = fmt.Sprintf("City \"%s\" not found. %s", city, statusErr.Body)
	case forecast:
		qe.Kind = KindProviderError
		qe.Message = fmt.Sprintf("Forecast API error: %d %s", statusErr.StatusCode, statusErr.Body)
	default:
		qe.Kind = KindProviderError
		qe.Message = fmt.Sprintf("Weather API error: %d %s", statusErr.StatusCode, statusErr.Body)
	}

	return qe
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
