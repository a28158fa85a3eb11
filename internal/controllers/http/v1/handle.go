package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-voice/internal/intent"
	"weather-voice/internal/metrics"
	"weather-voice/internal/models"
	"weather-voice/internal/services/weather"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgInternal     = "Internal server error"
	msgCityNotHeard = "I couldn't understand which city you're asking about. Please try again and mention a city name."
)

// GetWeather godoc
// @Summary Get weather for a city
// @Description Fetches current conditions (now, today) or the closest forecast slot (tomorrow, tonight) and answers with one sentence about the requested metric.
// @Description rainChance from current conditions is 100 when any rain is reported and null otherwise; it is not a probability.
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body models.WeatherRequest true "Weather query"
// @Success 200 {object} models.WeatherResult "Successful response"
// @Failure 400 {object} models.ErrorResponse "Missing city or past-dated query"
// @Failure 404 {object} models.ErrorResponse "City or forecast not found"
// @Failure 500 {object} models.ErrorResponse "Misconfiguration or provider failure"
// @Router /api/weather [post]
// @Example {curl} Example usage:
//
//	curl -X POST http://localhost:8080/api/weather -d '{"city":"Mumbai","metric":"rain"}'
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	var req models.WeatherRequest
	if err := r.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := r.service.Query(c.UserContext(), req.Query())
	if err != nil {
		return r.queryFailed(c, err)
	}

	return c.JSON(result)
}

// AskWeather godoc
// @Summary Ask about the weather in plain English
// @Description Extracts city, time and metric from the text, then runs the same query as /api/weather.
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body models.AskRequest true "Utterance"
// @Success 200 {object} models.AskResult "Successful response"
// @Failure 400 {object} models.ErrorResponse "No city found in the text"
// @Failure 404 {object} models.ErrorResponse "City or forecast not found"
// @Failure 500 {object} models.ErrorResponse "Misconfiguration or provider failure"
// @Router /api/ask [post]
func (r *routes) handleAskCall(c *fiber.Ctx) error {
	var req models.AskRequest
	if err := r.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	utterance, ok := intent.Parse(req.Text)
	metrics.ObserveUtterance(ok)
	r.l.Debug("parsed utterance", map[string]any{
		"text":       req.Text,
		"city":       utterance.City,
		"timeIntent": utterance.TimeIntent,
		"metric":     utterance.Metric,
	})
	if !ok {
		return badRequest(c, msgCityNotHeard)
	}

	result, err := r.service.Query(c.UserContext(), models.WeatherQuery{
		City:       utterance.City,
		TimeIntent: utterance.TimeIntent,
		Metric:     utterance.Metric,
	})
	if err != nil {
		return r.queryFailed(c, err)
	}

	return c.JSON(models.AskResult{
		WeatherResult: result,
		Utterance:     utterance,
	})
}

func (r *routes) parse(c *fiber.Ctx, out any) error {
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return errors.New(msgInvalidBody)
	}

	if err := r.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(validationMessage(verrs[0]))
		}
		return errors.New(msgInvalidBody)
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s%s parameter is required", strings.ToUpper(fe.Field()[:1]), fe.Field()[1:])
	case "oneof":
		return fmt.Sprintf("Invalid %s: must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}

func (r *routes) queryFailed(c *fiber.Ctx, err error) error {
	var qe *weather.QueryError
	if !errors.As(err, &qe) {
		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: msgInternal})
	}
	return c.Status(qe.Kind.HTTPStatus()).JSON(models.ErrorResponse{Error: qe.Message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: message})
}
