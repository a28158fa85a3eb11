package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "weather-voice/docs"
	"weather-voice/internal/services/weather"
	"weather-voice/pkg/logger"
)

type routes struct {
	service  *weather.WeatherService
	validate *validator.Validate
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	l *logger.Logger,
) {
	r := &routes{
		service:  weatherService,
		validate: newValidator(),
		l:        l,
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/weather", r.handleWeatherCall)
	api.Post("/ask", r.handleAskCall)
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
