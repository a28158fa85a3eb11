package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-voice/config"
	v1 "weather-voice/internal/controllers/http/v1"
	"weather-voice/internal/repositories"
	"weather-voice/internal/services/weather"
	"weather-voice/pkg/httpserver"
	"weather-voice/pkg/logger"
	"weather-voice/pkg/observe"
)

// @title Weather Voice API
// @version 1.0.0
// @description Answers weather questions about a city with a single natural-language sentence.
// @description Structured queries go to /api/weather, free-form utterances to /api/ask.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather questions and answers
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig(config.DefaultPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	hook := observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.SentryDSN, !cnf.IsProduction())
	if hook.Enabled() {
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, cnf.LogLevel, writers...)
	hook.SetLogger(l)

	loc, err := cnf.Location()
	if err != nil {
		l.Fatal("cannot load timezone", map[string]any{"timezone": cnf.Timezone, "err": err})
	}

	// Left nil without a key so every query answers as misconfigured.
	var repo repositories.WeatherRepository
	if cnf.HasOpenWeatherKey() {
		openWeather, err := repositories.NewOpenWeatherRepository(cnf.OpenWeather.BaseURL, cnf.OpenWeather.APIKey, l, nil)
		if err != nil {
			l.Fatal("cannot init weather repository", map[string]any{"err": err})
		}
		repo = openWeather
	} else {
		l.Warning("OPENWEATHER_API_KEY is not set, weather queries will fail")
	}

	app := httpserver.InitFiberServer(cnf.AppName, l)

	service := weather.NewWeatherService(repo, weather.NewSliceSelector(loc), l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Port,
		"version":  cnf.AppVersion,
		"timezone": loc.String(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		hook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
