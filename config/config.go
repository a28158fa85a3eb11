package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	AppName     string            `yaml:"app_name" envconfig:"APP_NAME"`
	AppVersion  string            `yaml:"app_version" envconfig:"APP_VERSION"`
	AppEnv      string            `yaml:"app_env" envconfig:"APP_ENV"`
	Port        string            `yaml:"port" envconfig:"PORT"`
	LogLevel    string            `yaml:"log_level" envconfig:"LOG_LEVEL"`
	SentryDSN   string            `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
	Timezone    string            `yaml:"timezone" envconfig:"TIMEZONE"`
	OpenWeather OpenWeatherConfig `yaml:"openweather" envconfig:"OPENWEATHER"`
}

type OpenWeatherConfig struct {
	APIKey  string `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
}

func defaults() Config {
	return Config{
		AppName:    "weather-voice",
		AppVersion: "1.0.0",
		AppEnv:     "development",
		Port:       "8080",
		LogLevel:   "info",
		Timezone:   "Local",
		OpenWeather: OpenWeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
		},
	}
}

// NewConfig layers defaults, the YAML file at path (optional), a .env file in
// the working directory (optional) and the process environment, in that order.
func NewConfig(path string) (*Config, error) {
	cnf := defaults()

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func (c *Config) Validate() error {
	if c.AppName == "" {
		return errors.New("app_name is required")
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone; empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) HasOpenWeatherKey() bool {
	return strings.TrimSpace(c.OpenWeather.APIKey) != ""
}
