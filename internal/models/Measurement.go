package models

// NormalizedMeasurement is the uniform representation of weather data
// regardless of which provider endpoint supplied it.
//
// RainChance from current conditions is a binary proxy: 100 when the provider
// reports any rain object, nil otherwise. It is not a probability.
type NormalizedMeasurement struct {
	City        string   `json:"city" example:"Mumbai"`
	Description string   `json:"description" example:"light rain"`
	Temperature int      `json:"temperature" example:"30"`
	FeelsLike   int      `json:"feelsLike" example:"33"`
	Humidity    *int     `json:"humidity" example:"70"`
	WindSpeed   *float64 `json:"windSpeed" example:"3.6"`
	RainChance  *int     `json:"rainChance" example:"100"`
	RainVolume  *float64 `json:"rainVolume" example:"2.3"`
}

// WeatherResult is the success payload returned to API consumers.
type WeatherResult struct {
	NormalizedMeasurement
	Metric     Metric     `json:"metric" example:"rain"`
	TimeIntent TimeIntent `json:"timeIntent" example:"now"`
	Message    string     `json:"message" example:"In Mumbai right now, the chance of rain is 100% with about 2.3mm expected."`
}

// AskResult is the success payload of POST /api/ask.
type AskResult struct {
	WeatherResult
	Utterance Utterance `json:"utterance"`
}

// Utterance is the structured intent extracted from free-form text.
type Utterance struct {
	Text       string     `json:"text"`
	City       string     `json:"city"`
	TimeIntent TimeIntent `json:"timeIntent"`
	Metric     Metric     `json:"metric"`
	// TimeDetected is false when no time word was found and TimeIntent holds the default.
	TimeDetected bool `json:"timeDetected"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"City parameter is required"`
}
