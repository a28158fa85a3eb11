package weather

import (
	"weather-voice/internal/compose"
	"weather-voice/internal/models"
)

// currentRainChance is reported when current conditions carry any rain
// object. The current endpoint has no probability field, so this is a proxy.
const currentRainChance = 100

// NormalizeCurrent maps a current conditions payload. city is the name used
// in the result.
func NormalizeCurrent(city string, c models.CurrentConditions) (models.NormalizedMeasurement, error) {
	m, err := normalizeCommon(city, c.Main, c.Wind, c.Weather)
	if err != nil {
		return m, err
	}

	if c.Rain != nil {
		chance := currentRainChance
		m.RainChance = &chance
		m.RainVolume = firstPresent(c.Rain.OneHour, c.Rain.ThreeHour)
	}

	return m, nil
}

// NormalizeForecast maps one forecast sample.
func NormalizeForecast(city string, s models.ForecastSample) (models.NormalizedMeasurement, error) {
	m, err := normalizeCommon(city, s.Main, s.Wind, s.Weather)
	if err != nil {
		return m, err
	}

	if s.Pop != nil {
		chance := compose.Round(*s.Pop * 100)
		m.RainChance = &chance
	}
	if s.Rain != nil {
		m.RainVolume = firstPresent(s.Rain.ThreeHour, s.Rain.OneHour)
	}

	return m, nil
}

func normalizeCommon(city string, main *models.MainReadings, wind *models.WindReadings, conditions []models.Condition) (models.NormalizedMeasurement, error) {
	if main == nil || main.Temp == nil || main.FeelsLike == nil {
		return models.NormalizedMeasurement{}, newError(KindInternal, StageNormalizing, msgMalformedReply)
	}

	m := models.NormalizedMeasurement{
		City:        city,
		Temperature: compose.Round(*main.Temp),
		FeelsLike:   compose.Round(*main.FeelsLike),
		Humidity:    main.Humidity,
	}
	if wind != nil {
		m.WindSpeed = wind.Speed
	}
	if len(conditions) > 0 {
		m.Description = conditions[0].Description
	}

	return m, nil
}

func firstPresent(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
