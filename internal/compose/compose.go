// Package compose renders a normalized measurement into one sentence. The
// backend and the voice client share it so both answer in the same shape.
package compose

import (
	"fmt"
	"math"
	"strconv"

	"weather-voice/internal/models"
)

// Units holds the wording used after each number.
type Units struct {
	Degrees     string
	Percent     string
	Millimeters string
	Speed       string
}

var (
	// Written is used for messages returned by the API.
	Written = Units{Degrees: "°C", Percent: "%", Millimeters: "mm", Speed: " m/s"}
	// Spoken is used when the voice client builds the sentence itself.
	Spoken = Units{Degrees: " degrees Celsius", Percent: " percent", Millimeters: " millimeters", Speed: " meters per second"}
)

const unknownConditions = "the current conditions"

// TimeLabel maps a time intent to the phrase used in answers.
func TimeLabel(t models.TimeIntent) string {
	switch t {
	case models.TimeTomorrow:
		return "tomorrow"
	case models.TimeTonight:
		return "tonight"
	case models.TimeToday:
		return "today"
	default:
		return "right now"
	}
}

// Message builds the answer for metric. m.City is used as the city name.
func Message(units Units, metric models.Metric, t models.TimeIntent, m models.NormalizedMeasurement) string {
	city := m.City
	label := TimeLabel(t)
	description := m.Description
	if description == "" {
		description = unknownConditions
	}

	switch metric {
	case models.MetricTemperature:
		return fmt.Sprintf("The temperature in %s %s is %d%s and it feels like %d%s.",
			city, label, m.Temperature, units.Degrees, m.FeelsLike, units.Degrees)

	case models.MetricRain:
		if m.RainChance == nil {
			return fmt.Sprintf("I couldn't find a rain forecast for %s %s, but current conditions are %s.",
				city, label, description)
		}
		volume := ""
		if m.RainVolume != nil && *m.RainVolume != 0 {
			volume = fmt.Sprintf(" with about %s%s expected", Number(*m.RainVolume), units.Millimeters)
		}
		return fmt.Sprintf("In %s %s, the chance of rain is %d%s%s.",
			city, label, *m.RainChance, units.Percent, volume)

	case models.MetricHumidity:
		if m.Humidity == nil {
			return missing("humidity", city, label, description)
		}
		return fmt.Sprintf("The humidity in %s %s is %d%s with conditions %s.",
			city, label, *m.Humidity, units.Percent, description)

	case models.MetricWind:
		if m.WindSpeed == nil {
			return missing("wind", city, label, description)
		}
		return fmt.Sprintf("The wind in %s %s is blowing at %s%s with %s.",
			city, label, Number(*m.WindSpeed), units.Speed, description)
	}

	return fmt.Sprintf("The weather in %s %s is %s with a temperature of %d%s, feeling like %d%s.",
		city, label, description, m.Temperature, units.Degrees, m.FeelsLike, units.Degrees)
}

func missing(what, city, label, description string) string {
	return fmt.Sprintf("I couldn't find %s data for %s %s, but conditions are %s.", what, city, label, description)
}

// Number formats v in its shortest decimal form: 2.3, 5, 3.09.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round rounds half up, so -2.5 becomes -2 and 21.5 becomes 22.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
