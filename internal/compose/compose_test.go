package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weather-voice/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func mumbai() models.NormalizedMeasurement {
	return models.NormalizedMeasurement{
		City:        "Mumbai",
		Description: "light rain",
		Temperature: 30,
		FeelsLike:   33,
		Humidity:    intPtr(70),
		WindSpeed:   floatPtr(3.6),
		RainChance:  intPtr(100),
		RainVolume:  floatPtr(2.3),
	}
}

func TestTimeLabel(t *testing.T) {
	assert.Equal(t, "tomorrow", TimeLabel(models.TimeTomorrow))
	assert.Equal(t, "tonight", TimeLabel(models.TimeTonight))
	assert.Equal(t, "today", TimeLabel(models.TimeToday))
	assert.Equal(t, "right now", TimeLabel(models.TimeNow))
	assert.Equal(t, "right now", TimeLabel(""))
}

func TestMessage_Written(t *testing.T) {
	m := mumbai()

	tests := []struct {
		name   string
		metric models.Metric
		time   models.TimeIntent
		want   string
	}{
		{"temperature", models.MetricTemperature, models.TimeToday,
			"The temperature in Mumbai today is 30°C and it feels like 33°C."},
		{"rain", models.MetricRain, models.TimeNow,
			"In Mumbai right now, the chance of rain is 100% with about 2.3mm expected."},
		{"humidity", models.MetricHumidity, models.TimeTonight,
			"The humidity in Mumbai tonight is 70% with conditions light rain."},
		{"wind", models.MetricWind, models.TimeTomorrow,
			"The wind in Mumbai tomorrow is blowing at 3.6 m/s with light rain."},
		{"general", models.MetricGeneral, models.TimeNow,
			"The weather in Mumbai right now is light rain with a temperature of 30°C, feeling like 33°C."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(Written, tt.metric, tt.time, m))
		})
	}
}

func TestMessage_RainWithoutChance(t *testing.T) {
	m := mumbai()
	m.RainChance = nil
	m.Description = "clear sky"

	assert.Equal(t,
		"I couldn't find a rain forecast for Mumbai tomorrow, but current conditions are clear sky.",
		Message(Written, models.MetricRain, models.TimeTomorrow, m))
}

func TestMessage_RainZeroVolumeOmitted(t *testing.T) {
	m := mumbai()
	m.RainChance = intPtr(0)
	m.RainVolume = floatPtr(0)

	assert.Equal(t, "In Mumbai tonight, the chance of rain is 0%.",
		Message(Written, models.MetricRain, models.TimeTonight, m))
}

func TestMessage_MissingFields(t *testing.T) {
	m := mumbai()
	m.Humidity = nil
	m.WindSpeed = nil
	m.Description = ""

	assert.Equal(t,
		"I couldn't find humidity data for Mumbai right now, but conditions are the current conditions.",
		Message(Written, models.MetricHumidity, models.TimeNow, m))
	assert.Equal(t,
		"I couldn't find wind data for Mumbai right now, but conditions are the current conditions.",
		Message(Written, models.MetricWind, models.TimeNow, m))
}

func TestMessage_SpokenDiffersOnlyInUnits(t *testing.T) {
	m := mumbai()

	assert.Equal(t,
		"The wind in Mumbai right now is blowing at 3.6 meters per second with light rain.",
		Message(Spoken, models.MetricWind, models.TimeNow, m))
	assert.Equal(t,
		"In Mumbai right now, the chance of rain is 100 percent with about 2.3 millimeters expected.",
		Message(Spoken, models.MetricRain, models.TimeNow, m))
	assert.Equal(t,
		"The temperature in Mumbai right now is 30 degrees Celsius and it feels like 33 degrees Celsius.",
		Message(Spoken, models.MetricTemperature, models.TimeNow, m))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 22, Round(21.6))
	assert.Equal(t, 21, Round(21.4))
	assert.Equal(t, 22, Round(21.5))
	assert.Equal(t, -2, Round(-2.5))
	assert.Equal(t, 37, Round(0.37*100))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "2.3", Number(2.3))
	assert.Equal(t, "5", Number(5))
	assert.Equal(t, "3.09", Number(3.09))
}
