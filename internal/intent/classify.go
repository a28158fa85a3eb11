package intent

import (
	"regexp"
	"strings"

	"weather-voice/internal/models"
)

type timeRule struct {
	intent models.TimeIntent
	re     *regexp.Regexp
}

// Checked in order, first hit wins.
var timeRules = []timeRule{
	{models.TimeTomorrow, regexp.MustCompile(`\btomorrow\b`)},
	{models.TimeTonight, regexp.MustCompile(`\btonight\b`)},
	{models.TimeYesterday, regexp.MustCompile(`\byesterday\b`)},
	{models.TimeToday, regexp.MustCompile(`\btoday\b`)},
	{models.TimeNow, regexp.MustCompile(`\bnow\b|\bright now\b|\bcurrently\b`)},
}

type metricRule struct {
	metric models.Metric
	re     *regexp.Regexp
}

var metricRules = []metricRule{
	{models.MetricTemperature, regexp.MustCompile(`\b(?:temperature|temp|hot|cold)\b`)},
	{models.MetricRain, regexp.MustCompile(`\b(?:rain|raining|drizzle|storm|precipitation|umbrella)\b`)},
	{models.MetricHumidity, regexp.MustCompile(`\b(?:humidity|humid)\b`)},
	{models.MetricWind, regexp.MustCompile(`\b(?:wind|windy|breeze|gust)\b`)},
}

// TimeIntentOf returns the temporal intent named in text. The second return
// value is false when no time word is present; callers default to now.
func TimeIntentOf(text string) (models.TimeIntent, bool) {
	normalized := strings.ToLower(text)
	for _, rule := range timeRules {
		if rule.re.MatchString(normalized) {
			return rule.intent, true
		}
	}
	return "", false
}

// MetricOf returns the first metric whose keywords appear in text, or general.
func MetricOf(text string) models.Metric {
	normalized := strings.ToLower(text)
	for _, rule := range metricRules {
		if rule.re.MatchString(normalized) {
			return rule.metric
		}
	}
	return models.MetricGeneral
}
