// Package intent turns a free-form weather question into a structured query:
// the city, the time scope and the metric the user cares about.
package intent

import "weather-voice/internal/models"

// Parse classifies text. ok is false when no city could be isolated.
func Parse(text string) (u models.Utterance, ok bool) {
	u.Text = text
	u.Metric = MetricOf(text)
	u.TimeIntent, u.TimeDetected = TimeIntentOf(text)
	if !u.TimeDetected {
		u.TimeIntent = models.TimeNow
	}
	u.City, ok = ExtractCity(text)
	return u, ok
}
