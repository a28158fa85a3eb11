package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-voice/internal/models"
)

func fixedSelector(now time.Time) *SliceSelector {
	return &SliceSelector{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}
}

func sampleAt(day, hour int) models.ForecastSample {
	return models.ForecastSample{Dt: time.Date(2025, 7, day, hour, 0, 0, 0, time.UTC).Unix()}
}

func hourOf(s *models.ForecastSample) (int, int) {
	at := time.Unix(s.Dt, 0).UTC()
	return at.Day(), at.Hour()
}

var selectorNow = time.Date(2025, 7, 25, 10, 30, 45, 0, time.UTC)

func TestSliceSelector_Target(t *testing.T) {
	s := fixedSelector(selectorNow)

	assert.Equal(t, time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC), s.Target(models.TimeTomorrow))
	assert.Equal(t, time.Date(2025, 7, 25, 21, 0, 0, 0, time.UTC), s.Target(models.TimeTonight))
	assert.Equal(t, time.Date(2025, 7, 25, 10, 0, 0, 0, time.UTC), s.Target(models.TimeToday))
	assert.Equal(t, time.Date(2025, 7, 25, 10, 0, 0, 0, time.UTC), s.Target(models.TimeNow))
}

func TestSliceSelector_Target_MonthRollover(t *testing.T) {
	s := fixedSelector(time.Date(2025, 7, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC), s.Target(models.TimeTomorrow))
}

func TestSliceSelector_Target_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	s := &SliceSelector{
		Location: ist,
		// 20:00 UTC is already 01:30 of the next day in IST
		Now: func() time.Time { return time.Date(2025, 7, 25, 20, 0, 0, 0, time.UTC) },
	}

	assert.True(t, time.Date(2025, 7, 27, 12, 0, 0, 0, ist).Equal(s.Target(models.TimeTomorrow)))
}

func threeHourly() []models.ForecastSample {
	var list []models.ForecastSample
	for day := 25; day <= 27; day++ {
		for hour := 0; hour < 24; hour += 3 {
			if day == 25 && hour < 9 {
				continue
			}
			list = append(list, sampleAt(day, hour))
		}
	}
	return list
}

func TestSliceSelector_Select(t *testing.T) {
	s := fixedSelector(selectorNow)
	list := threeHourly()

	tests := []struct {
		intent   models.TimeIntent
		wantDay  int
		wantHour int
	}{
		{models.TimeTomorrow, 26, 12},
		{models.TimeTonight, 25, 21},
		{models.TimeToday, 25, 9},
		{models.TimeNow, 25, 9},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			got := s.Select(list, tt.intent)
			require.NotNil(t, got)
			day, hour := hourOf(got)
			assert.Equal(t, tt.wantDay, day)
			assert.Equal(t, tt.wantHour, hour)
		})
	}
}

func TestSliceSelector_TonightKeepsEveningSlots(t *testing.T) {
	s := fixedSelector(time.Date(2025, 7, 25, 23, 10, 0, 0, time.UTC))
	// Both are three hours from 21:00; only the second one is tonight.
	list := []models.ForecastSample{sampleAt(26, 0), sampleAt(25, 18)}

	got := s.Select(list, models.TimeTonight)
	require.NotNil(t, got)
	assert.Equal(t, list[1].Dt, got.Dt)
}

func TestSliceSelector_EmptyWindowFallsBackToFullList(t *testing.T) {
	s := fixedSelector(selectorNow)

	// nothing on the 25th after 18:00
	list := []models.ForecastSample{sampleAt(25, 12), sampleAt(25, 15), sampleAt(26, 0), sampleAt(26, 3)}
	got := s.Select(list, models.TimeTonight)
	require.NotNil(t, got)
	day, hour := hourOf(got)
	assert.Equal(t, 26, day)
	assert.Equal(t, 0, hour)

	// nothing tomorrow at all
	list = []models.ForecastSample{sampleAt(25, 12), sampleAt(25, 15), sampleAt(25, 18)}
	got = s.Select(list, models.TimeTomorrow)
	require.NotNil(t, got)
	day, hour = hourOf(got)
	assert.Equal(t, 25, day)
	assert.Equal(t, 18, hour)
}

func TestSliceSelector_TieKeepsFirstSeen(t *testing.T) {
	s := fixedSelector(selectorNow)

	list := []models.ForecastSample{sampleAt(25, 9), sampleAt(25, 11)}
	got := s.Select(list, models.TimeNow)
	require.NotNil(t, got)
	assert.Equal(t, list[0].Dt, got.Dt)

	list = []models.ForecastSample{sampleAt(25, 11), sampleAt(25, 9)}
	got = s.Select(list, models.TimeNow)
	require.NotNil(t, got)
	assert.Equal(t, list[0].Dt, got.Dt)
}

func TestSliceSelector_EmptyList(t *testing.T) {
	s := fixedSelector(selectorNow)
	assert.Nil(t, s.Select(nil, models.TimeTomorrow))
	assert.Nil(t, s.Select([]models.ForecastSample{}, models.TimeNow))
}

func TestSliceSelector_ReturnsElementOfInput(t *testing.T) {
	s := fixedSelector(selectorNow)
	list := threeHourly()

	got := s.Select(list, models.TimeTomorrow)
	require.NotNil(t, got)
	got.Dt = 0
	for _, sample := range list {
		if sample.Dt == 0 {
			return
		}
	}
	t.Fatal("expected Select to return a pointer into the input slice")
}
