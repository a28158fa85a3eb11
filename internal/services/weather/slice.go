package weather

import (
	"time"

	"weather-voice/internal/models"
)

const (
	tomorrowTargetHour = 12
	tonightTargetHour  = 21
	eveningStartHour   = 18
)

// SliceSelector picks the forecast sample closest to the instant a time
// intent refers to. Times are interpreted in Location.
type SliceSelector struct {
	Location *time.Location
	Now      func() time.Time
}

func NewSliceSelector(loc *time.Location) *SliceSelector {
	if loc == nil {
		loc = time.Local
	}
	return &SliceSelector{Location: loc, Now: time.Now}
}

// Target returns the instant intent aims at: tomorrow at noon, tonight at
// 21:00, otherwise the start of the current hour.
func (s *SliceSelector) Target(intent models.TimeIntent) time.Time {
	now := s.Now().In(s.Location)
	y, m, d := now.Date()

	switch intent {
	case models.TimeTomorrow:
		return time.Date(y, m, d+1, tomorrowTargetHour, 0, 0, 0, s.Location)
	case models.TimeTonight:
		return time.Date(y, m, d, tonightTargetHour, 0, 0, 0, s.Location)
	default:
		return time.Date(y, m, d, now.Hour(), 0, 0, 0, s.Location)
	}
}

// Select returns the sample closest to Target(intent). Samples on the wrong
// day (or before 18:00 for tonight) are skipped unless that leaves nothing,
// in which case the whole list is searched. Ties keep the earlier sample.
// It returns nil only for an empty list.
func (s *SliceSelector) Select(list []models.ForecastSample, intent models.TimeIntent) *models.ForecastSample {
	if len(list) == 0 {
		return nil
	}

	target := s.Target(intent)

	candidates := make([]int, 0, len(list))
	for i := range list {
		if s.keep(list[i], intent, target) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := range list {
			candidates = append(candidates, i)
		}
	}

	best := -1
	var bestDiff time.Duration
	for _, i := range candidates {
		diff := absDuration(s.sampleTime(list[i]).Sub(target))
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}

	return &list[best]
}

func (s *SliceSelector) keep(sample models.ForecastSample, intent models.TimeIntent, target time.Time) bool {
	at := s.sampleTime(sample)

	switch intent {
	case models.TimeTomorrow, models.TimeToday:
		return sameDay(at, target)
	case models.TimeTonight:
		return sameDay(at, target) && at.Hour() >= eveningStartHour
	default:
		return true
	}
}

func (s *SliceSelector) sampleTime(sample models.ForecastSample) time.Time {
	return time.Unix(sample.Dt, 0).In(s.Location)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
