package voice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-voice/internal/integrations/functions"
	"weather-voice/internal/models"
	"weather-voice/pkg/logger"
)

type scriptedRecognizer struct {
	transcript string
	err        error
	block      bool
}

func (r *scriptedRecognizer) Recognize(ctx context.Context) (string, error) {
	if r.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.transcript, r.err
}

type recordingSynth struct {
	mu      sync.Mutex
	spoken  []string
	release chan struct{}
}

func (s *recordingSynth) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	return nil
}

func (s *recordingSynth) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type fakeBackend struct {
	reply    Reply
	err      error
	requests []models.WeatherRequest
}

func (b *fakeBackend) Weather(_ context.Context, req models.WeatherRequest) (Reply, error) {
	b.requests = append(b.requests, req)
	return b.reply, b.err
}

type recordingNotifier struct {
	titles       []string
	descriptions []string
}

func (n *recordingNotifier) Notify(title, description string) {
	n.titles = append(n.titles, title)
	n.descriptions = append(n.descriptions, description)
}

type countingFunctions struct {
	names []string
}

func (f *countingFunctions) Invoke(_ context.Context, name string, _ any) (json.RawMessage, error) {
	f.names = append(f.names, name)
	return nil, functions.ErrNotConfigured
}

func TestAgent_Listen_AnswersWithServerMessage(t *testing.T) {
	synth := &recordingSynth{}
	backend := &fakeBackend{reply: Reply{WeatherResult: models.WeatherResult{Message: "In Mumbai tonight, the chance of rain is 80%."}}}
	fn := &countingFunctions{}
	agent := NewAgent(&scriptedRecognizer{transcript: "Will it rain in Mumbai tonight?"}, synth, backend, nil, fn, logger.NewNop())

	turn, err := agent.Listen(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, "mumbai", turn.Utterance.City)
	assert.Equal(t, []string{
		"Let me check the rain in mumbai for tonight...",
		"In Mumbai tonight, the chance of rain is 80%.",
	}, synth.Spoken())
	assert.Equal(t, []models.WeatherRequest{{City: "mumbai", TimeIntent: "tonight", Metric: "rain"}}, backend.requests)
	assert.Equal(t, []string{"weather-query-log"}, fn.names)
	assert.Equal(t, StateIdle, agent.State())
}

func TestAgent_Listen_DefaultsToNow(t *testing.T) {
	synth := &recordingSynth{}
	backend := &fakeBackend{reply: Reply{WeatherResult: models.WeatherResult{Message: "ok"}}}
	agent := NewAgent(&scriptedRecognizer{transcript: "weather in Paris"}, synth, backend, nil, nil, logger.NewNop())

	_, err := agent.Listen(context.Background())
	require.NoError(t, err)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, "now", backend.requests[0].TimeIntent)
	assert.Equal(t, "general", backend.requests[0].Metric)
	assert.Equal(t, "Let me check the weather in paris right now...", synth.Spoken()[0])
}

func TestAgent_Listen_NoCity(t *testing.T) {
	synth := &recordingSynth{}
	backend := &fakeBackend{}
	fn := &countingFunctions{}
	agent := NewAgent(&scriptedRecognizer{transcript: "tell me about the weather"}, synth, backend, nil, fn, logger.NewNop())

	turn, err := agent.Listen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MsgCityNotHeard, turn.Answer)
	assert.Equal(t, []string{MsgCityNotHeard}, synth.Spoken())
	assert.Empty(t, backend.requests)
	assert.Empty(t, fn.names)
}

func TestAgent_Listen_SpeaksFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		want    string
	}{
		{
			name:    "backend error with payload",
			backend: &fakeBackend{err: errors.New(`Weather API error: 500 {"cod":500}`)},
			want:    "Weather API error: 500",
		},
		{
			name:    "error prefix",
			backend: &fakeBackend{err: errors.New("Error: Failed to fetch weather.")},
			want:    "Failed to fetch weather.",
		},
		{
			name:    "error field in reply",
			backend: &fakeBackend{reply: Reply{Error: "Sorry, I cannot fetch weather for the past."}},
			want:    "Sorry, I cannot fetch weather for the past.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synth := &recordingSynth{}
			agent := NewAgent(&scriptedRecognizer{transcript: "weather in Paris"}, synth, tt.backend, nil, nil, logger.NewNop())

			turn, err := agent.Listen(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.want, turn.Answer)
			assert.Equal(t, tt.want, synth.Spoken()[1])
		})
	}
}

func TestAgent_Listen_ComposesFallback(t *testing.T) {
	humidity := 70
	synth := &recordingSynth{}
	backend := &fakeBackend{reply: Reply{WeatherResult: models.WeatherResult{
		NormalizedMeasurement: models.NormalizedMeasurement{City: "Oslo", Description: "mist", Humidity: &humidity},
		Metric:                models.MetricHumidity,
		TimeIntent:            models.TimeNow,
	}}}
	agent := NewAgent(&scriptedRecognizer{transcript: "how humid is it in Oslo"}, synth, backend, nil, nil, logger.NewNop())

	turn, err := agent.Listen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "The humidity in Oslo right now is 70 percent with conditions mist.", turn.Answer)
}

func TestAgent_Listen_NotSupported(t *testing.T) {
	notifier := &recordingNotifier{}
	agent := NewAgent(nil, &recordingSynth{}, &fakeBackend{}, notifier, nil, logger.NewNop())

	_, err := agent.Listen(context.Background())

	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Equal(t, []string{MsgNotSupported}, notifier.descriptions)
}

func TestAgent_Listen_RecognitionError(t *testing.T) {
	notifier := &recordingNotifier{}
	synth := &recordingSynth{}
	agent := NewAgent(&scriptedRecognizer{err: errors.New("no-speech")}, synth, &fakeBackend{}, notifier, nil, logger.NewNop())

	_, err := agent.Listen(context.Background())

	assert.ErrorContains(t, err, "no-speech")
	assert.Equal(t, []string{MsgNotRecognized}, notifier.descriptions)
	assert.Empty(t, synth.Spoken())
	assert.Equal(t, StateIdle, agent.State())
}

func TestAgent_Toggle_StopsListening(t *testing.T) {
	agent := NewAgent(&scriptedRecognizer{block: true}, &recordingSynth{}, &fakeBackend{}, nil, nil, logger.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := agent.Listen(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return agent.State() == StateListening }, time.Second, time.Millisecond)

	turn, err := agent.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Turn{}, turn)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listen did not return after toggle")
	}
	assert.Equal(t, StateIdle, agent.State())
}

func TestAgent_IgnoresInputWhileSpeaking(t *testing.T) {
	synth := &recordingSynth{release: make(chan struct{})}
	backend := &fakeBackend{reply: Reply{WeatherResult: models.WeatherResult{Message: "ok"}}}
	agent := NewAgent(&scriptedRecognizer{transcript: "weather in Paris"}, synth, backend, nil, nil, logger.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := agent.Listen(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return agent.State() == StateSpeaking }, time.Second, time.Millisecond)

	_, err := agent.Listen(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	_, err = agent.Toggle(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(synth.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, agent.State())
}

func TestAcknowledgement(t *testing.T) {
	tests := []struct {
		utterance models.Utterance
		want      string
	}{
		{models.Utterance{City: "paris", TimeIntent: models.TimeTomorrow, Metric: models.MetricWind}, "Let me check the wind in paris for tomorrow..."},
		{models.Utterance{City: "paris", TimeIntent: models.TimeYesterday, Metric: models.MetricGeneral}, "Let me check the weather in paris for yesterday..."},
		{models.Utterance{City: "paris", TimeIntent: models.TimeToday, Metric: models.MetricTemperature}, "Let me check the temperature in paris right now..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Acknowledgement(tt.utterance))
	}
}

func TestSpokenError(t *testing.T) {
	tests := map[string]string{
		`City "Atlantis" not found. {"cod":"404","message":"city not found"}`: `City "Atlantis" not found.`,
		"error:   Failed to fetch weather.":                                   "Failed to fetch weather.",
		"  Something broke  ":                                                 "Something broke",
	}

	for in, want := range tests {
		assert.Equal(t, want, SpokenError(errors.New(in)))
	}
}
