// Package voice turns one spoken question into one spoken answer. Speech
// recognition and synthesis are supplied by the caller; the agent parses the
// transcript, asks the weather backend and speaks the result.
package voice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"weather-voice/internal/compose"
	"weather-voice/internal/integrations/functions"
	"weather-voice/internal/intent"
	"weather-voice/internal/models"
	"weather-voice/pkg/logger"
)

const (
	MsgCityNotHeard   = "I couldn't understand which city you're asking about. Please try again and mention a city name."
	MsgNotRecognized  = "Could not recognize speech. Please try again."
	MsgNotSupported   = "Speech recognition is not supported on this device."
	queryLogFunction  = "weather-query-log"
	notifyTitleError  = "Error"
	notifyTitleNotSup = "Not supported"
)

var (
	ErrNotSupported = errors.New("speech recognition is not supported")
	ErrBusy         = errors.New("agent is busy")
)

// Recognizer blocks until one final transcript is available or ctx is done.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// Synthesizer speaks text and returns when the utterance has finished.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Notifier shows a short out-of-band message to the user.
type Notifier interface {
	Notify(title, description string)
}

// Turn records one activation of the agent.
type Turn struct {
	SessionID  string
	Transcript string
	Utterance  models.Utterance
	Answer     string
}

type Agent struct {
	recognizer Recognizer
	synth      Synthesizer
	backend    Backend
	notifier   Notifier
	functions  functions.Client
	l          *logger.Logger

	mu      sync.Mutex
	state   State
	session uint64
	cancel  context.CancelFunc
}

func NewAgent(
	recognizer Recognizer,
	synth Synthesizer,
	backend Backend,
	notifier Notifier,
	fn functions.Client,
	l *logger.Logger,
) *Agent {
	if fn == nil {
		fn = functions.NewStubClient()
	}
	return &Agent{
		recognizer: recognizer,
		synth:      synth,
		backend:    backend,
		notifier:   notifier,
		functions:  fn,
		l:          l,
	}
}

func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Toggle stops the current recognition session if there is one, otherwise it
// starts a new one and blocks like Listen.
func (a *Agent) Toggle(ctx context.Context) (Turn, error) {
	if a.Stop() {
		return Turn{}, nil
	}
	return a.Listen(ctx)
}

// Stop ends an active recognition session. It reports whether one was active.
func (a *Agent) Stop() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateListening || a.cancel == nil {
		return false
	}
	a.cancel()
	a.cancel = nil
	a.state = StateIdle
	return true
}

// Listen runs one activation: recognize a single transcript, answer it and
// return to idle. A session ended by Stop returns an empty Turn and no error.
func (a *Agent) Listen(ctx context.Context) (Turn, error) {
	if a.recognizer == nil {
		a.notify(notifyTitleNotSup, MsgNotSupported)
		return Turn{}, ErrNotSupported
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	session, err := a.begin(cancel)
	if err != nil {
		return Turn{}, err
	}
	defer a.finish(session)

	turn := Turn{SessionID: uuid.NewString()}

	transcript, err := a.recognizer.Recognize(sessionCtx)
	if err != nil {
		if ctx.Err() != nil {
			return Turn{}, ctx.Err()
		}
		if sessionCtx.Err() != nil {
			a.l.Debug("recognition session stopped", map[string]any{"session": turn.SessionID})
			return Turn{}, nil
		}
		a.l.Error(err, map[string]any{"session": turn.SessionID})
		a.notify(notifyTitleError, MsgNotRecognized)
		return turn, errors.Wrap(err, "recognize speech")
	}

	if !a.claimSpeaking(session) {
		// Stopped between the transcript and the answer.
		return Turn{}, nil
	}

	turn.Transcript = transcript
	a.l.Info("user said", map[string]any{"session": turn.SessionID, "transcript": transcript})

	utterance, ok := intent.Parse(transcript)
	turn.Utterance = utterance
	if !ok {
		turn.Answer = MsgCityNotHeard
		return turn, a.speak(ctx, turn.Answer)
	}

	turn.Answer, err = a.answer(ctx, utterance)
	if err != nil {
		return turn, err
	}

	a.logQuery(ctx, turn)
	return turn, nil
}

func (a *Agent) answer(ctx context.Context, u models.Utterance) (string, error) {
	if err := a.speak(ctx, Acknowledgement(u)); err != nil {
		return "", err
	}

	timeIntent := u.TimeIntent
	if timeIntent == "" {
		timeIntent = models.TimeNow
	}

	reply, err := a.backend.Weather(ctx, models.WeatherRequest{
		City:       u.City,
		TimeIntent: string(timeIntent),
		Metric:     string(u.Metric),
	})

	var text string
	switch {
	case err != nil:
		a.l.Warning("weather lookup failed", map[string]any{"city": u.City, "error": err.Error()})
		text = SpokenError(err)
	case reply.Error != "":
		text = reply.Error
	case reply.Message != "":
		text = reply.Message
	default:
		text = fallbackAnswer(u, reply)
	}

	return text, a.speak(ctx, text)
}

// fallbackAnswer composes the sentence locally when the server sent no message.
func fallbackAnswer(u models.Utterance, reply Reply) string {
	metric := reply.Metric
	if metric == "" {
		metric = u.Metric
	}
	timeIntent := reply.TimeIntent
	if timeIntent == "" {
		timeIntent = u.TimeIntent
	}
	m := reply.NormalizedMeasurement
	if m.City == "" {
		m.City = u.City
	}
	return compose.Message(compose.Spoken, metric, timeIntent, m)
}

func (a *Agent) logQuery(ctx context.Context, turn Turn) {
	_, err := a.functions.Invoke(ctx, queryLogFunction, map[string]any{
		"sessionId":  turn.SessionID,
		"city":       turn.Utterance.City,
		"timeIntent": turn.Utterance.TimeIntent,
		"metric":     turn.Utterance.Metric,
		"answer":     turn.Answer,
	})
	switch {
	case err == nil:
	case errors.Is(err, functions.ErrNotConfigured):
		a.l.Debug("query log skipped", map[string]any{"session": turn.SessionID})
	default:
		a.l.Warning("query log failed", map[string]any{"session": turn.SessionID, "error": err.Error()})
	}
}

func (a *Agent) speak(ctx context.Context, text string) error {
	if err := a.synth.Speak(ctx, text); err != nil {
		return errors.Wrap(err, "speak")
	}
	return nil
}

func (a *Agent) notify(title, description string) {
	if a.notifier != nil {
		a.notifier.Notify(title, description)
	}
}

func (a *Agent) begin(cancel context.CancelFunc) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateIdle {
		return 0, ErrBusy
	}
	a.session++
	a.state = StateListening
	a.cancel = cancel
	return a.session, nil
}

func (a *Agent) claimSpeaking(session uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != session || a.state != StateListening {
		return false
	}
	a.state = StateSpeaking
	a.cancel = nil
	return true
}

// finish returns to idle unless a newer session has already started.
func (a *Agent) finish(session uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != session {
		return
	}
	a.state = StateIdle
	a.cancel = nil
}

// Acknowledgement is spoken while the backend is queried.
func Acknowledgement(u models.Utterance) string {
	subject := string(u.Metric)
	if u.Metric == models.MetricGeneral || u.Metric == "" {
		subject = "weather"
	}

	label := "right now"
	switch u.TimeIntent {
	case models.TimeTomorrow, models.TimeTonight, models.TimeYesterday:
		label = "for " + string(u.TimeIntent)
	}

	return fmt.Sprintf("Let me check the %s in %s %s...", subject, u.City, label)
}

var errorPrefix = regexp.MustCompile(`(?i)^Error:\s*`)

// SpokenError reduces err to a plain sentence: anything from the first "{"
// on is dropped, as is a leading "Error:".
func SpokenError(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "{"); i >= 0 {
		msg = msg[:i]
	}
	msg = strings.TrimSpace(msg)
	return strings.TrimSpace(errorPrefix.ReplaceAllString(msg, ""))
}
