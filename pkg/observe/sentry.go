package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"weather-voice/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer for the zap logger that forwards error and
// fatal entries to Sentry.
type SentryHook struct {
	appEnv  string
	appName string
	capture func(*sentry.Event) *sentry.EventID
	l       *logger.Logger
}

type logEntry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppEnv     string `json:"app_env"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func NewSentryHook(appEnv, appName, dsn string, isDebug bool) *SentryHook {
	if dsn == "" {
		log.Println("sentry hook: no DSN, events will be dropped")
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	}); err != nil {
		log.Println("sentry hook: init error:", err.Error())
	}

	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
		capture: sentry.CaptureEvent,
	}
}

// Enabled reports whether entries are forwarded in this environment.
func (h *SentryHook) Enabled() bool {
	return h.appEnv == "production" || h.appEnv == "staging"
}

func (h *SentryHook) Write(p []byte) (n int, err error) {
	if !h.Enabled() {
		return len(p), nil
	}

	var entry logEntry
	if err := json.Unmarshal(p, &entry); err != nil {
		h.report(errors.Wrap(err, "[SentryHook] json.Unmarshal data"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil {
		h.report(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}

	if level >= zapcore.ErrorLevel && entry.Message != "" {
		h.capture(h.event(level, entry))
	}

	return len(p), nil
}

func (h *SentryHook) event(level zapcore.Level, entry logEntry) *sentry.Event {
	timestamp, err := time.Parse(logger.TimestampLayout, entry.Timestamp)
	if err != nil {
		timestamp = time.Now()
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.Level = mapLevel(level)
	event.Timestamp = timestamp
	event.Message = entry.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = entry.Error
	event.Extra["CallerFile"] = entry.CallerFile
	event.Extra["CallerLine"] = entry.CallerLine
	event.Extra["CallerFunc"] = entry.CallerFunc
	event.Extra["Stack"] = entry.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       entry.Message,
		Value:      entry.Error,
		Stacktrace: sentry.NewStacktrace(),
	})
	return event
}

// report must not log through h.l at error level: that would loop back here.
func (h *SentryHook) report(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

func (h *SentryHook) SetLogger(l *logger.Logger) {
	if l != nil {
		h.l = l
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}
