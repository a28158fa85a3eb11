package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kelseyhightower/envconfig"

	"weather-voice/internal/integrations/functions"
	"weather-voice/internal/voice"
	"weather-voice/pkg/logger"
)

type cliConfig struct {
	BackendURL string `envconfig:"VOICE_BACKEND_URL" default:"http://localhost:8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"warn"`
}

// lineRecognizer treats every non-empty stdin line as a final transcript.
type lineRecognizer struct {
	lines <-chan string
}

func newLineRecognizer(r io.Reader, onEOF context.CancelFunc) *lineRecognizer {
	lines := make(chan string)
	go func() {
		defer onEOF()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				lines <- line
			}
		}
	}()
	return &lineRecognizer{lines: lines}
}

func (r *lineRecognizer) Recognize(ctx context.Context) (string, error) {
	select {
	case line := <-r.lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type consoleSynthesizer struct {
	w io.Writer
}

func (s consoleSynthesizer) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintf(s.w, "agent> %s\n", text)
	return err
}

type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Notify(title, description string) {
	fmt.Fprintf(n.w, "[%s] %s\n", title, description)
}

func main() {
	var cnf cliConfig
	if err := envconfig.Process("", &cnf); err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := logger.NewZapLogger("weather-voice-cli", "cli", cnf.LogLevel, os.Stderr)
	defer func() { _ = l.Stop() }()

	agent := voice.NewAgent(
		newLineRecognizer(os.Stdin, stop),
		consoleSynthesizer{w: os.Stdout},
		voice.NewHTTPBackend(cnf.BackendURL, nil),
		consoleNotifier{w: os.Stderr},
		functions.NewStubClient(),
		l,
	)

	fmt.Println("Ask about the weather, e.g. \"will it rain in Mumbai tonight?\" (Ctrl-D to quit)")
	for {
		_, err := agent.Listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil && !errors.Is(err, voice.ErrBusy) {
			l.Error(err)
		}
	}
}
