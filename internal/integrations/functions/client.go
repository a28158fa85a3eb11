// Package functions is the client for hosted auxiliary functions. No backend
// is wired yet, so the only implementation reports that it is not configured.
package functions

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotConfigured is returned by every call on StubClient.
var ErrNotConfigured = errors.New("functions backend is not configured")

// Client invokes a named remote function with a JSON body.
type Client interface {
	Invoke(ctx context.Context, name string, body any) (json.RawMessage, error)
}

type StubClient struct{}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (StubClient) Invoke(context.Context, string, any) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}
