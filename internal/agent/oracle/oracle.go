package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Completer is the reasoning oracle contract consumed by the engine's
// PLANNING, SELECTING, ANALYZING and SYNTHESIZING states. Implementations
// return free-form text; they never interpret content. A structurally
// valid-but-wrong answer is accepted and handled by the call site's own
// extraction fallback.
type Completer interface {
	Complete(ctx context.Context, msgs []*schema.Message) (string, error)
}

// TransportError marks a network/auth failure talking to the oracle.
// These are the only failures worth retrying; semantic failures are not.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("oracle transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// WithRetry wraps a Completer with deterministic, transport-only retries.
// maxRetries counts additional attempts after the first call.
func WithRetry(next Completer, maxRetries int) Completer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &retryCompleter{next: next, maxRetries: maxRetries}
}

type retryCompleter struct {
	next       Completer
	maxRetries int
}

func (r *retryCompleter) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		out, err := r.next.Complete(ctx, msgs)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsTransport(err) {
			break
		}
	}
	return "", lastErr
}
