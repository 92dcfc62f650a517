package oracle

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCompleter struct {
	calls   int
	results []func() (string, error)
}

func (c *countingCompleter) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	r := c.results[c.calls]
	c.calls++
	return r()
}

func transportFailure() (string, error) {
	return "", &TransportError{Err: fmt.Errorf("dial tcp: connection refused")}
}

func semanticFailure() (string, error) {
	return "", fmt.Errorf("content blocked by safety filter")
}

func success() (string, error) {
	return "ok", nil
}

func TestRetryRecoversFromTransportFailures(t *testing.T) {
	c := &countingCompleter{results: []func() (string, error){
		transportFailure, transportFailure, success,
	}}

	out, err := WithRetry(c, 2).Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, c.calls)
}

func TestRetryExhaustsAndReturnsLastError(t *testing.T) {
	c := &countingCompleter{results: []func() (string, error){
		transportFailure, transportFailure, transportFailure,
	}}

	_, err := WithRetry(c, 2).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, 3, c.calls)
}

func TestRetryDoesNotRetrySemanticFailures(t *testing.T) {
	c := &countingCompleter{results: []func() (string, error){
		semanticFailure, success,
	}}

	_, err := WithRetry(c, 2).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, IsTransport(err))
	assert.Equal(t, 1, c.calls)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &countingCompleter{results: []func() (string, error){success}}
	_, err := WithRetry(c, 2).Complete(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.calls)
}

func TestIsTransportSeesWrappedErrors(t *testing.T) {
	inner := &TransportError{Err: fmt.Errorf("timeout")}
	wrapped := fmt.Errorf("oracle call: %w", inner)
	assert.True(t, IsTransport(wrapped))
	assert.False(t, IsTransport(fmt.Errorf("plain error")))
}
