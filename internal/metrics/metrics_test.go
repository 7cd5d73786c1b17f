package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Serve(ctx, "127.0.0.1:0")
	}()

	// Serve binds an ephemeral address here only to exercise the shutdown
	// path; the /metrics endpoint itself is never dialed.
	RunsTotal.WithLabelValues("demo", "passed").Inc()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}

func TestServeReturnsErrorOnInvalidAddress(t *testing.T) {
	t.Parallel()

	err := Serve(context.Background(), "not-a-valid-address")
	require.Error(t, err)
}
