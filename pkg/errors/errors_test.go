package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissingOptionsErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewMissingOptionsError("git", []string{"path", "remote"})
	require.ErrorContains(t, err, `component "git"`)
	require.ErrorContains(t, err, "path, remote")
}

func TestUnknownOptionsErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewUnknownOptionsError("archive", []string{"oops"})
	require.ErrorContains(t, err, "unknown configuration options oops")
}

func TestCrashErrorUnwraps(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("index out of range")
	err := NewCrashError("bad", "crashed", underlying)

	require.ErrorContains(t, err, `component "bad" crashed`)
	require.True(t, errors.Is(err, underlying) || errors.Unwrap(err) == underlying)
}

func TestStageAbortedErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := NewCrashError("bad", "crashed", nil)
	err := NewStageAbortedError("sources", cause)

	require.ErrorContains(t, err, "sources stage aborted")
	require.Equal(t, cause, errors.Unwrap(err))
}

func TestSchedulerStopOnFailureErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("boom")
	err := NewSchedulerStopOnFailureError(cause)

	require.ErrorContains(t, err, "scheduler stopped")
	require.Equal(t, cause, errors.Unwrap(err))
}
