// Package host implements the Component Host: the concurrency core that
// wraps a single component and drives exactly one execution of it,
// enforcing its timeout and classifying how it finished.
//
// Go offers no process-spawn primitive that preserves strong typing across
// the call the way Flowbber's multiprocessing.Process does, so each
// execution runs in its own goroutine behind a single-slot buffered
// channel. A panic inside the goroutine is recovered and treated as the
// child "crashing"; context cancellation plus a bounded grace wait stands
// in for process termination and the "killed"/"hanged" distinction.
package host

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

// gracePeriod is how long join waits after delivering a result, or after
// cancelling a body, before declaring it stuck.
const gracePeriod = 100 * time.Millisecond

var processCounter int64

// nextProcessID returns a monotonically increasing synthetic process id,
// standing in for a real OS pid since goroutines don't have one.
func nextProcessID() int {
	return int(atomic.AddInt64(&processCounter, 1))
}

// Body is the function a Host executes: the component's kind-specific verb,
// already bound to its config and arguments.
type Body func(ctx context.Context) (any, error)

// ExecutionInfo records how one component execution went.
type ExecutionInfo struct {
	ComponentID string
	Status      string // succeeded, crashed, killed, hanged, timed_out
	Duration    *time.Duration
	ProcessID   int
	ExitCode    *int
	Data        any
}

// Host wraps one component and drives its single execution.
type Host struct {
	ComponentID string
	Optional    bool
	Timeout     *time.Duration // nil means no timeout

	body      Body
	start     time.Time
	processID int
	resultCh  chan bodyResult
	doneCh    chan struct{}
	cancel    context.CancelFunc
}

type bodyResult struct {
	data any
	err  error
}

// New creates a Host for componentID wrapping body.
func New(componentID string, optional bool, timeout *time.Duration, body Body) *Host {
	return &Host{ComponentID: componentID, Optional: optional, Timeout: timeout, body: body}
}

// Start allocates a single-slot result channel, records the start time, and
// spawns the component body in its own goroutine.
func (h *Host) Start(ctx context.Context) {
	h.resultCh = make(chan bodyResult, 1)
	h.doneCh = make(chan struct{})
	h.start = time.Now()
	h.processID = nextProcessID()

	runCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	go func() {
		defer close(h.doneCh)
		defer func() {
			if r := recover(); r != nil {
				h.resultCh <- bodyResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		data, err := h.body(runCtx)
		h.resultCh <- bodyResult{data: data, err: err}
	}()
}

// Stop force-terminates the component body via context cancellation. Used
// when the pipeline is tearing down on a fatal stage failure.
func (h *Host) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

// Join waits for the result, enforcing the component's timeout, and
// classifies the outcome.
func (h *Host) Join() (ExecutionInfo, error) {
	var waitBudget time.Duration
	unbounded := h.Timeout == nil
	if !unbounded {
		elapsed := time.Since(h.start)
		waitBudget = *h.Timeout - elapsed
		if waitBudget < 0 {
			waitBudget = 0
		}
	}

	var timer *time.Timer
	var timeoutCh <-chan time.Time
	if !unbounded {
		timer = time.NewTimer(waitBudget)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case result := <-h.resultCh:
		h.awaitExit()
		return h.classifyResult(result)

	case <-timeoutCh:
		return h.classifyTimeout()
	}
}

// awaitExit waits briefly for the body goroutine to finish after it has
// already delivered a result, so ExitCode/observability is stable.
func (h *Host) awaitExit() {
	select {
	case <-h.doneCh:
	case <-time.After(gracePeriod):
	}
}

func (h *Host) classifyResult(result bodyResult) (ExecutionInfo, error) {
	duration := time.Since(h.start)

	if result.err != nil {
		info := ExecutionInfo{
			ComponentID: h.ComponentID,
			Status:      "crashed",
			Duration:    &duration,
			ProcessID:   h.processID,
			ExitCode:    intPtr(1),
		}
		return info, pwerrors.NewCrashError(h.ComponentID, "crashed", result.err)
	}

	if result.data == nil {
		info := ExecutionInfo{
			ComponentID: h.ComponentID,
			Status:      "crashed",
			Duration:    &duration,
			ProcessID:   h.processID,
			ExitCode:    intPtr(1),
		}
		return info, pwerrors.NewCrashError(h.ComponentID, "crashed", nil)
	}

	info := ExecutionInfo{
		ComponentID: h.ComponentID,
		Status:      "succeeded",
		Duration:    &duration,
		ProcessID:   h.processID,
		ExitCode:    intPtr(0),
		Data:        result.data,
	}
	return info, nil
}

func (h *Host) classifyTimeout() (ExecutionInfo, error) {
	select {
	case <-h.doneCh:
		// Body already exited without delivering a result: killed.
		info := ExecutionInfo{
			ComponentID: h.ComponentID,
			Status:      "killed",
			ProcessID:   h.processID,
		}
		return info, pwerrors.NewCrashError(h.ComponentID, "killed", nil)
	default:
	}

	h.Stop()
	select {
	case <-h.doneCh:
		duration := time.Since(h.start)
		info := ExecutionInfo{
			ComponentID: h.ComponentID,
			Status:      "timed_out",
			Duration:    &duration,
			ProcessID:   h.processID,
			ExitCode:    intPtr(1),
		}
		return info, pwerrors.NewTimeExceededError(h.ComponentID, "timed_out")
	case <-time.After(gracePeriod):
		info := ExecutionInfo{
			ComponentID: h.ComponentID,
			Status:      "hanged",
			ProcessID:   h.processID,
		}
		return info, pwerrors.NewTimeExceededError(h.ComponentID, "hanged")
	}
}

func intPtr(v int) *int { return &v }

// Less implements the sort-by-timeout ordering C4 uses to join
// shortest-timeout hosts first: a nil timeout sorts after any set timeout.
func Less(a, b *Host) bool {
	if a.Timeout == nil && b.Timeout == nil {
		return false
	}
	if a.Timeout == nil {
		return false
	}
	if b.Timeout == nil {
		return true
	}
	return *a.Timeout < *b.Timeout
}
