package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
)

// Kind identifies which stage a task runs.
type Kind int

const (
	KindAcquire Kind = iota
	KindTranscribe
	KindSummarize
)

func (k Kind) String() string {
	switch k {
	case KindAcquire:
		return "acquire"
	case KindTranscribe:
		return "transcribe"
	case KindSummarize:
		return "summarize"
	default:
		return "unknown"
	}
}

// State is the lifecycle position of a task. Transitions are forward only:
// Pending → Running → Succeeded | Failed | Cancelled. Terminal states are
// final; task handles are single-use.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// TaskFunc is the work a stage performs for one task. It must honor ctx
// cancellation at its blocking points and may report progress at any time
// before returning.
type TaskFunc func(ctx context.Context, progress func(string)) (interface{}, error)

// Events is the observer contract for one task: zero or more progress
// callbacks in emission order, then exactly one terminal callback, success
// or error, never both. After a cancel is acknowledged no terminal callback
// is delivered at all.
type Events struct {
	OnProgress func(string)
	OnSuccess  func(result interface{})
	OnError    func(message string)
}

type eventKind int

const (
	eventProgress eventKind = iota
	eventSuccess
	eventError
)

type event struct {
	kind    eventKind
	message string
	payload interface{}
}

// Handle represents one in-flight or completed task.
type Handle struct {
	kind   Kind
	state  atomic.Int32
	cancel context.CancelFunc

	events chan event
	done   chan struct{}

	mu          sync.Mutex
	progressLog []string
}

// Kind returns the task's stage kind.
func (h *Handle) Kind() Kind { return h.kind }

// State returns the current lifecycle state.
func (h *Handle) State() State { return State(h.state.Load()) }

// Done is closed once every event has been delivered and the task's slot is
// released.
func (h *Handle) Done() <-chan struct{} { return h.done }

// ProgressLog returns a copy of the append-only progress log.
func (h *Handle) ProgressLog() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.progressLog))
	copy(out, h.progressLog)
	return out
}

// Cancel requests cooperative cancellation. Only a Running task is affected;
// cancelling a Pending or terminal task is a no-op. Once acknowledged, the
// observer receives no further callbacks for this task.
func (h *Handle) Cancel() {
	if h.state.CompareAndSwap(int32(StateRunning), int32(StateCancelled)) {
		h.cancel()
	}
}

// transition moves Running to a terminal state, reporting whether the swap
// won (false when the task was cancelled first).
func (h *Handle) transition(to State) bool {
	return h.state.CompareAndSwap(int32(StateRunning), int32(to))
}

func (h *Handle) appendProgress(msg string) {
	h.mu.Lock()
	h.progressLog = append(h.progressLog, msg)
	h.mu.Unlock()
}
