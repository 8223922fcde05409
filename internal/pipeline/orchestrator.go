package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
)

// ErrBusy rejects a start when a task of the same kind is already running on
// this orchestrator. Different kinds run concurrently.
var ErrBusy = errors.New("a task of this kind is already running")

// Dispatch marshals event delivery onto the observer's execution context.
// The function must execute the callbacks it receives in submission order;
// a single-threaded UI loop queue satisfies that, as does direct invocation.
type Dispatch func(func())

// Orchestrator runs stage work as independent asynchronous tasks with a
// uniform progress/terminal event contract.
type Orchestrator struct {
	logger   logger.Logger
	dispatch Dispatch
	slots    map[Kind]*slot
}

// New creates an Orchestrator. dispatch may be nil, in which case events are
// delivered by direct invocation from the delivery goroutine.
func New(log logger.Logger, dispatch Dispatch) *Orchestrator {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Orchestrator{
		logger:   log,
		dispatch: dispatch,
		slots: map[Kind]*slot{
			KindAcquire:    newSlot(),
			KindTranscribe: newSlot(),
			KindSummarize:  newSlot(),
		},
	}
}

// Start dispatches fn on its own worker goroutine and returns immediately.
// Within one task, progress events are delivered in emission order and
// always precede the single terminal event.
func (o *Orchestrator) Start(ctx context.Context, kind Kind, fn TaskFunc, events Events) (*Handle, error) {
	s, ok := o.slots[kind]
	if !ok {
		return nil, fmt.Errorf("unknown task kind %d", kind)
	}
	if !s.tryAcquire() {
		return nil, fmt.Errorf("%s: %w", kind, ErrBusy)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		kind:   kind,
		cancel: cancel,
		events: make(chan event, 16),
		done:   make(chan struct{}),
	}
	h.state.Store(int32(StateRunning))

	o.logger.Info(ctx, "Task started: %s", kind)

	// Worker: runs the stage call, then enqueues at most one terminal event.
	go func() {
		defer close(h.events)

		progress := func(msg string) {
			if h.State() != StateRunning {
				return
			}
			h.appendProgress(msg)
			h.events <- event{kind: eventProgress, message: msg}
		}

		result, err := fn(taskCtx, progress)
		switch {
		case err == nil && h.transition(StateSucceeded):
			h.events <- event{kind: eventSuccess, payload: result}
		case err != nil && h.transition(StateFailed):
			h.events <- event{kind: eventError, message: err.Error()}
		default:
			// Cancelled while running: the late outcome is suppressed.
			o.logger.Debug(taskCtx, "Task %s finished after cancellation, outcome dropped", kind)
		}
	}()

	// Delivery: a single goroutine per task preserves emission order and
	// the exactly-once terminal guarantee.
	go func() {
		for ev := range h.events {
			if h.State() == StateCancelled {
				continue
			}
			switch ev.kind {
			case eventProgress:
				if events.OnProgress != nil {
					msg := ev.message
					o.dispatch(func() { events.OnProgress(msg) })
				}
			case eventSuccess:
				if events.OnSuccess != nil {
					payload := ev.payload
					o.dispatch(func() { events.OnSuccess(payload) })
				}
			case eventError:
				if events.OnError != nil {
					msg := ev.message
					o.dispatch(func() { events.OnError(msg) })
				}
			}
		}
		cancel()
		s.release()
		close(h.done)
		o.logger.Info(context.Background(), "Task finished: %s (%s)", kind, h.State())
	}()

	return h, nil
}
