package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
)

// recorder collects delivered events with their relative order.
type recorder struct {
	mu       sync.Mutex
	sequence []string
	success  interface{}
	errorMsg string
}

func (r *recorder) events() Events {
	return Events{
		OnProgress: func(msg string) {
			r.mu.Lock()
			r.sequence = append(r.sequence, "progress:"+msg)
			r.mu.Unlock()
		},
		OnSuccess: func(result interface{}) {
			r.mu.Lock()
			r.sequence = append(r.sequence, "success")
			r.success = result
			r.mu.Unlock()
		},
		OnError: func(msg string) {
			r.mu.Lock()
			r.sequence = append(r.sequence, "error")
			r.errorMsg = msg
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sequence))
	copy(out, r.sequence)
	return out
}

func newOrch() *Orchestrator {
	return New(logger.New("error"), nil)
}

func TestStartSuccess(t *testing.T) {
	orch := newOrch()
	rec := &recorder{}

	h, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		progress("step one")
		progress("step two")
		return "payload", nil
	}, rec.events())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	<-h.Done()

	seq := rec.snapshot()
	want := []string{"progress:step one", "progress:step two", "success"}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i, w := range want {
		if seq[i] != w {
			t.Errorf("sequence[%d] = %q, want %q", i, seq[i], w)
		}
	}
	if rec.success != "payload" {
		t.Errorf("success payload = %v", rec.success)
	}
	if h.State() != StateSucceeded {
		t.Errorf("state = %v, want succeeded", h.State())
	}
	if got := h.ProgressLog(); len(got) != 2 || got[0] != "step one" {
		t.Errorf("progress log = %v", got)
	}
}

func TestStartFailure(t *testing.T) {
	orch := newOrch()
	rec := &recorder{}

	h, err := orch.Start(context.Background(), KindTranscribe, func(ctx context.Context, progress func(string)) (interface{}, error) {
		return nil, fmt.Errorf("engine exploded")
	}, rec.events())
	if err != nil {
		t.Fatal(err)
	}
	<-h.Done()

	seq := rec.snapshot()
	if len(seq) != 1 || seq[0] != "error" {
		t.Fatalf("sequence = %v, want a single error event", seq)
	}
	if rec.errorMsg != "engine exploded" {
		t.Errorf("error message = %q", rec.errorMsg)
	}
	if h.State() != StateFailed {
		t.Errorf("state = %v, want failed", h.State())
	}
}

func TestBusySameKind(t *testing.T) {
	orch := newOrch()
	release := make(chan struct{})

	h, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		<-release
		return nil, nil
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		return nil, nil
	}, Events{})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("second same-kind start err = %v, want ErrBusy", err)
	}

	close(release)
	<-h.Done()

	// After the first task finishes, the kind is free again.
	h2, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		return nil, nil
	}, Events{})
	if err != nil {
		t.Fatalf("start after completion err = %v", err)
	}
	<-h2.Done()
}

func TestDifferentKindsRunConcurrently(t *testing.T) {
	orch := newOrch()
	var handles []*Handle
	barrier := make(chan struct{})

	for _, kind := range []Kind{KindAcquire, KindTranscribe, KindSummarize} {
		h, err := orch.Start(context.Background(), kind, func(ctx context.Context, progress func(string)) (interface{}, error) {
			<-barrier
			return nil, nil
		}, Events{})
		if err != nil {
			t.Fatalf("Start(%v) err = %v, kinds must be independent", kind, err)
		}
		handles = append(handles, h)
	}

	close(barrier)
	for _, h := range handles {
		<-h.Done()
	}
}

func TestCancelSuppressesLateOutcome(t *testing.T) {
	orch := newOrch()
	rec := &recorder{}
	started := make(chan struct{})

	h, err := orch.Start(context.Background(), KindSummarize, func(ctx context.Context, progress func(string)) (interface{}, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}, rec.events())
	if err != nil {
		t.Fatal(err)
	}

	<-started
	h.Cancel()
	<-h.Done()

	if h.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", h.State())
	}
	for _, ev := range rec.snapshot() {
		if ev == "success" || ev == "error" {
			t.Errorf("cancelled task delivered terminal event %q", ev)
		}
	}
}

func TestCancelTerminalIsNoOp(t *testing.T) {
	orch := newOrch()
	h, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		return "ok", nil
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}
	<-h.Done()

	h.Cancel()
	if h.State() != StateSucceeded {
		t.Errorf("cancel after terminal changed state to %v", h.State())
	}
}

func TestExactlyOneTerminalEvent(t *testing.T) {
	orch := newOrch()

	for i := 0; i < 20; i++ {
		rec := &recorder{}
		h, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
			progress("p")
			return i, nil
		}, rec.events())
		if err != nil {
			t.Fatal(err)
		}
		<-h.Done()

		var terminals int
		for _, ev := range rec.snapshot() {
			if ev == "success" || ev == "error" {
				terminals++
			}
		}
		if terminals != 1 {
			t.Fatalf("run %d delivered %d terminal events", i, terminals)
		}
	}
}

func TestDispatchMarshalsEvents(t *testing.T) {
	// A serializing dispatch standing in for a UI event loop.
	queue := make(chan func(), 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range queue {
			f()
		}
	}()

	orch := New(logger.New("error"), func(f func()) { queue <- f })
	rec := &recorder{}

	h, err := orch.Start(context.Background(), KindTranscribe, func(ctx context.Context, progress func(string)) (interface{}, error) {
		progress("a")
		progress("b")
		return "r", nil
	}, rec.events())
	if err != nil {
		t.Fatal(err)
	}
	<-h.Done()

	close(queue)
	wg.Wait()

	seq := rec.snapshot()
	want := []string{"progress:a", "progress:b", "success"}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i, w := range want {
		if seq[i] != w {
			t.Errorf("sequence[%d] = %q, want %q (order must survive marshaling)", i, seq[i], w)
		}
	}
}

func TestStartReturnsImmediately(t *testing.T) {
	orch := newOrch()
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	h, err := orch.Start(context.Background(), KindAcquire, func(ctx context.Context, progress func(string)) (interface{}, error) {
		<-release
		return nil, nil
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Start blocked for %v", elapsed)
	}
	if h.State() != StateRunning {
		t.Errorf("state after Start = %v, want running", h.State())
	}
}
