package pipeline

// slot is a capacity-one non-blocking semaphore: at most one task of a kind
// runs per orchestrator instance.
type slot struct {
	ch chan struct{}
}

func newSlot() *slot {
	return &slot{ch: make(chan struct{}, 1)}
}

// tryAcquire takes the slot without blocking; false means a task of this
// kind is already running.
func (s *slot) tryAcquire() bool {
	select {
	case s.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// release frees the slot.
func (s *slot) release() {
	<-s.ch
}
