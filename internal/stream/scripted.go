package stream

import (
	"context"
	"sync"
	"time"
)

// Scripted replays a fixed sequence of cumulative chunks. Tests use it to
// drive edit sessions without a network transport.
type Scripted struct {
	Chunks []string      // cumulative snapshots, delivered in order
	Delay  time.Duration // optional pause between chunks
	// FailAfter, when >= 0, interrupts the stream after that many chunks
	// (the channel closes early, like a transport drop).
	FailAfter int

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// NewScripted builds a scripted channel that completes normally.
func NewScripted(chunks ...string) *Scripted {
	return &Scripted{Chunks: chunks, FailAfter: -1, status: StatusReady}
}

func (s *Scripted) Open(ctx context.Context, prompt string) (<-chan Message, error) {
	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.status = StatusSubmitted
	s.mu.Unlock()

	out := make(chan Message)
	go func() {
		defer close(out)
		for i, chunk := range s.Chunks {
			if s.FailAfter >= 0 && i >= s.FailAfter {
				s.setStatus(StatusError)
				return
			}
			if s.Delay > 0 {
				select {
				case <-time.After(s.Delay):
				case <-runCtx.Done():
					return
				}
			}
			select {
			case out <- TextMessage(chunk):
				s.setStatus(StatusStreaming)
			case <-runCtx.Done():
				return
			}
		}
		s.setStatus(StatusReady)
	}()
	return out, nil
}

func (s *Scripted) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.status = StatusReady
}

func (s *Scripted) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scripted) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
