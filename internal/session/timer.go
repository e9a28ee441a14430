// ABOUTME: Duration timer for an active session.
// ABOUTME: Ticks once per interval until finish, discard, Close or ctx cancel.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrTimerRunning is returned when Start is called twice.
var ErrTimerRunning = errors.New("session timer already running")

// Start launches the duration timer. It stops on Finish, Discard, Close or
// when ctx is cancelled, whichever comes first.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}
	if s.stopTimer != nil {
		return ErrTimerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.stopTimer = cancel
	s.timerDone = done

	go s.run(ctx, done)
	return nil
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.timerDone == done {
				s.stopTimer()
				s.stopTimer, s.timerDone = nil, nil
			}
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Running reports whether the timer goroutine is attached. It turns false
// once the goroutine exits, whatever stopped it.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopTimer != nil
}

// detachTimer takes ownership of the timer handles. Callers hold s.mu and
// must call release after unlocking, since the timer goroutine needs the
// lock to finish its current tick.
func (s *Session) detachTimer() (context.CancelFunc, chan struct{}) {
	stop, done := s.stopTimer, s.timerDone
	s.stopTimer, s.timerDone = nil, nil
	return stop, done
}

func release(stop context.CancelFunc, done chan struct{}) {
	if stop == nil {
		return
	}
	stop()
	<-done
}
