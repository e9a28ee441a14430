// ABOUTME: Ordered asynchronous delivery of session events to one listener.
// ABOUTME: Events queue without bound and are handed to the callback on its own goroutine.
package auth

import "sync"

type subscription struct {
	fn func(Event)

	mu    sync.Mutex
	queue []Event

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newSubscription(fn func(Event)) *subscription {
	s := &subscription{
		fn:   fn,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *subscription) push(e Event) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) next() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Event{}, false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, true
}

func (s *subscription) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case <-s.wake:
		}
		for {
			select {
			case <-s.quit:
				return
			default:
			}
			e, ok := s.next()
			if !ok {
				break
			}
			s.fn(e)
		}
	}
}

// stop ends delivery and waits for an in-flight callback to return. It must
// not be called from inside the callback.
func (s *subscription) stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}
