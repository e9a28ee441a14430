// ABOUTME: Watcher owns a provider's single subscription and caches the session.
// ABOUTME: Consumers ask the watcher instead of keeping global auth state.
package auth

import (
	"context"
	"sync"
)

// Watcher tracks whether a user is signed in.
type Watcher struct {
	provider Provider
	onChange func(Event)

	mu      sync.RWMutex
	session *Session

	unsub Unsubscribe
	once  sync.Once
}

// Watch loads the current session and subscribes to changes. onChange, if
// non-nil, runs after the cached session is updated.
func Watch(ctx context.Context, p Provider, onChange func(Event)) (*Watcher, error) {
	w := &Watcher{provider: p, onChange: onChange}

	current, err := p.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	w.session = current

	unsub, err := p.OnSessionChange(w.handle)
	if err != nil {
		return nil, err
	}
	w.unsub = unsub
	return w, nil
}

func (w *Watcher) handle(e Event) {
	w.mu.Lock()
	switch e.Kind {
	case SignedIn:
		w.session = e.Session
	case SignedOut:
		w.session = nil
	}
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(e)
	}
}

// Session returns the cached session, or nil when signed out.
func (w *Watcher) Session() *Session {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.session
}

// SignedIn reports whether a session is present.
func (w *Watcher) SignedIn() bool {
	return w.Session() != nil
}

// Require returns the session or ErrNotSignedIn.
func (w *Watcher) Require() (*Session, error) {
	if s := w.Session(); s != nil {
		return s, nil
	}
	return nil, ErrNotSignedIn
}

// Close releases the subscription. It is idempotent.
func (w *Watcher) Close() {
	w.once.Do(func() {
		if w.unsub != nil {
			w.unsub()
		}
	})
}
