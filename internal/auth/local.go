// ABOUTME: Local auth provider: bcrypt-hashed accounts in storage, session in preferences.
// ABOUTME: Signing up signs the new user in immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/prefs"
	"github.com/harperreed/elevate/internal/storage"
)

// AccountStore persists local accounts. storage.Repository satisfies it.
type AccountStore interface {
	CreateAccount(a *models.Account) error
	GetAccount(email string) (*models.Account, error)
}

// SessionStore persists the current session. *prefs.Store satisfies it.
type SessionStore interface {
	Get(key string, v interface{}) (bool, error)
	Put(key string, v interface{}) error
	Delete(key string) error
}

// Local is a Provider that needs no network.
type Local struct {
	accounts AccountStore
	sessions SessionStore
	cost     int
	logger   *log.Logger
	now      func() time.Time

	mu  sync.Mutex
	sub *subscription
}

var _ Provider = (*Local)(nil)

// Option configures a Local provider.
type Option func(*Local)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Local) { p.logger = l }
}

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(p *Local) { p.cost = cost }
}

// NewLocal creates a provider over the given stores.
func NewLocal(accounts AccountStore, sessions SessionStore, opts ...Option) *Local {
	p := &Local{
		accounts: accounts,
		sessions: sessions,
		cost:     bcrypt.DefaultCost,
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignUp registers a new account and signs it in.
func (p *Local) SignUp(ctx context.Context, email, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := models.NewAccount(email, string(hash))
	if err := p.accounts.CreateAccount(account); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	p.logger.Info("account created", "email", account.Email)

	return p.startSession(account)
}

// SignIn checks credentials and starts a session.
func (p *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(email, password); err != nil {
		return nil, err
	}

	account, err := p.accounts.GetAccount(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			p.logger.Debug("sign in for unknown account", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		p.logger.Debug("password mismatch", "email", account.Email)
		return nil, ErrInvalidCredentials
	}

	return p.startSession(account)
}

// SignOut clears the current session. Signing out while signed out is a no-op.
func (p *Local) SignOut(ctx context.Context) error {
	current, err := p.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	if err := p.sessions.Delete(prefs.KeyAuthSession); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	p.logger.Info("signed out", "email", current.Email)
	p.emit(Event{Kind: SignedOut})
	return nil
}

// CurrentSession returns the stored session, or nil when signed out.
func (p *Local) CurrentSession(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var s Session
	found, err := p.sessions.Get(prefs.KeyAuthSession, &s)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

// OnSessionChange registers fn as the single change listener. Events are
// delivered in order on a separate goroutine.
func (p *Local) OnSessionChange(fn func(Event)) (Unsubscribe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sub != nil {
		return nil, ErrAlreadySubscribed
	}
	sub := newSubscription(fn)
	p.sub = sub

	return func() {
		p.mu.Lock()
		if p.sub == sub {
			p.sub = nil
		}
		p.mu.Unlock()
		sub.stop()
	}, nil
}

func (p *Local) startSession(account *models.Account) (*Session, error) {
	s := &Session{
		UserID:    account.ID,
		Email:     account.Email,
		Token:     uuid.NewString(),
		CreatedAt: p.now(),
	}
	if err := p.sessions.Put(prefs.KeyAuthSession, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	p.logger.Info("signed in", "email", s.Email)
	p.emit(Event{Kind: SignedIn, Session: s})
	return s, nil
}

func (p *Local) emit(e Event) {
	p.mu.Lock()
	sub := p.sub
	p.mu.Unlock()
	if sub != nil {
		sub.push(e)
	}
}
