// ABOUTME: Authentication contract: sessions, change events and credential validation.
// ABOUTME: Providers allow one change subscription and deliver events asynchronously.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at sign-up and sign-in.
const MinPasswordLength = 6

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAccountExists      = errors.New("user already registered")
	ErrAlreadySubscribed  = errors.New("session listener already registered")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Session is an authenticated user session.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// EventKind says what changed.
type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

func (k EventKind) String() string {
	switch k {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports a session change. Session is nil for SignedOut.
type Event struct {
	Kind    EventKind
	Session *Session
}

// Unsubscribe cancels a change subscription. It is safe to call more than once.
type Unsubscribe func()

// Provider is the authentication collaborator.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// CurrentSession returns nil, nil when signed out.
	CurrentSession(ctx context.Context) (*Session, error)
	// OnSessionChange registers the single change listener.
	OnSessionChange(fn func(Event)) (Unsubscribe, error)
}

// Validate checks the credential form rules: a plain email address and a
// password of at least MinPasswordLength characters.
func Validate(email, password string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
