package auth

import (
	"context"
	"errors"
	"time"
)

// User is the authenticated account pushed by the identity service.
type User struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionEvent carries a session-state change. A nil User means signed out.
type SessionEvent struct {
	User *User
}

// Identity is the boundary to the external identity service. Successful
// sign-in/sign-up is observed only through the subscription: implementations
// publish a SessionEvent rather than having callers mutate state directly.
type Identity interface {
	// Subscribe registers fn for session-state changes and returns a function
	// that removes the subscription.
	Subscribe(fn func(SessionEvent)) (unsubscribe func())
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	// SignOut is fire-and-forget.
	SignOut()
}

// Classification of identity-service failures. Anything not covered maps to a
// generic message.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("weak password")
)

// Message maps an identity error to one of the four fixed user-facing
// messages.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Incorrect email or password."
	case errors.Is(err, ErrEmailInUse):
		return "An account already exists with this email."
	case errors.Is(err, ErrWeakPassword):
		return "Password is too weak (minimum 6 characters)."
	default:
		return "Could not complete the request. Please try again."
	}
}
