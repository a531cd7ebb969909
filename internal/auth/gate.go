package auth

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// State is the gate's view of the session.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// Gate tracks the session state pushed by the identity service and blocks
// application routes until a user is signed in. It starts in loading and
// moves only when an event arrives; sign-in handlers never touch it.
type Gate struct {
	mu    sync.RWMutex
	state State
	user  *User
	unsub func()
}

func NewGate(id Identity) *Gate {
	g := &Gate{state: StateLoading}
	g.unsub = id.Subscribe(g.onSession)
	return g
}

// Close tears down the subscription.
func (g *Gate) Close() {
	if g.unsub != nil {
		g.unsub()
	}
}

func (g *Gate) onSession(ev SessionEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = ev.User
	if ev.User != nil {
		g.state = StateAuthenticated
	} else {
		g.state = StateAnonymous
	}
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// User returns the signed-in user, or nil.
func (g *Gate) User() *User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Middleware suppresses application routes while the session is loading and
// rejects them while anonymous.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch g.State() {
		case StateLoading:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session state is still loading"})
		case StateAnonymous:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		default:
			c.Next()
		}
	}
}
