package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobtracker-app/jobtracker/internal/database"
)

// SessionKey is the key-value entry holding the restored session.
const SessionKey = "jobtracker:session"

// Client talks to a Firebase-style identity-toolkit REST endpoint and
// publishes session events to subscribers. It implements Identity.
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
	kv     *database.KV

	mu      sync.Mutex
	subs    map[int]func(SessionEvent)
	nextSub int
}

func NewClient(apiURL, apiKey string, kv *database.KV) *Client {
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: 20 * time.Second},
		kv:     kv,
	}
}

// Start restores the persisted session, if any, and publishes the initial
// session event. Call it once, after the gate has subscribed.
func (c *Client) Start(ctx context.Context) {
	var user *User
	if raw := c.kv.Load(ctx, SessionKey, nil); len(raw) > 0 {
		var u User
		if err := json.Unmarshal(raw, &u); err == nil && sessionAlive(&u) {
			user = &u
		}
	}
	if user == nil {
		// Drop any stale session so the next restore is a clean miss.
		_ = c.kv.Delete(ctx, SessionKey)
	}
	c.publish(SessionEvent{User: user})
}

func (c *Client) Subscribe(fn func(SessionEvent)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[int]func(SessionEvent))
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "accounts:signUp", email, password)
}

func (c *Client) SignOut() {
	if err := c.kv.Delete(context.Background(), SessionKey); err != nil {
		log.Printf("[auth] clearing persisted session failed: %v", err)
	}
	c.publish(SessionEvent{User: nil})
}

type accountRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID   string `json:"localId"`
	Email     string `json:"email"`
	IDToken   string `json:"idToken"`
	ExpiresIn string `json:"expiresIn"` // seconds, as a string
}

type accountError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) authenticate(ctx context.Context, action, email, password string) error {
	body, err := json.Marshal(accountRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return fmt.Errorf("marshal account request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.apiURL, action, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr accountError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("identity service HTTP %d", resp.StatusCode)
		}
		return mapAccountError(apiErr.Error.Message)
	}

	var acct accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}

	user := &User{
		UID:       acct.LocalID,
		Email:     acct.Email,
		Token:     acct.IDToken,
		ExpiresAt: expiryFrom(acct),
	}

	if raw, err := json.Marshal(user); err == nil {
		if err := c.kv.Save(ctx, SessionKey, raw); err != nil {
			log.Printf("[auth] persisting session failed: %v", err)
		}
	}

	// State flips through the subscription, never directly here.
	c.publish(SessionEvent{User: user})
	return nil
}

// mapAccountError translates the identity service's error codes into the
// fixed taxonomy. WEAK_PASSWORD arrives with a trailing explanation
// ("WEAK_PASSWORD : Password should be ..."), hence the prefix match.
func mapAccountError(code string) error {
	switch {
	case code == "EMAIL_NOT_FOUND", code == "INVALID_PASSWORD",
		code == "INVALID_LOGIN_CREDENTIALS", code == "USER_DISABLED":
		return ErrInvalidCredentials
	case code == "EMAIL_EXISTS":
		return ErrEmailInUse
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return ErrWeakPassword
	default:
		return fmt.Errorf("identity service: %s", code)
	}
}

func expiryFrom(acct accountResponse) time.Time {
	if exp, ok := tokenExpiry(acct.IDToken); ok {
		return exp
	}
	secs, err := strconv.Atoi(acct.ExpiresIn)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return time.Now().Add(time.Duration(secs) * time.Second)
}

// tokenExpiry reads the exp claim without verifying the signature; token
// verification is the identity service's job, this only decides whether a
// restored session is worth presenting as authenticated.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func sessionAlive(u *User) bool {
	if exp, ok := tokenExpiry(u.Token); ok {
		return time.Now().Before(exp)
	}
	return time.Now().Before(u.ExpiresAt)
}

func (c *Client) publish(ev SessionEvent) {
	c.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
