package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtracker-app/jobtracker/internal/auth"
	"github.com/jobtracker-app/jobtracker/internal/dtos"
)

type AuthHandler struct {
	Identity auth.Identity
	Gate     *auth.Gate
}

func NewAuthHandler(identity auth.Identity, gate *auth.Gate) *AuthHandler {
	return &AuthHandler{Identity: identity, Gate: gate}
}

// SignIn is POST /auth/signin. A 200 only means the identity service
// accepted the credentials; the gate flips through the pushed session event.
func (h *AuthHandler) SignIn(c *gin.Context) {
	h.credentials(c, h.Identity.SignIn)
}

// SignUp is POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	h.credentials(c, h.Identity.SignUp)
}

func (h *AuthHandler) credentials(c *gin.Context, call func(ctx context.Context, email, password string) error) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	if err := call(c.Request.Context(), req.Email, req.Password); err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SignOut is POST /auth/signout, fire-and-forget.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.Identity.SignOut()
	c.JSON(http.StatusOK, gin.H{"signed_out": true})
}

// Session is GET /auth/session: the gate state the form uses to decide what
// to render.
func (h *AuthHandler) Session(c *gin.Context) {
	resp := gin.H{"state": h.Gate.State().String()}
	if u := h.Gate.User(); u != nil {
		resp["email"] = u.Email
	}
	c.JSON(http.StatusOK, resp)
}

func respondAuthError(c *gin.Context, err error) {
	msg := auth.Message(err)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	case errors.Is(err, auth.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case errors.Is(err, auth.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	}
}
