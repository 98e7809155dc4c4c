package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/retail-bank-ledger/internal/auth"
)

// AuthHandler handles HTTP requests for credential checks
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login resolves a username/password pair to a role. Bad credentials and
// unknown usernames get the same 401 so the response leaks nothing about
// which part failed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	role := h.authService.Authenticate(req.Username, req.Password)
	if role == auth.RoleNone {
		h.logger.Warn("Failed login attempt", "username", req.Username)
		RespondUnauthorized(c, "Invalid credentials")
		return
	}

	RespondOK(c, LoginResponse{
		Username: req.Username,
		Role:     string(role),
	})
}
