package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/cmd/roadnet/middleware"
	"github.com/gridworks/roadnet/cmd/roadnet/service"
	"github.com/gridworks/roadnet/common/apperr"
)

// AuthHandler handles registration, login and logout requests
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new user account and opens a session
// POST /api/v1/users
func (h *AuthHandler) Register(c echo.Context) error {
	req := new(credentialsRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials and opens a session
// POST /api/v1/sessions
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(credentialsRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Logout closes the caller's session
// DELETE /api/v1/sessions
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.SessionToken(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "OK"})
}
