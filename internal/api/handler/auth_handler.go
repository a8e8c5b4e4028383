package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/api/metrics"
	"github.com/poyobook/poyobook/internal/api/middleware"
	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,alphanum,max=20"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	BoardType string `json:"board_type" validate:"omitempty,oneof=guestbook drawbox"`
}

type loginRequest struct {
	// Login accepts a username or an email address.
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account and its tenant board, and starts a session.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		BoardType: domain.BoardType(req.BoardType),
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	middleware.SetSessionCookie(c, token)
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates by username or email and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Whoami reports the session identity, if any. Never blocks.
func (h *AuthHandler) Whoami(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"authenticated": true, "user": user})
}

// Logout clears the session cookie and sends the client home.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

type recoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type recoverCompleteRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// RecoverStart queues a password-recovery mail for the given address.
func (h *AuthHandler) RecoverStart(c echo.Context) error {
	var req recoverRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.StartRecovery(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "recovery mail queued"})
}

// RecoverVerify checks a recovery link before the client shows the reset form.
func (h *AuthHandler) RecoverVerify(c echo.Context) error {
	email, err := h.authService.VerifyRecovery(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"email": email})
}

// RecoverComplete sets a new password for the account behind the token.
func (h *AuthHandler) RecoverComplete(c echo.Context) error {
	var req recoverCompleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.CompleteRecovery(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}
