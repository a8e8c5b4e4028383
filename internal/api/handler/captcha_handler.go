package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/api/metrics"
	"github.com/poyobook/poyobook/internal/core/ports"
)

type CaptchaHandler struct {
	captchaService ports.CaptchaService
}

func NewCaptchaHandler(captchaService ports.CaptchaService) *CaptchaHandler {
	return &CaptchaHandler{captchaService: captchaService}
}

// Issue hands the client a fresh arithmetic challenge bound to its IP.
func (h *CaptchaHandler) Issue(c echo.Context) error {
	ch, err := h.captchaService.Issue(c.Request().Context(), c.RealIP())
	if err != nil {
		return err
	}
	metrics.CaptchaIssuedTotal.Inc()
	return c.JSON(http.StatusOK, ch)
}
