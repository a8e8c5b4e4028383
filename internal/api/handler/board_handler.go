package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/api/middleware"
	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// maxStylesBytes caps POST /setCustomStyles bodies at 5 KiB.
const maxStylesBytes = 5 * 1024

type BoardHandler struct {
	boardService ports.BoardService
}

func NewBoardHandler(boardService ports.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type boardPageResponse struct {
	Board   *domain.Board  `json:"board"`
	Entries []domain.Entry `json:"entries"`
}

// Root serves GET / for every host. On the apex it renders the global index;
// on a tenant host it renders that board's page and counts the view. An
// unknown subdomain or custom domain is a 404, never a fallback to the index.
func (h *BoardHandler) Root(c echo.Context) error {
	res, err := h.boardService.ResolveHost(c.Request().Context(), c.Request().Host)
	if err != nil {
		return err
	}

	if res.Apex {
		stats, err := h.boardService.Index(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, stats)
	}

	entries, err := h.boardService.Page(c.Request().Context(), res.Board)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, boardPageResponse{Board: res.Board, Entries: entries})
}

// Dashboard returns the authenticated owner's board and entries.
func (h *BoardHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	board, entries, err := h.boardService.OwnerBoard(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, boardPageResponse{Board: board, Entries: entries})
}

type setConfigRequest struct {
	ShowCaptcha      *bool   `json:"show_captcha"`
	ShowNames        *bool   `json:"show_names"`
	ShowDescriptions *bool   `json:"show_descriptions"`
	OnIndex          *bool   `json:"on_index"`
	BrushColor       *string `json:"brush_color" validate:"omitempty,hexcolor"`
	BackgroundColor  *string `json:"background_color" validate:"omitempty,hexcolor"`
}

// SetConfig updates the owner's board settings; omitted fields are left
// untouched.
func (h *BoardHandler) SetConfig(c echo.Context) error {
	var req setConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	err := h.boardService.SetConfig(c.Request().Context(), user.ID, domain.BoardConfig{
		ShowCaptcha:      req.ShowCaptcha,
		ShowNames:        req.ShowNames,
		ShowDescriptions: req.ShowDescriptions,
		OnIndex:          req.OnIndex,
		BrushColor:       req.BrushColor,
		BackgroundColor:  req.BackgroundColor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

// SetCustomStyles stores the raw request body as the board's stylesheet.
func (h *BoardHandler) SetCustomStyles(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxStylesBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if len(body) > maxStylesBytes {
		return domain.ErrStylesTooBig
	}

	user := middleware.CurrentUser(c)
	if err := h.boardService.SetCustomStyles(c.Request().Context(), user.ID, string(body)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

// RetrieveCustomStyles serves a board's stylesheet by board id.
func (h *BoardHandler) RetrieveCustomStyles(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return domain.ErrBoardNotFound
	}
	css, err := h.boardService.CustomStyles(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
