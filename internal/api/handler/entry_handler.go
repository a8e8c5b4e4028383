package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/api/metrics"
	"github.com/poyobook/poyobook/internal/api/middleware"
	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// maxUploadBytes caps the raw size of an uploaded drawbox image.
const maxUploadBytes = 1 << 20

type EntryHandler struct {
	entryService ports.EntryService
	boardService ports.BoardService
}

func NewEntryHandler(entryService ports.EntryService, boardService ports.BoardService) *EntryHandler {
	return &EntryHandler{entryService: entryService, boardService: boardService}
}

type addEntryRequest struct {
	BoardID       uint   `json:"board_id"`
	CaptchaToken  string `json:"captcha_token"`
	CaptchaAnswer string `json:"captcha_answer"`
	Message       string `json:"message"`
	Author        string `json:"author"`
	Website       string `json:"website"`
	Creator       string `json:"creator"`
	Description   string `json:"description"`
}

type addEntryResponse struct {
	ID    uint          `json:"id"`
	Entry *domain.Entry `json:"entry"`
}

// Add accepts a visitor submission. On a tenant host the target board comes
// from the Host header; on the apex it must be named with board_id. Drawbox
// submissions arrive as multipart forms carrying the image, guestbook ones
// as JSON.
func (h *EntryHandler) Add(c echo.Context) error {
	in, err := h.buildSubmission(c)
	if err != nil {
		if errors.Is(err, domain.ErrBoardNotFound) {
			metrics.EntriesRejectedTotal.WithLabelValues("board_not_found").Inc()
		}
		return err
	}

	entry, err := h.entryService.Submit(c.Request().Context(), *in)
	if err != nil {
		metrics.EntriesRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		if in.Board != nil && in.Board.ShowCaptcha && errors.Is(err, domain.ErrCaptchaFailed) {
			metrics.CaptchaRedeemedTotal.WithLabelValues("failed").Inc()
		}
		return err
	}

	metrics.EntriesCreatedTotal.WithLabelValues(string(in.Board.Type)).Inc()
	if in.Board.ShowCaptcha {
		metrics.CaptchaRedeemedTotal.WithLabelValues("ok").Inc()
	}
	return c.JSON(http.StatusCreated, addEntryResponse{ID: entry.ID, Entry: entry})
}

func (h *EntryHandler) buildSubmission(c echo.Context) (*ports.EntrySubmission, error) {
	var req addEntryRequest
	multipart := strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
	if multipart {
		req = addEntryRequest{
			CaptchaToken:  c.FormValue("captcha_token"),
			CaptchaAnswer: c.FormValue("captcha_answer"),
			Message:       c.FormValue("message"),
			Author:        c.FormValue("author"),
			Website:       c.FormValue("website"),
			Creator:       c.FormValue("creator"),
			Description:   c.FormValue("description"),
		}
		if id, err := strconv.ParseUint(c.FormValue("board_id"), 10, 32); err == nil {
			req.BoardID = uint(id)
		}
	} else if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	board, err := h.targetBoard(c, req.BoardID)
	if err != nil {
		return nil, err
	}

	in := &ports.EntrySubmission{
		Board:         board,
		ClientIP:      c.RealIP(),
		CaptchaToken:  req.CaptchaToken,
		CaptchaAnswer: req.CaptchaAnswer,
		Message:       req.Message,
		Author:        req.Author,
		Website:       req.Website,
		Creator:       req.Creator,
		Description:   req.Description,
	}

	if multipart {
		img, err := readUpload(c)
		if err != nil {
			return nil, err
		}
		in.Image = img
	}
	return in, nil
}

// targetBoard resolves the submission target: the Host header on tenant
// domains, an explicit board_id on the apex.
func (h *EntryHandler) targetBoard(c echo.Context, boardID uint) (*domain.Board, error) {
	res, err := h.boardService.ResolveHost(c.Request().Context(), c.Request().Host)
	if err != nil {
		return nil, err
	}
	if !res.Apex {
		return res.Board, nil
	}
	if boardID == 0 {
		return nil, domain.ErrBoardNotFound
	}
	return h.boardService.Board(c.Request().Context(), boardID)
}

func readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // missing upload is caught by the entry service
	}
	if fh.Size > maxUploadBytes {
		return nil, domain.ErrInvalidImage
	}

	f, err := fh.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, domain.ErrInvalidImage
	}
	return data, nil
}

// Delete removes an entry from the authenticated owner's board.
func (h *EntryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	user := middleware.CurrentUser(c)
	if err := h.entryService.Delete(c.Request().Context(), user.ID, uint(id)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// RetrieveImage serves a stored entry image.
func (h *EntryHandler) RetrieveImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	path, err := h.entryService.ImagePath(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	return c.File(path)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrBoardNotFound):
		return "board_not_found"
	case errors.Is(err, domain.ErrCaptchaFailed):
		return "captcha_failed"
	case errors.Is(err, domain.ErrFieldTooLong):
		return "field_too_long"
	case errors.Is(err, domain.ErrMissingField):
		return "missing_field"
	case errors.Is(err, domain.ErrInvalidImage):
		return "invalid_image"
	default:
		return "store_error"
	}
}
