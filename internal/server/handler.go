package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ukaji3/sheetgroup-go/internal/config"
	"github.com/ukaji3/sheetgroup-go/internal/logger"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

var (
	errBadRequest    = errors.New("bad request")
	errEmptyWorkbook = errors.New("workbook has no sheets with data")
)

// Handler serves the workbook endpoints. Every request loads and
// classifies its own upload; nothing is shared between requests.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a handler using cfg for defaults.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// SheetsResponse lists the sheets of an uploaded workbook.
type SheetsResponse struct {
	BookName string                `json:"book_name"`
	Sheets   []models.SheetSummary `json:"sheets"`
	Preview  []models.Sheet        `json:"preview,omitempty"`
}

// ClassifyResponse is the grouping of an uploaded workbook.
type ClassifyResponse struct {
	BookName string `json:"book_name"`
	*models.Classification
}

// HealthHandler reports liveness.
func (h *Handler) HealthHandler(c echo.Context) error {
	return responseSuccess(c, http.StatusOK, "ok", nil)
}

// SheetsHandler returns sheet summaries and, unless preview=0, the first
// rows of every sheet.
func (h *Handler) SheetsHandler(c echo.Context) error {
	wb, err := h.load(c)
	if err != nil {
		return h.fail(c, "Failed to read workbook", err)
	}

	rows := h.cfg.Preview.Rows
	if v := c.FormValue("preview"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return responseError(c, http.StatusBadRequest, "Invalid preview", errBadRequest)
		}
		rows = n
	}

	resp := SheetsResponse{BookName: wb.BookName, Sheets: sheetgroup.Summaries(wb)}
	if rows > 0 {
		resp.Preview = sheetgroup.Preview(wb, rows)
	}
	return responseSuccess(c, http.StatusOK, "Sheets loaded", resp)
}

// ClassifyHandler groups the uploaded workbook's sheets by window content.
func (h *Handler) ClassifyHandler(c echo.Context) error {
	ctx := c.Request().Context()

	w, err := windowFromForm(c, h.cfg.Window)
	if err != nil {
		return h.fail(c, "Invalid window", err)
	}
	wb, err := h.load(c)
	if err != nil {
		return h.fail(c, "Failed to read workbook", err)
	}

	cls, err := sheetgroup.Classify(ctx, wb, w)
	if err != nil {
		return h.fail(c, "Failed to classify workbook", err)
	}
	if len(cls.Clamped) > 0 {
		logger.WarnLog(ctx, "window %s lies outside %d sheet(s)", w, len(cls.Clamped))
	}
	logger.InfoLog(ctx, "classified %s into %d group(s)", wb.BookName, len(cls.Groups))
	return responseSuccess(c, http.StatusOK, "Workbook classified", ClassifyResponse{BookName: wb.BookName, Classification: cls})
}

// ExportHandler archives every sheet, or the sheets named by repeated
// "sheet" fields.
func (h *Handler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()

	opts, err := exportOptionsFromForm(c, h.cfg.Export)
	if err != nil {
		return h.fail(c, "Invalid export options", err)
	}
	wb, err := h.load(c)
	if err != nil {
		return h.fail(c, "Failed to read workbook", err)
	}

	archive, err := sheetgroup.Export(ctx, wb, formValues(c, "sheet"), opts)
	if err != nil {
		return h.fail(c, "Failed to export workbook", err)
	}
	logger.InfoLog(ctx, "exported %d sheet(s) to %s", len(archive.Entries), archive.Name)
	return responseArchive(c, archive.Name, archive.Data)
}

// ExportGroupHandler classifies the upload and archives the members of the
// group named by "label".
func (h *Handler) ExportGroupHandler(c echo.Context) error {
	ctx := c.Request().Context()

	label := c.FormValue("label")
	if label == "" {
		return responseError(c, http.StatusBadRequest, "Missing group label", errBadRequest)
	}
	w, err := windowFromForm(c, h.cfg.Window)
	if err != nil {
		return h.fail(c, "Invalid window", err)
	}
	opts, err := exportOptionsFromForm(c, h.cfg.Export)
	if err != nil {
		return h.fail(c, "Invalid export options", err)
	}
	wb, err := h.load(c)
	if err != nil {
		return h.fail(c, "Failed to read workbook", err)
	}

	cls, err := sheetgroup.Classify(ctx, wb, w)
	if err != nil {
		return h.fail(c, "Failed to classify workbook", err)
	}
	archive, err := sheetgroup.ExportGroup(ctx, wb, cls, label, opts)
	if err != nil {
		return h.fail(c, "Failed to export group", err)
	}
	logger.InfoLog(ctx, "exported group %q to %s", label, archive.Name)
	return responseArchive(c, archive.Name, archive.Data)
}

func (h *Handler) load(c echo.Context) (*models.Workbook, error) {
	wb, err := readWorkbook(c)
	if err != nil {
		return nil, err
	}
	if wb.Empty() {
		return nil, errEmptyWorkbook
	}
	return wb, nil
}

// fail maps domain errors to status codes.
func (h *Handler) fail(c echo.Context, msg string, err error) error {
	code := http.StatusInternalServerError
	var (
		exportErr *export.ExportError
		loadErr   *sheetgroup.LoadError
	)
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, sheetgroup.ErrInvalidFormat),
		errors.Is(err, sheetgroup.ErrInvalidWindow),
		errors.Is(err, export.ErrUnsupportedSeparator),
		errors.Is(err, export.ErrUnsupportedEncoding):
		code = http.StatusBadRequest
	case errors.Is(err, sheetgroup.ErrUnknownSheet),
		errors.Is(err, sheetgroup.ErrUnknownGroup):
		code = http.StatusNotFound
	case errors.Is(err, errEmptyWorkbook),
		errors.As(err, &loadErr),
		errors.As(err, &exportErr):
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), "%s: %v", msg, err)
	}
	return responseError(c, code, msg, err)
}
