package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-journal/internal/application/service"
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/sheet"
)

// Failure categories reported to clients
const (
	CategoryParseError    = "parse_error"
	CategoryPackageError  = "package_error"
	CategorySettingsError = "settings_error"
	CategoryInvalidUpload = "invalid_upload"
	CategoryInternalError = "internal_error"
)

// VoucherIDsHeader lists the voucher ids contained in a conversion archive
const VoucherIDsHeader = "X-Voucher-Ids"

// Handlers contains all HTTP request handlers
type Handlers struct {
	conversionService service.ConversionService
	settingsService   service.SettingsService
	config            ServerConfig
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	conversionService service.ConversionService,
	settingsService service.SettingsService,
	config ServerConfig,
	logger Logger,
) *Handlers {
	return &Handlers{
		conversionService: conversionService,
		settingsService:   settingsService,
		config:            config,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Category string      `json:"category,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   h.config.Version,
		},
	})
}

// Index handles GET /
func (h *Handlers) Index(c *gin.Context) {
	doc := h.settingsService.Current()
	c.HTML(http.StatusOK, "index.html", indexPage{
		Version:    h.config.Version,
		InputSheet: doc.InputSheet.Name,
	})
}

// Manual handles GET /manual
func (h *Handlers) Manual(c *gin.Context) {
	c.HTML(http.StatusOK, "manual.html", manualPage{Version: h.config.Version})
}

// SettingsPage handles GET /settings
func (h *Handlers) SettingsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", newSettingsPage(h.settingsService.Current()))
}

// SaveSettings handles POST /settings
func (h *Handlers) SaveSettings(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.fail(c, http.StatusBadRequest, CategorySettingsError, err)
		return
	}

	if _, err := h.settingsService.Update(settingsUpdateFromForm(c)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, settings.ErrInvalidSettings) {
			status = http.StatusBadRequest
		}
		h.fail(c, status, CategorySettingsError, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/settings")
}

// settingsUpdateFromForm collects only the fields present in the submitted form
func settingsUpdateFromForm(c *gin.Context) service.SettingsUpdate {
	update := service.SettingsUpdate{
		Headers: make(map[string]string),
		Credits: make(map[string]service.CreditRuleUpdate),
	}

	for _, f := range headerFormFields {
		if v, ok := c.GetPostForm(f.Name); ok {
			update.Headers[f.Field] = v
		}
	}

	for _, key := range settings.CategoryKeys {
		cu := service.CreditRuleUpdate{
			Account:    postForm(c, key+creditAccountSuffix),
			SubAccount: postForm(c, key+creditSubAccountSuffix),
			Department: postForm(c, key+creditDepartmentSuffix),
			TaxCode:    postForm(c, key+creditTaxCodeSuffix),
		}
		if cu.Account != nil || cu.SubAccount != nil || cu.Department != nil || cu.TaxCode != nil {
			update.Credits[key] = cu
		}
	}

	return update
}

func postForm(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok {
		return &v
	}
	return nil
}

// Convert handles POST /convert
func (h *Handlers) Convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, CategoryInvalidUpload,
				fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.fail(c, http.StatusBadRequest, CategoryInvalidUpload, err)
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		h.fail(c, http.StatusBadRequest, CategoryInvalidUpload, err)
		return
	}

	report, err := h.conversionService.Convert(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		status, category := classifyConversionError(err)
		h.fail(c, status, category, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Archive.Filename))
	c.Header(VoucherIDsHeader, strings.Join(report.VoucherIDs, ","))
	c.Data(http.StatusOK, "application/zip", report.Archive.Data)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

func classifyConversionError(err error) (int, string) {
	var parseErr *sheet.ParseError
	switch {
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, CategoryParseError
	case errors.Is(err, service.ErrPackage):
		return http.StatusInternalServerError, CategoryPackageError
	}
	return http.StatusInternalServerError, CategoryInternalError
}

func (h *Handlers) fail(c *gin.Context, status int, category string, err error) {
	h.logger.Error("Request failed",
		"request_id", c.GetString(requestIDKey),
		"path", c.Request.URL.Path,
		"category", category,
		"error", err,
	)
	c.JSON(status, Response{
		Success:  false,
		Category: category,
		Error:    err.Error(),
	})
}
