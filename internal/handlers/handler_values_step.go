package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// loadValues godoc
// @Summary Load the values step
// @Tags values-step
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Success 200 {object} dto.ValuesView
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/values [get]
func (h *wizardHandler) loadValues(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.wizardService.LoadValues(c.Request.Context(), id, c.Param("wizardID"))
	if err != nil {
		respondError(c, err, "load values")
		return
	}
	c.JSON(http.StatusOK, view)
}

// applyValuesChange godoc
// @Summary Apply one values edit
// @Description Changing currencyAmount or exchangeRate re-derives totalAmount; setting totalAmount overrides it.
// @Tags values-step
// @Accept json
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param change body dto.ValuesChange true "Edited field"
// @Success 200 {object} dto.ValuesView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/values/preview [post]
func (h *wizardHandler) applyValuesChange(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var change dto.ValuesChange
	if err := c.ShouldBindJSON(&change); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.wizardService.ApplyValuesChange(c.Request.Context(), id, c.Param("wizardID"), change)
	if err != nil {
		respondError(c, err, "apply values change")
		return
	}
	c.JSON(http.StatusOK, view)
}

// submitValues godoc
// @Summary Submit the values step
// @Description Multipart form with the scalar values and up to the configured number of PDF or image files under "files".
// @Tags values-step
// @Accept mpfd
// @Produce json
// @Param wizardID path string true "Wizard ID"
// @Param currencyAmount formData string true "Currency amount"
// @Param exchangeRate formData string true "Exchange rate"
// @Param totalAmount formData string true "Total amount"
// @Param notes formData string false "Notes"
// @Param files formData file false "Supporting documents"
// @Success 200 {object} dto.WizardView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{wizardID}/values [post]
func (h *wizardHandler) submitValues(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	// The body is capped before multipart parsing spools anything.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBody())

	var files []*multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		mf, err := c.MultipartForm()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Values upload too large",
					slog.Int64("limit_bytes", tooLarge.Limit))
				c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
					Error:  "Upload too large",
					Fields: map[string]string{"files": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)},
				})
				return
			}
			respondBindError(c, err)
			return
		}
		files = mf.File["files"]
	}

	fields := map[string]string{}
	form := dto.ValuesForm{
		CurrencyAmount: formDecimal(c, "currencyAmount", fields),
		ExchangeRate:   formDecimal(c, "exchangeRate", fields),
		TotalAmount:    formDecimal(c, "totalAmount", fields),
		Notes:          c.PostForm("notes"),
	}

	if len(files) > h.maxFiles {
		fields["files"] = fmt.Sprintf("at most %d files can be attached, got %d", h.maxFiles, len(files))
	} else {
		for _, fh := range files {
			if err := validation.ValidateDocumentSize(fh.Filename, fh.Size, h.maxFileBytes); err != nil {
				fields["files"] = err.Error()
				break
			}
		}
	}
	if len(fields) > 0 {
		respondError(c, validation.NewFieldError(fields), "submit values")
		return
	}

	documents, err := readDocuments(files)
	if err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.wizardService.SubmitValues(c.Request.Context(), id, c.Param("wizardID"), form, documents)
	if err != nil {
		respondError(c, err, "submit values")
		return
	}
	c.JSON(http.StatusOK, view)
}

// multipartOverhead leaves room for the scalar fields and part headers.
const multipartOverhead = 1 << 20

func (h *wizardHandler) maxUploadBody() int64 {
	return int64(h.maxFiles)*h.maxFileBytes + multipartOverhead
}

func formDecimal(c *gin.Context, key string, fields map[string]string) decimal.Decimal {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fields[key] = "must be a number"
		return decimal.Zero
	}
	return d
}

func readDocuments(files []*multipart.FileHeader) ([]domain.Document, error) {
	documents := make([]domain.Document, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open '%s': %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s': %w", fh.Filename, err)
		}
		documents = append(documents, domain.Document{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return documents, nil
}
