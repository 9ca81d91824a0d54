package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bptrack/internal/auth"
	"bptrack/internal/service"
)

// ExportHandler serves downloadable exports of the user's readings.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CSV godoc
// @Summary Export readings as CSV
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings/export/csv [get]
func (h *ExportHandler) CSV(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := h.exportService.CSV(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="blood-pressure-readings.csv"`)
	return c.Blob(http.StatusOK, "text/csv", payload)
}

// JSON godoc
// @Summary Export readings as JSON
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings/export/json [get]
func (h *ExportHandler) JSON(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := h.exportService.JSON(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="blood-pressure-readings.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, payload)
}

// Summary godoc
// @Summary Export a plain-text summary report
// @Tags exports
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings/export/summary [get]
func (h *ExportHandler) Summary(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	payload, err := h.exportService.Summary(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="blood-pressure-summary.txt"`)
	return c.Blob(http.StatusOK, echo.MIMETextPlain, payload)
}
