package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"bptrack/internal/auth"
	"bptrack/internal/errors"
	"bptrack/internal/model"
	"bptrack/internal/service"
)

// ReadingHandler handles blood pressure reading endpoints.
type ReadingHandler struct {
	readingService service.ReadingService
}

// NewReadingHandler creates a new reading handler.
func NewReadingHandler(readingService service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// ReadingRequest represents a create or update reading payload.
type ReadingRequest struct {
	Systolic    int       `json:"systolic" validate:"required,min=1,max=400"`
	Diastolic   int       `json:"diastolic" validate:"required,min=1,max=400"`
	ReadingTime time.Time `json:"reading_time" validate:"required"`
	Note        *string   `json:"note,omitempty" validate:"omitempty,max=500"`
}

// ReadingListResponse wraps a user's readings with their count.
type ReadingListResponse struct {
	Count    int             `json:"count"`
	Readings []model.Reading `json:"readings"`
}

func (r *ReadingRequest) toInput() service.ReadingInput {
	return service.ReadingInput{
		Systolic:    r.Systolic,
		Diastolic:   r.Diastolic,
		ReadingTime: r.ReadingTime,
		Note:        r.Note,
	}
}

func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func readingID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid reading ID",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// Create godoc
// @Summary Add a blood pressure reading
// @Tags readings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReadingRequest true "Reading data"
// @Success 201 {object} model.Reading
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings [post]
func (h *ReadingHandler) Create(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reading, err := h.readingService.Add(c.Request().Context(), identity.UserID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reading)
}

// List godoc
// @Summary List the authenticated user's readings
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ReadingListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings [get]
func (h *ReadingHandler) List(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	readings, err := h.readingService.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ReadingListResponse{
		Count:    len(readings),
		Readings: readings,
	})
}

// Get godoc
// @Summary Get a reading by ID
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reading ID"
// @Success 200 {object} model.Reading
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /readings/{id} [get]
func (h *ReadingHandler) Get(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := readingID(c)
	if err != nil {
		return err
	}

	reading, err := h.readingService.Get(c.Request().Context(), identity.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reading)
}

// Update godoc
// @Summary Update a reading
// @Tags readings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reading ID"
// @Param request body ReadingRequest true "Reading data"
// @Success 200 {object} model.Reading
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /readings/{id} [put]
func (h *ReadingHandler) Update(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := readingID(c)
	if err != nil {
		return err
	}

	var req ReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reading, err := h.readingService.Update(c.Request().Context(), identity.UserID, id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reading)
}

// Delete godoc
// @Summary Delete a reading
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reading ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /readings/{id} [delete]
func (h *ReadingHandler) Delete(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := readingID(c)
	if err != nil {
		return err
	}

	if err := h.readingService.Delete(c.Request().Context(), identity.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "reading deleted successfully",
	})
}

// Statistics godoc
// @Summary Get reading statistics
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Statistics
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /readings/statistics [get]
func (h *ReadingHandler) Statistics(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := h.readingService.Statistics(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
