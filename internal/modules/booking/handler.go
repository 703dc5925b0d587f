package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/reference"
	"venuebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Submit)
	rg.GET("/bookings/:reference", h.Status)
}

func (h *Handler) Submit(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		var conflict *domain.SlotConflictError
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")

		case errors.Is(err, ErrVenueNotFound):
			response.Error(c, http.StatusNotFound, "VENUE_NOT_FOUND", "Unknown venue")

		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, "SLOT_CONFLICT",
				"The selected time slot conflicts with an existing booking",
				gin.H{
					"conflicting_start": conflict.Window.Start.String(),
					"conflicting_end":   conflict.Window.End.String(),
				})

		case errors.Is(err, reference.ErrExhausted):
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")

		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": gin.H{
			"reference_number": b.ReferenceNumber,
			"status":           b.Status,
		},
	})
}

func (h *Handler) Status(c *gin.Context) {
	ref := c.Param("reference")

	b, err := h.service.StatusOf(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown reference number")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking": BookingStatusResponse{
			ReferenceNumber: b.ReferenceNumber,
			Status:          string(b.Status),
			EventTitle:      b.EventTitle,
			EventDate:       b.EventDate.Format("2006-01-02"),
			StartTime:       b.StartTime.String(),
			EndTime:         b.EndTime.String(),
			AdminResponse:   b.AdminResponse,
		},
	})
}
