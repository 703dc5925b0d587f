package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/review/:booking_id", h.Review)
	admin.POST("/review/:booking_id", h.Decide)

	admin.GET("/pending", h.GetPending)
	admin.GET("/dashboard", h.GetDashboard)
	admin.GET("/bookings/export", h.ExportBookings)
}

func (h *Handler) Review(c *gin.Context) {
	bookingID := c.Param("booking_id")

	b, v, err := h.service.Review(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown booking")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": toReviewDTO(b, v)})
}

func (h *Handler) Decide(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, notified, err := h.service.Decide(c.Request.Context(), bookingID, req)
	if err != nil {
		var conflict *domain.SlotConflictError
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown booking")

		case errors.Is(err, ErrInvalidAction):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Action must be approve or reject")

		case errors.Is(err, ErrAlreadyProcessed):
			response.Error(c, http.StatusConflict, "ALREADY_PROCESSED", "This booking has already been processed; no further action is possible")

		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, "SLOT_CONFLICT",
				"Another overlapping booking was approved first; this request remains pending",
				gin.H{
					"conflicting_start": conflict.Window.Start.String(),
					"conflicting_end":   conflict.Window.End.String(),
				})

		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process decision")
		}
		return
	}

	data := gin.H{
		"booking": gin.H{
			"booking_id":       b.BookingID,
			"reference_number": b.ReferenceNumber,
			"status":           b.Status,
			"admin_response":   b.AdminResponse,
			"processed_at":     b.ProcessedAt,
		},
	}
	if notified {
		response.Success(c, http.StatusOK, data)
		return
	}
	response.SuccessWithWarning(c, http.StatusOK, data, "decision saved, but the notification email could not be sent")
}

func (h *Handler) GetPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bookings, total, err := h.service.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pending bookings")
		return
	}

	response.Success(c, http.StatusOK, PendingListResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ExportBookings(c *gin.Context) {
	filename := fmt.Sprintf("venue_bookings_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export bookings")
		return
	}
	c.Status(http.StatusOK)
}

func toReviewDTO(b *domain.BookingRequest, v *domain.Venue) BookingReviewDTO {
	return BookingReviewDTO{
		BookingID:       b.BookingID,
		ReferenceNumber: b.ReferenceNumber,
		UserName:        b.UserName,
		UserEmail:       b.UserEmail,
		VenueName:       v.Name,
		EventTitle:      b.EventTitle,
		EventDesc:       b.EventDesc,
		EventDate:       b.EventDate.Format("2006-01-02"),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		Status:          string(b.Status),
		IsProcessed:     b.IsProcessed,
		AdminResponse:   b.AdminResponse,
	}
}
