package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"venuebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public venue routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	venues := r.Group("/venues")
	{
		venues.GET("", h.ListVenues)
		venues.GET("/:id", h.GetVenue)
		venues.GET("/:id/availability", h.GetAvailability)
	}
}

// ListVenues handles GET /api/v1/venues?date=2006-01-02
func (h *Handler) ListVenues(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
			return
		}
		date = &parsed
	}

	items, err := h.service.ListVenues(c.Request.Context(), date)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list venues")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"venues": items})
}

// GetVenue handles GET /api/v1/venues/:id
func (h *Handler) GetVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid venue ID")
		return
	}

	venue, err := h.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "VENUE_NOT_FOUND", "Venue not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load venue")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"venue": venue})
}

// GetAvailability handles GET /api/v1/venues/:id/availability?date=2006-01-02
func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid venue ID")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
		return
	}

	availability, err := h.service.Availability(c.Request.Context(), id, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "VENUE_NOT_FOUND", "Venue not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, availability)
}
