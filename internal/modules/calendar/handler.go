package calendar

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the calendar export endpoints. The callback lives at
// the root because its path is registered with Google as the redirect URI.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, root *gin.Engine) {
	api.GET("/bookings/:reference/calendar", h.StartExport)
	root.GET("/oauth2callback", h.OAuthCallback)
}

// StartExport handles GET /api/v1/bookings/:reference/calendar and redirects
// the browser to Google's consent screen.
func (h *Handler) StartExport(c *gin.Context) {
	url, err := h.service.AuthURL(c.Request.Context(), c.Param("reference"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotApproved):
			response.Error(c, http.StatusConflict, "NOT_APPROVED", "Only approved bookings can be added to a calendar")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start calendar export")
		}
		return
	}

	c.Redirect(http.StatusFound, url)
}

// OAuthCallback handles GET /oauth2callback after the user grants access.
func (h *Handler) OAuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		response.Error(c, http.StatusBadRequest, "OAUTH_DENIED", "Google authorization was not granted")
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_CALLBACK", "Missing state or code parameter")
		return
	}

	booking, link, err := h.service.HandleCallback(c.Request.Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidState):
			response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Authorization session expired, please try again")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusBadGateway, "CALENDAR_ERROR", "Failed to create the calendar event")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reference":  booking.ReferenceNumber,
		"event_link": link,
		"message":    "Event added to your Google Calendar",
	})
}
