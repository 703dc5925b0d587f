package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"venuebook/internal/database"
	"venuebook/internal/domain"
	"venuebook/internal/modules/admin"
	"venuebook/internal/modules/booking"
	"venuebook/internal/modules/catalog"
	"venuebook/internal/modules/notification"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
)

type E2ETestSuite struct {
	router      *gin.Engine
	db          *gorm.DB
	bookingRepo *repository.BookingRepository
	venues      []domain.Venue
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
	Warning string                 `json:"warning,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	// In-memory SQLite; schema and data vanish with the test
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	venueRepo := repository.NewVenueRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	zlog := &logger.Logger{Logger: zap.NewNop()}

	notifier := notification.NewService(
		notification.NewDevConsoleMailer(zlog),
		"admin@tum.ac.ke",
		"http://localhost:8080",
	)

	open, err := domain.ParseClock("09:00")
	require.NoError(t, err)
	closeAt, err := domain.ParseClock("21:30")
	require.NoError(t, err)

	bookingService := booking.NewService(
		bookingRepo,
		venueRepo,
		notifier,
		booking.BookableHours{Open: open, Close: closeAt},
		zlog,
	)
	catalogService := catalog.NewService(venueRepo, bookingRepo, open, closeAt)
	adminService := admin.NewService(bookingRepo, venueRepo, notifier, zlog)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	booking.NewHandler(bookingService).RegisterRoutes(v1)
	catalog.NewHandler(catalogService).RegisterRoutes(v1)
	admin.NewHandler(adminService).RegisterRoutes(v1.Group("/admin"))

	// Seed two venues
	seeded := []domain.Venue{
		{Name: "TUM Main Hall", Capacity: 500, Location: "Main Campus - Tudor"},
		{Name: "ICT Boardroom", Capacity: 20, Location: "ICT Building, 2nd Floor"},
	}
	for i := range seeded {
		require.NoError(t, venueRepo.Create(context.Background(), &seeded[i]))
	}

	return &E2ETestSuite{
		router:      r,
		db:          db,
		bookingRepo: bookingRepo,
		venues:      seeded,
	}
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
}

func (s *E2ETestSuite) submitBooking(t *testing.T, venueID int64, start, end string) string {
	t.Helper()

	w := s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"user_name":         "Grace Wanjiru",
		"user_email":        "grace@example.com",
		"venue_id":          venueID,
		"event_date":        futureDate(),
		"start_time":        start,
		"end_time":          end,
		"event_title":       "Department strategy briefing",
		"event_description": "Quarterly planning session",
	})
	require.Equal(t, http.StatusCreated, w.Code, "submit failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	b := resp.Data["booking"].(map[string]interface{})
	ref := b["reference_number"].(string)
	require.Regexp(t, `^VB\d{6}$`, ref)
	require.Equal(t, "pending", b["status"])
	return ref
}

// bookingIDFor resolves the admin-facing id from a public reference, the
// way the review link in the admin email carries it.
func (s *E2ETestSuite) bookingIDFor(t *testing.T, ref string) string {
	t.Helper()

	b, err := s.bookingRepo.GetByReference(context.Background(), ref)
	require.NoError(t, err)
	return b.BookingID
}

func (s *E2ETestSuite) decide(t *testing.T, bookingID, action, comments string) *httptest.ResponseRecorder {
	t.Helper()

	return s.makeRequest(t, http.MethodPost, "/api/v1/admin/review/"+bookingID, map[string]interface{}{
		"action":   action,
		"comments": comments,
	})
}

// =============================================================================
// Booking lifecycle: submit, review, approve, check status
// =============================================================================

func TestBookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	venueID := suite.venues[0].ID

	ref := suite.submitBooking(t, venueID, "10:00", "12:00")

	t.Run("status starts pending", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/bookings/"+ref, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "10:00", b["start_time"])
		assert.Equal(t, "12:00", b["end_time"])
	})

	bookingID := suite.bookingIDFor(t, ref)

	t.Run("pending queue lists the booking", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/admin/pending", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.EqualValues(t, 1, resp.Data["total"])
	})

	t.Run("review page shows the booking", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/admin/review/"+bookingID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, ref, b["reference_number"])
	})

	t.Run("approve applies the default response", func(t *testing.T) {
		w := suite.decide(t, bookingID, "approve", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "approved", b["status"])
		assert.Equal(t, "Request approved by admin", b["admin_response"])
	})

	t.Run("status reflects the decision", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/bookings/"+ref, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "approved", b["status"])
		assert.Equal(t, "Request approved by admin", b["admin_response"])
	})

	t.Run("second decision is refused", func(t *testing.T) {
		w := suite.decide(t, bookingID, "reject", "changed my mind")
		require.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_PROCESSED", resp.Error.Code)
	})
}

// =============================================================================
// Conflict handling around the half-open interval rule
// =============================================================================

func TestSlotConflicts(t *testing.T) {
	suite := setupTestSuite(t)
	venueID := suite.venues[0].ID

	refA := suite.submitBooking(t, venueID, "10:00", "12:00")

	t.Run("pending bookings never block a submission", func(t *testing.T) {
		suite.submitBooking(t, venueID, "10:30", "11:30")
	})

	require.Equal(t, http.StatusOK,
		suite.decide(t, suite.bookingIDFor(t, refA), "approve", "").Code)

	t.Run("submission overlapping an approved booking is refused", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
			"user_name":   "Brian Otieno",
			"user_email":  "brian@example.com",
			"venue_id":    venueID,
			"event_date":  futureDate(),
			"start_time":  "11:00",
			"end_time":    "13:00",
			"event_title": "Robotics club demo day",
		})
		require.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SLOT_CONFLICT", resp.Error.Code)

		details := resp.Error.Details.(map[string]interface{})
		assert.Equal(t, "10:00", details["conflicting_start"])
		assert.Equal(t, "12:00", details["conflicting_end"])
	})

	t.Run("adjacent slot on the same venue is accepted", func(t *testing.T) {
		refC := suite.submitBooking(t, venueID, "12:00", "13:00")
		w := suite.decide(t, suite.bookingIDFor(t, refC), "approve", "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("same slot on another venue is accepted", func(t *testing.T) {
		suite.submitBooking(t, suite.venues[1].ID, "10:00", "12:00")
	})
}

func TestApprovalRaceLeavesLoserPending(t *testing.T) {
	suite := setupTestSuite(t)
	venueID := suite.venues[0].ID

	// both submissions pend, then the approvals collide
	refA := suite.submitBooking(t, venueID, "10:00", "12:00")
	refB := suite.submitBooking(t, venueID, "11:00", "13:00")

	require.Equal(t, http.StatusOK,
		suite.decide(t, suite.bookingIDFor(t, refA), "approve", "").Code)

	w := suite.decide(t, suite.bookingIDFor(t, refB), "approve", "")
	require.Equal(t, http.StatusConflict, w.Code)

	resp := parseResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SLOT_CONFLICT", resp.Error.Code)

	// the loser keeps its pending status and can still be rejected
	statusResp := parseResponse(t, suite.makeRequest(t, http.MethodGet, "/api/v1/bookings/"+refB, nil))
	b := statusResp.Data["booking"].(map[string]interface{})
	require.Equal(t, "pending", b["status"])

	w = suite.decide(t, suite.bookingIDFor(t, refB), "reject", "slot taken by an earlier approval")
	assert.Equal(t, http.StatusOK, w.Code)
}

// =============================================================================
// Validation and lookups
// =============================================================================

func TestSubmissionValidation(t *testing.T) {
	suite := setupTestSuite(t)
	venueID := suite.venues[0].ID

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"user_name":   "Grace Wanjiru",
			"user_email":  "grace@example.com",
			"venue_id":    venueID,
			"event_date":  futureDate(),
			"start_time":  "10:00",
			"end_time":    "12:00",
			"event_title": "Department strategy briefing",
		}
	}

	cases := []struct {
		name     string
		mutate   func(m map[string]interface{})
		wantCode string
		status   int
	}{
		{
			name:     "off-grid start time",
			mutate:   func(m map[string]interface{}) { m["start_time"] = "10:15" },
			wantCode: "VALIDATION_ERROR",
			status:   http.StatusBadRequest,
		},
		{
			name:     "end before start",
			mutate:   func(m map[string]interface{}) { m["start_time"] = "12:00"; m["end_time"] = "10:00" },
			wantCode: "VALIDATION_ERROR",
			status:   http.StatusBadRequest,
		},
		{
			name:     "outside bookable hours",
			mutate:   func(m map[string]interface{}) { m["start_time"] = "07:00"; m["end_time"] = "08:00" },
			wantCode: "VALIDATION_ERROR",
			status:   http.StatusBadRequest,
		},
		{
			name:     "past date",
			mutate:   func(m map[string]interface{}) { m["event_date"] = "2020-01-01" },
			wantCode: "VALIDATION_ERROR",
			status:   http.StatusBadRequest,
		},
		{
			name:     "short title",
			mutate:   func(m map[string]interface{}) { m["event_title"] = "Hi" },
			wantCode: "VALIDATION_ERROR",
			status:   http.StatusBadRequest,
		},
		{
			name:     "unknown venue",
			mutate:   func(m map[string]interface{}) { m["venue_id"] = 9999 },
			wantCode: "VENUE_NOT_FOUND",
			status:   http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := base()
			tc.mutate(body)

			w := suite.makeRequest(t, http.MethodPost, "/api/v1/bookings", body)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			resp := parseResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestUnknownLookups(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest(t, http.MethodGet, "/api/v1/bookings/VB000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/admin/review/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.decide(t, "no-such-id", "approve", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/venues/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// Venue catalog and availability
// =============================================================================

func TestVenueCatalogAndAvailability(t *testing.T) {
	suite := setupTestSuite(t)
	venueID := suite.venues[0].ID

	ref := suite.submitBooking(t, venueID, "14:00", "16:00")
	require.Equal(t, http.StatusOK,
		suite.decide(t, suite.bookingIDFor(t, ref), "approve", "").Code)

	t.Run("venue list", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/venues", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		venues := resp.Data["venues"].([]interface{})
		assert.Len(t, venues, 2)
	})

	t.Run("venue list with date flags booked venues", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/venues?date="+futureDate(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		booked := map[string]bool{}
		for _, raw := range resp.Data["venues"].([]interface{}) {
			v := raw.(map[string]interface{})
			booked[v["name"].(string)] = v["booked"].(bool)
		}
		assert.True(t, booked["TUM Main Hall"])
		assert.False(t, booked["ICT Boardroom"])
	})

	t.Run("availability lists the approved window", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/venues/%d/availability?date=%s", venueID, futureDate())
		w := suite.makeRequest(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "09:00", resp.Data["open_time"])
		assert.Equal(t, "21:30", resp.Data["close_time"])

		slots := resp.Data["busy_slots"].([]interface{})
		require.Len(t, slots, 1)
		slot := slots[0].(map[string]interface{})
		assert.Equal(t, "14:00", slot["start_time"])
		assert.Equal(t, "16:00", slot["end_time"])
	})

	t.Run("dashboard counts the decision", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/admin/dashboard", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.EqualValues(t, 1, resp.Data["total_bookings"])
		assert.EqualValues(t, 1, resp.Data["approved_bookings"])
		assert.EqualValues(t, 0, resp.Data["pending_bookings"])
	})

	t.Run("CSV export", func(t *testing.T) {
		w := suite.makeRequest(t, http.MethodGet, "/api/v1/admin/bookings/export", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "venue_bookings_")
		assert.Contains(t, w.Body.String(), "Reference Number")
		assert.Contains(t, w.Body.String(), ref)
	})
}
