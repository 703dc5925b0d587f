package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebook/internal/domain"
)

type recordingMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	return m.err
}

func sampleBooking(status domain.BookingStatus) *domain.BookingRequest {
	start, _ := domain.ParseClock("10:00")
	end, _ := domain.ParseClock("12:30")
	return &domain.BookingRequest{
		BookingID:       "7d5d25a2-0e1f-4a3d-9b58-1d41f4c7d6aa",
		ReferenceNumber: "VB482913",
		UserName:        "Brian Otieno",
		UserEmail:       "brian@example.com",
		EventDate:       time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		EndTime:         end,
		EventTitle:      "Robotics club demo day",
		Status:          status,
		AdminResponse:   "Request approved by admin",
	}
}

func TestNotifyAdmin(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "admin@tum.ac.ke", "http://localhost:8080/")

	err := svc.NotifyAdmin(context.Background(), sampleBooking(domain.BookingPending), &domain.Venue{Name: "Main Auditorium"})
	require.NoError(t, err)

	assert.Equal(t, "admin@tum.ac.ke", mailer.to)
	assert.Equal(t, "New Booking Request - VB482913", mailer.subject)
	assert.Contains(t, mailer.body, "Main Auditorium")
	assert.Contains(t, mailer.body, "Brian Otieno")
	assert.Contains(t, mailer.body, "10:00 - 12:30")
	// trailing slash on the base URL must not produce a double slash
	assert.Contains(t, mailer.body, "http://localhost:8080/api/v1/admin/review/7d5d25a2-0e1f-4a3d-9b58-1d41f4c7d6aa")
}

func TestNotifyUser_Approved(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "admin@tum.ac.ke", "http://localhost:8080")

	err := svc.NotifyUser(context.Background(), sampleBooking(domain.BookingApproved), &domain.Venue{Name: "ICT Boardroom"})
	require.NoError(t, err)

	assert.Equal(t, "brian@example.com", mailer.to)
	assert.Equal(t, "Booking Request Approved - VB482913", mailer.subject)
	assert.Contains(t, mailer.body, "approved")
	assert.Contains(t, mailer.body, "Google Calendar")
}

func TestNotifyUser_Rejected(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "admin@tum.ac.ke", "http://localhost:8080")

	b := sampleBooking(domain.BookingRejected)
	b.AdminResponse = "Venue under maintenance that week"

	err := svc.NotifyUser(context.Background(), b, &domain.Venue{Name: "ICT Boardroom"})
	require.NoError(t, err)

	assert.Equal(t, "Booking Request Rejected - VB482913", mailer.subject)
	assert.Contains(t, mailer.body, "Venue under maintenance that week")
	assert.NotContains(t, mailer.body, "Google Calendar")
}

func TestNotifyUser_MailerFailurePropagates(t *testing.T) {
	mailer := &recordingMailer{err: assert.AnError}
	svc := NewService(mailer, "admin@tum.ac.ke", "http://localhost:8080")

	err := svc.NotifyUser(context.Background(), sampleBooking(domain.BookingApproved), &domain.Venue{Name: "ICT Boardroom"})
	assert.Error(t, err)
}
