package notification

import (
	"context"
	"fmt"
	"strings"

	"venuebook/internal/domain"
)

// Service turns booking lifecycle events into emails. It satisfies the
// notification interfaces of both the booking and admin modules.
type Service struct {
	mailer     Mailer
	adminEmail string
	baseURL    string
}

func NewService(mailer Mailer, adminEmail, baseURL string) *Service {
	return &Service{
		mailer:     mailer,
		adminEmail: adminEmail,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NotifyAdmin emails the administrator about a freshly submitted request.
func (s *Service) NotifyAdmin(ctx context.Context, b *domain.BookingRequest, v *domain.Venue) error {
	body, err := render(adminNewRequestTmpl, adminNewRequestData{
		Reference:  b.ReferenceNumber,
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		VenueName:  v.Name,
		EventDate:  b.EventDate.Format("2006-01-02"),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		EventTitle: b.EventTitle,
		ReviewURL:  fmt.Sprintf("%s/api/v1/admin/review/%s", s.baseURL, b.BookingID),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Booking Request - %s", b.ReferenceNumber)
	return s.mailer.Send(ctx, s.adminEmail, subject, body)
}

// NotifyUser emails the requester after an admin decision.
func (s *Service) NotifyUser(ctx context.Context, b *domain.BookingRequest, v *domain.Venue) error {
	approved := b.Status == domain.BookingApproved

	statusTitle := "Rejected"
	if approved {
		statusTitle = "Approved"
	}

	body, err := render(userDecisionTmpl, userDecisionData{
		UserName:      b.UserName,
		Reference:     b.ReferenceNumber,
		VenueName:     v.Name,
		EventDate:     b.EventDate.Format("2006-01-02"),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Status:        string(b.Status),
		StatusTitle:   statusTitle,
		AdminResponse: b.AdminResponse,
		Approved:      approved,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Booking Request %s - %s", statusTitle, b.ReferenceNumber)
	return s.mailer.Send(ctx, b.UserEmail, subject, body)
}
