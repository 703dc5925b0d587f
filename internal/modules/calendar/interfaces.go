package calendar

import (
	"context"

	"golang.org/x/oauth2"

	"venuebook/internal/domain"
)

type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.BookingRequest, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.BookingRequest, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// GoogleClient is the thin slice of the Google OAuth and Calendar APIs the
// service needs. The real implementation talks to Google; tests substitute
// a fake.
type GoogleClient interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	InsertEvent(ctx context.Context, token *oauth2.Token, event *EventInput) (htmlLink string, err error)
}

// EventInput carries the fields of the calendar event to create.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       string
	End         string
}
