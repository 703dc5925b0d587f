package booking

import (
	"context"
	"time"

	"venuebook/internal/domain"
)

// BookingRepository is the store surface the submission flow needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.BookingRequest) error
	GetByReference(ctx context.Context, ref string) (*domain.BookingRequest, error)
	ReferenceExists(ctx context.Context, ref string) (bool, error)
	ListApproved(ctx context.Context, venueID int64, date time.Time) ([]domain.BookingRequest, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// NotificationSender alerts the administrator about a new request. Failure is
// never fatal to the submission that triggered it.
type NotificationSender interface {
	NotifyAdmin(ctx context.Context, b *domain.BookingRequest, v *domain.Venue) error
}
