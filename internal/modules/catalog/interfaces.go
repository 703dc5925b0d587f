package catalog

import (
	"context"
	"time"

	"venuebook/internal/domain"
)

type VenueRepository interface {
	List(ctx context.Context) ([]domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

type BookingRepository interface {
	ListApproved(ctx context.Context, venueID int64, date time.Time) ([]domain.BookingRequest, error)
	ApprovedVenueIDs(ctx context.Context, date time.Time) ([]int64, error)
}
