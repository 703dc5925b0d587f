package admin

import (
	"context"
	"time"

	"venuebook/internal/domain"
	"venuebook/internal/repository"

	"gorm.io/gorm"
)

type BookingRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.BookingRequest, error)
	ListApproved(ctx context.Context, venueID int64, date time.Time) ([]domain.BookingRequest, error)
	MarkProcessed(ctx context.Context, bookingID string, status domain.BookingStatus, adminResponse string, processedAt time.Time) (bool, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.BookingRequest, int64, error)
	Recent(ctx context.Context, limit int) ([]domain.BookingRequest, error)
	ListAllForExport(ctx context.Context) ([]repository.BookingExportRow, error)
	DB() *gorm.DB
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

type NotificationSender interface {
	NotifyUser(ctx context.Context, b *domain.BookingRequest, v *domain.Venue) error
}
