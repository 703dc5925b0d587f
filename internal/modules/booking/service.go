package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/pkg/reference"
	"venuebook/internal/pkg/validator"
)

// BookableHours bounds the wall-clock window submissions may request.
type BookableHours struct {
	Open  domain.ClockTime
	Close domain.ClockTime
}

type Service struct {
	bookings BookingRepository
	venues   VenueRepository
	notifs   NotificationSender
	hours    BookableHours
	log      *logger.Logger
}

func NewService(
	bookings BookingRepository,
	venues VenueRepository,
	notifs NotificationSender,
	hours BookableHours,
	log *logger.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		venues:   venues,
		notifs:   notifs,
		hours:    hours,
		log:      log,
	}
}

// Submit validates the request, runs the availability fast-fail, allocates
// identifiers and persists a pending booking. The admin notification is
// best-effort: the booking is already committed when it fires.
func (s *Service) Submit(ctx context.Context, req CreateBookingRequest) (*domain.BookingRequest, error) {
	date, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrValidation
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrValidation
	}

	slot, err := s.parseSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	b := &domain.BookingRequest{
		UserName:   req.UserName,
		UserEmail:  req.UserEmail,
		VenueID:    req.VenueID,
		EventDate:  date,
		StartTime:  slot.Start,
		EndTime:    slot.End,
		EventTitle: req.EventTitle,
		EventDesc:  req.EventDescription,
		Status:     domain.BookingPending,
	}
	if fieldErrs := validator.Validate(b); fieldErrs != nil {
		return nil, ErrValidation
	}

	venue, err := s.venues.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	// Fast-fail only: pending requests never block each other, and the
	// authoritative check re-runs inside the approval transition.
	approved, err := s.bookings.ListApproved(ctx, req.VenueID, date)
	if err != nil {
		return nil, err
	}
	if c := domain.FirstConflict(slot, approved, ""); c != nil {
		return nil, &domain.SlotConflictError{
			VenueID:   req.VenueID,
			EventDate: date,
			Window:    c.Slot(),
		}
	}

	ref, err := reference.GenerateUnique(func(candidate string) (bool, error) {
		return s.bookings.ReferenceExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	b.BookingID = uuid.NewString()
	b.ReferenceNumber = ref
	b.CreatedAt = time.Now().UTC()

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyAdmin(ctx, b, venue); err != nil {
			s.log.Warn("admin notification failed",
				zap.String("reference", b.ReferenceNumber),
				zap.Error(err))
		}
	}

	return b, nil
}

// StatusOf looks a booking up by its public reference number.
func (s *Service) StatusOf(ctx context.Context, ref string) (*domain.BookingRequest, error) {
	b, err := s.bookings.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) parseSlot(start, end string) (domain.TimeSlot, error) {
	st, err := domain.ParseClock(start)
	if err != nil {
		return domain.TimeSlot{}, ErrValidation
	}
	en, err := domain.ParseClock(end)
	if err != nil {
		return domain.TimeSlot{}, ErrValidation
	}
	if !st.OnHalfHour() || !en.OnHalfHour() {
		return domain.TimeSlot{}, ErrValidation
	}
	if st >= en {
		return domain.TimeSlot{}, ErrValidation
	}
	if st < s.hours.Open || en > s.hours.Close {
		return domain.TimeSlot{}, ErrValidation
	}
	return domain.TimeSlot{Start: st, End: en}, nil
}
