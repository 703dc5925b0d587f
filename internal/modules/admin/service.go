package admin

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/logger"
)

const (
	defaultApproveResponse = "Request approved by admin"
	defaultRejectResponse  = "Request rejected by admin"
)

type Service struct {
	bookings BookingRepository
	venues   VenueRepository
	notifs   NotificationSender
	log      *logger.Logger
}

func NewService(
	bookings BookingRepository,
	venues VenueRepository,
	notifs NotificationSender,
	log *logger.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		venues:   venues,
		notifs:   notifs,
		log:      log,
	}
}

// -------------------- Review / decide --------------------

// Review loads one booking by its unguessable id for the admin review page.
func (s *Service) Review(ctx context.Context, bookingID string) (*domain.BookingRequest, *domain.Venue, error) {
	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	v, err := s.venues.GetByID(ctx, b.VenueID)
	if err != nil {
		return nil, nil, err
	}
	return b, v, nil
}

// Decide performs the single terminal transition on a booking. The approval
// path re-runs the availability check against other approved bookings before
// committing; a conflict leaves the booking pending for the operator to
// resolve. The is_processed check-and-set is one conditional update, so of
// two concurrent decisions exactly one wins. Returns the updated booking and
// whether the user notification went out.
func (s *Service) Decide(ctx context.Context, bookingID string, req DecideRequest) (*domain.BookingRequest, bool, error) {
	var status domain.BookingStatus
	var defaultResponse string
	switch req.Action {
	case ActionApprove:
		status = domain.BookingApproved
		defaultResponse = defaultApproveResponse
	case ActionReject:
		status = domain.BookingRejected
		defaultResponse = defaultRejectResponse
	default:
		return nil, false, ErrInvalidAction
	}

	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	if b.IsProcessed {
		return nil, false, ErrAlreadyProcessed
	}

	if status == domain.BookingApproved {
		if err := s.recheckAvailability(ctx, b); err != nil {
			return nil, false, err
		}
	}

	response := req.Comments
	if response == "" {
		response = defaultResponse
	}

	updated, err := s.bookings.MarkProcessed(ctx, b.BookingID, status, response, time.Now().UTC())
	if err != nil {
		// Another approval slipped in between the re-check and the commit;
		// the postgres exclusion constraint is the last line of defense.
		if isApprovedOverlapViolation(err) {
			return nil, false, s.conflictFor(ctx, b)
		}
		return nil, false, err
	}
	if !updated {
		return nil, false, ErrAlreadyProcessed
	}

	b, err = s.bookings.GetByBookingID(ctx, b.BookingID)
	if err != nil {
		return nil, false, err
	}

	notified := s.notifyUser(ctx, b)
	return b, notified, nil
}

func (s *Service) recheckAvailability(ctx context.Context, b *domain.BookingRequest) error {
	approved, err := s.bookings.ListApproved(ctx, b.VenueID, b.EventDate)
	if err != nil {
		return err
	}
	if c := domain.FirstConflict(b.Slot(), approved, b.BookingID); c != nil {
		return &domain.SlotConflictError{
			VenueID:   b.VenueID,
			EventDate: b.EventDate,
			Window:    c.Slot(),
		}
	}
	return nil
}

// conflictFor rebuilds a SlotConflictError after a constraint violation so the
// caller still learns which approved window it collided with.
func (s *Service) conflictFor(ctx context.Context, b *domain.BookingRequest) error {
	window := b.Slot()
	if approved, err := s.bookings.ListApproved(ctx, b.VenueID, b.EventDate); err == nil {
		if c := domain.FirstConflict(b.Slot(), approved, b.BookingID); c != nil {
			window = c.Slot()
		}
	}
	return &domain.SlotConflictError{
		VenueID:   b.VenueID,
		EventDate: b.EventDate,
		Window:    window,
	}
}

func isApprovedOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23P01 = exclusion_violation
	return pgErr.Code == "23P01" && pgErr.ConstraintName == "idx_no_approved_overlap"
}

func (s *Service) notifyUser(ctx context.Context, b *domain.BookingRequest) bool {
	if s.notifs == nil {
		return false
	}
	v, err := s.venues.GetByID(ctx, b.VenueID)
	if err != nil {
		s.log.Warn("user notification skipped, venue lookup failed",
			zap.String("booking_id", b.BookingID),
			zap.Error(err))
		return false
	}
	if err := s.notifs.NotifyUser(ctx, b, v); err != nil {
		s.log.Warn("user notification failed",
			zap.String("booking_id", b.BookingID),
			zap.Error(err))
		return false
	}
	return true
}

// -------------------- Pending queue --------------------

func (s *Service) ListPending(ctx context.Context, page, limit int) ([]domain.BookingRequest, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	bookings, total, err := s.bookings.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, int(total), nil
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	var total int64
	if err := s.bookings.DB().WithContext(ctx).Table("booking_requests").Count(&total).Error; err != nil {
		return nil, err
	}

	counts := map[domain.BookingStatus]int64{}
	for _, st := range []domain.BookingStatus{domain.BookingPending, domain.BookingApproved, domain.BookingRejected} {
		var n int64
		if err := s.bookings.DB().WithContext(ctx).
			Table("booking_requests").
			Where("status = ?", string(st)).
			Count(&n).Error; err != nil {
			return nil, err
		}
		counts[st] = n
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var todayBookings int64
	if err := s.bookings.DB().WithContext(ctx).
		Table("booking_requests").
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&todayBookings).Error; err != nil {
		return nil, err
	}

	recent, err := s.bookings.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	var venueStats []VenueStat
	if err := s.bookings.DB().WithContext(ctx).
		Table("booking_requests b").
		Select("v.name AS venue_name, COUNT(b.id) AS booking_count").
		Joins("JOIN venues v ON v.id = b.venue_id").
		Group("v.id, v.name").
		Order("booking_count DESC").
		Scan(&venueStats).Error; err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalBookings:    int(total),
		PendingBookings:  int(counts[domain.BookingPending]),
		ApprovedBookings: int(counts[domain.BookingApproved]),
		RejectedBookings: int(counts[domain.BookingRejected]),
		TodayBookings:    int(todayBookings),
		RecentBookings:   recent,
		VenueStats:       venueStats,
	}, nil
}

// -------------------- Export --------------------

// ExportCSV streams every booking as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.bookings.ListAllForExport(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Reference Number", "Customer Name", "Email", "Event Title", "Venue",
		"Event Date", "Start Time", "End Time", "Status", "Created At",
		"Processed At", "Admin Response",
	}); err != nil {
		return err
	}

	for _, r := range rows {
		processedAt := ""
		if r.ProcessedAt != nil {
			processedAt = r.ProcessedAt.Format("2006-01-02 15:04:05")
		}
		rec := []string{
			r.ReferenceNumber,
			r.UserName,
			r.UserEmail,
			r.EventTitle,
			r.VenueName,
			r.EventDate.Format("2006-01-02"),
			domain.ClockTime(r.StartMinute).String(),
			domain.ClockTime(r.EndMinute).String(),
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			processedAt,
			r.AdminResponse,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
