package repository

import (
	"context"
	"time"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingRow struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	BookingID       string     `gorm:"column:booking_id;size:36;not null;uniqueIndex"`
	ReferenceNumber string     `gorm:"column:reference_number;size:20;not null;uniqueIndex"`
	UserName        string     `gorm:"column:user_name;size:100;not null"`
	UserEmail       string     `gorm:"column:user_email;size:120;not null"`
	VenueID         int64      `gorm:"column:venue_id;not null;index:idx_venue_event_date"`
	EventDate       time.Time  `gorm:"column:event_date;not null;index:idx_venue_event_date"`
	StartMinute     int        `gorm:"column:start_minute;not null"`
	EndMinute       int        `gorm:"column:end_minute;not null"`
	EventTitle      string     `gorm:"column:event_title;size:200;not null"`
	EventDesc       string     `gorm:"column:event_description;type:text"`
	Status          string     `gorm:"column:status;size:20;not null;index"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	ProcessedAt     *time.Time `gorm:"column:processed_at"`
	AdminResponse   string     `gorm:"column:admin_response;type:text"`
	IsProcessed     bool       `gorm:"column:is_processed;not null;default:false"`
}

func (bookingRow) TableName() string { return "booking_requests" }

func toDomainBooking(m bookingRow) *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:              m.ID,
		BookingID:       m.BookingID,
		ReferenceNumber: m.ReferenceNumber,
		UserName:        m.UserName,
		UserEmail:       m.UserEmail,
		VenueID:         m.VenueID,
		EventDate:       m.EventDate,
		StartTime:       domain.ClockTime(m.StartMinute),
		EndTime:         domain.ClockTime(m.EndMinute),
		EventTitle:      m.EventTitle,
		EventDesc:       m.EventDesc,
		Status:          domain.BookingStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		ProcessedAt:     m.ProcessedAt,
		AdminResponse:   m.AdminResponse,
		IsProcessed:     m.IsProcessed,
	}
}

func toBookingRow(b *domain.BookingRequest) bookingRow {
	return bookingRow{
		ID:              b.ID,
		BookingID:       b.BookingID,
		ReferenceNumber: b.ReferenceNumber,
		UserName:        b.UserName,
		UserEmail:       b.UserEmail,
		VenueID:         b.VenueID,
		EventDate:       normalizeDate(b.EventDate),
		StartMinute:     int(b.StartTime),
		EndMinute:       int(b.EndTime),
		EventTitle:      b.EventTitle,
		EventDesc:       b.EventDesc,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		ProcessedAt:     b.ProcessedAt,
		AdminResponse:   b.AdminResponse,
		IsProcessed:     b.IsProcessed,
	}
}

// Dates are stored at midnight UTC so (venue_id, event_date) equality works
// regardless of how the caller built the time.Time.
func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

func (r *BookingRepository) Create(ctx context.Context, b *domain.BookingRequest) error {
	m := toBookingRow(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.BookingRequest, error) {
	var m bookingRow
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.BookingRequest, error) {
	var m bookingRow
	tx := r.db.WithContext(ctx).Where("reference_number = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ReferenceExists(ctx context.Context, ref string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingRow{}).
		Where("reference_number = ?", ref).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// ListApproved returns every approved booking for the (venue, date) pair,
// the contended set the availability checker runs against.
func (r *BookingRepository) ListApproved(ctx context.Context, venueID int64, date time.Time) ([]domain.BookingRequest, error) {
	var rows []bookingRow
	tx := r.db.WithContext(ctx).
		Where("venue_id = ? AND event_date = ? AND status = ?",
			venueID, normalizeDate(date), string(domain.BookingApproved)).
		Order("start_minute").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ApprovedVenueIDs returns the ids of venues that hold at least one approved
// booking on the given date.
func (r *BookingRepository) ApprovedVenueIDs(ctx context.Context, date time.Time) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).Model(&bookingRow{}).
		Distinct("venue_id").
		Where("event_date = ? AND status = ?", normalizeDate(date), string(domain.BookingApproved)).
		Pluck("venue_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

// MarkProcessed is the terminal transition: one conditional update keyed on
// is_processed = false. It reports false when another decision already won,
// which is the AlreadyProcessed signal. On postgres an approved row that
// overlaps another approval additionally trips the idx_no_approved_overlap
// exclusion constraint and surfaces as a *pgconn.PgError.
func (r *BookingRepository) MarkProcessed(ctx context.Context, bookingID string, status domain.BookingStatus, adminResponse string, processedAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingRow{}).
		Where("booking_id = ? AND is_processed = ?", bookingID, false).
		Updates(map[string]any{
			"status":         string(status),
			"admin_response": adminResponse,
			"processed_at":   processedAt,
			"is_processed":   true,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListPending returns unprocessed bookings, oldest first, paginated.
func (r *BookingRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.BookingRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingRow{}).
		Where("status = ?", string(domain.BookingPending))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingRow
	if err := q.Order("created_at").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// Recent returns the newest bookings for the dashboard.
func (r *BookingRepository) Recent(ctx context.Context, limit int) ([]domain.BookingRequest, error) {
	var rows []bookingRow
	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// BookingExportRow is one CSV export line: the booking plus its venue name.
type BookingExportRow struct {
	ReferenceNumber string
	UserName        string
	UserEmail       string
	EventTitle      string
	VenueName       string
	EventDate       time.Time
	StartMinute     int
	EndMinute       int
	Status          string
	CreatedAt       time.Time
	ProcessedAt     *time.Time
	AdminResponse   string
}

func (r *BookingRepository) ListAllForExport(ctx context.Context) ([]BookingExportRow, error) {
	var rows []BookingExportRow
	tx := r.db.WithContext(ctx).
		Table("booking_requests b").
		Select(`b.reference_number, b.user_name, b.user_email, b.event_title,
			v.name AS venue_name, b.event_date, b.start_minute, b.end_minute,
			b.status, b.created_at, b.processed_at, b.admin_response`).
		Joins("JOIN venues v ON v.id = b.venue_id").
		Order("b.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
