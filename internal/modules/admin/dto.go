package admin

import "venuebook/internal/domain"

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type DecideRequest struct {
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
}

type BookingReviewDTO struct {
	BookingID       string `json:"booking_id"`
	ReferenceNumber string `json:"reference_number"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	VenueName       string `json:"venue_name"`
	EventTitle      string `json:"event_title"`
	EventDesc       string `json:"event_description,omitempty"`
	EventDate       string `json:"event_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	IsProcessed     bool   `json:"is_processed"`
	AdminResponse   string `json:"admin_response,omitempty"`
}

type PendingListResponse struct {
	Bookings []domain.BookingRequest `json:"bookings"`
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	Limit    int                     `json:"limit"`
}

type StatisticsResponse struct {
	TotalBookings    int                     `json:"total_bookings"`
	PendingBookings  int                     `json:"pending_bookings"`
	ApprovedBookings int                     `json:"approved_bookings"`
	RejectedBookings int                     `json:"rejected_bookings"`
	TodayBookings    int                     `json:"today_bookings"`
	RecentBookings   []domain.BookingRequest `json:"recent_bookings"`
	VenueStats       []VenueStat             `json:"venue_stats"`
}

type VenueStat struct {
	VenueName    string `json:"venue_name"`
	BookingCount int    `json:"booking_count"`
}
