package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// BookingRequest is the central entity. BookingID is the long unguessable
// identifier used in admin links; ReferenceNumber is the short public one a
// requester uses to check status.
type BookingRequest struct {
	ID              int64         `json:"id"`
	BookingID       string        `json:"booking_id"`
	ReferenceNumber string        `json:"reference_number"`
	UserName        string        `json:"user_name" validate:"required,min=2,max=100"`
	UserEmail       string        `json:"user_email" validate:"required,email"`
	VenueID         int64         `json:"venue_id" validate:"required"`
	EventDate       time.Time     `json:"event_date"`
	StartTime       ClockTime     `json:"start_time"`
	EndTime         ClockTime     `json:"end_time"`
	EventTitle      string        `json:"event_title" validate:"required,min=5,max=200"`
	EventDesc       string        `json:"event_description,omitempty" gorm:"type:text"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	ProcessedAt     *time.Time    `json:"processed_at,omitempty"`
	AdminResponse   string        `json:"admin_response,omitempty"`
	IsProcessed     bool          `json:"is_processed"`

	Venue *Venue `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
}

// Slot returns the booking's half-open time interval.
func (b *BookingRequest) Slot() TimeSlot {
	return TimeSlot{Start: b.StartTime, End: b.EndTime}
}

// FirstConflict scans approved bookings for one whose interval overlaps slot,
// skipping exceptBookingID (the booking being decided, when re-checking at
// approval time). Only approved rows are ever passed in; pending and rejected
// bookings impose no exclusion.
func FirstConflict(slot TimeSlot, approved []BookingRequest, exceptBookingID string) *BookingRequest {
	for i := range approved {
		if approved[i].BookingID == exceptBookingID {
			continue
		}
		if slot.Overlaps(approved[i].Slot()) {
			return &approved[i]
		}
	}
	return nil
}

// SlotConflictError names the approved window the request collides with so
// callers can suggest alternatives.
type SlotConflictError struct {
	VenueID   int64
	EventDate time.Time
	Window    TimeSlot
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with approved booking %s-%s on %s",
		e.Window.Start, e.Window.End, e.EventDate.Format("2006-01-02"))
}
