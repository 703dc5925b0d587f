package catalog

import "venuebook/internal/domain"

type VenueListItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	Amenities   string   `json:"amenities,omitempty"`

	// Booked is only meaningful when the list was filtered by date.
	Booked *bool `json:"booked,omitempty"`
}

type BusySlot struct {
	StartTime domain.ClockTime `json:"start_time"`
	EndTime   domain.ClockTime `json:"end_time"`
}

type AvailabilityResponse struct {
	VenueID   int64            `json:"venue_id"`
	Date      string           `json:"date"`
	OpenTime  domain.ClockTime `json:"open_time"`
	CloseTime domain.ClockTime `json:"close_time"`
	BusySlots []BusySlot       `json:"busy_slots"`
}
