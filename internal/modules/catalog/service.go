package catalog

import (
	"context"
	"time"

	"venuebook/internal/domain"
)

type Service struct {
	venues   VenueRepository
	bookings BookingRepository

	openTime  domain.ClockTime
	closeTime domain.ClockTime
}

func NewService(venues VenueRepository, bookings BookingRepository, openTime, closeTime domain.ClockTime) *Service {
	return &Service{
		venues:    venues,
		bookings:  bookings,
		openTime:  openTime,
		closeTime: closeTime,
	}
}

// ListVenues returns every venue. When date is non-nil, each item also
// carries a flag saying whether the venue has at least one approved
// booking on that date.
func (s *Service) ListVenues(ctx context.Context, date *time.Time) ([]VenueListItem, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, err
	}

	var bookedIDs map[int64]bool
	if date != nil {
		ids, err := s.bookings.ApprovedVenueIDs(ctx, *date)
		if err != nil {
			return nil, err
		}
		bookedIDs = make(map[int64]bool, len(ids))
		for _, id := range ids {
			bookedIDs[id] = true
		}
	}

	items := make([]VenueListItem, 0, len(venues))
	for _, v := range venues {
		item := VenueListItem{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Capacity:    v.Capacity,
			Location:    v.Location,
			Amenities:   v.Amenities,
		}
		if bookedIDs != nil {
			booked := bookedIDs[v.ID]
			item.Booked = &booked
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// Availability lists the approved windows occupying a venue on a date,
// ordered by start time, together with the bookable day boundaries.
func (s *Service) Availability(ctx context.Context, venueID int64, date time.Time) (*AvailabilityResponse, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	approved, err := s.bookings.ListApproved(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]BusySlot, 0, len(approved))
	for _, b := range approved {
		busy = append(busy, BusySlot{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	return &AvailabilityResponse{
		VenueID:   venueID,
		Date:      date.Format("2006-01-02"),
		OpenTime:  s.openTime,
		CloseTime: s.closeTime,
		BusySlots: busy,
	}, nil
}
