package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/logger"
)

const stateTTL = 10 * time.Minute

// Service drives the Google Calendar export flow for approved bookings.
type Service struct {
	cfg      *oauth2.Config
	client   GoogleClient
	bookings BookingRepository
	venues   VenueRepository
	states   *stateStore
	log      *logger.Logger
}

func NewService(
	cfg *oauth2.Config,
	client GoogleClient,
	bookings BookingRepository,
	venues VenueRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		bookings: bookings,
		venues:   venues,
		states:   newStateStore(stateTTL),
		log:      log,
	}
}

// AuthURL starts the OAuth flow for a booking. Only approved bookings can
// be exported to a calendar.
func (s *Service) AuthURL(ctx context.Context, reference string) (string, error) {
	b, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if b.Status != domain.BookingApproved {
		return "", ErrNotApproved
	}

	state, err := s.states.Issue(b.BookingID)
	if err != nil {
		return "", err
	}

	url := s.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
	return url, nil
}

// HandleCallback finishes the OAuth flow: it resolves the state token back
// to its booking, exchanges the authorization code, and inserts the event
// into the user's primary calendar. It returns the booking and the link to
// the created event.
func (s *Service) HandleCallback(ctx context.Context, state, code string) (*domain.BookingRequest, string, error) {
	bookingID, ok := s.states.Claim(state)
	if !ok {
		return nil, "", ErrInvalidState
	}

	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	venue, err := s.venues.GetByID(ctx, b.VenueID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.client.Exchange(ctx, code)
	if err != nil {
		return b, "", fmt.Errorf("exchange authorization code: %w", err)
	}

	link, err := s.client.InsertEvent(ctx, token, buildEvent(b, venue))
	if err != nil {
		s.log.Error("calendar event insert failed",
			zap.String("reference", b.ReferenceNumber),
			zap.Error(err),
		)
		return b, "", fmt.Errorf("create calendar event: %w", err)
	}

	return b, link, nil
}

func buildEvent(b *domain.BookingRequest, v *domain.Venue) *EventInput {
	description := b.EventDesc
	if description != "" {
		description += "\n"
	}
	description += fmt.Sprintf("Venue: %s\nReference: %s", v.Name, b.ReferenceNumber)

	return &EventInput{
		Summary:     b.EventTitle,
		Description: description,
		Location:    v.Location,
		Start:       eventDateTime(b.EventDate, b.StartTime),
		End:         eventDateTime(b.EventDate, b.EndTime),
	}
}

func eventDateTime(date time.Time, t domain.ClockTime) string {
	return date.Add(time.Duration(t) * time.Minute).Format(time.RFC3339)
}
