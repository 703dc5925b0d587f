package calendar

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const calendarScope = "https://www.googleapis.com/auth/calendar"

// NewOAuthConfig builds the Google OAuth configuration from credentials.
// The configuration lives in memory only; nothing is written to disk.
func NewOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{calendarScope},
		Endpoint:     google.Endpoint,
	}
}

type googleClient struct {
	cfg *oauth2.Config
}

// NewGoogleClient wraps an OAuth config as the calendar client used in
// production.
func NewGoogleClient(cfg *oauth2.Config) GoogleClient {
	return &googleClient{cfg: cfg}
}

func (g *googleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.cfg.Exchange(ctx, code)
}

func (g *googleClient) InsertEvent(ctx context.Context, token *oauth2.Token, event *EventInput) (string, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(g.cfg.TokenSource(ctx, token)))
	if err != nil {
		return "", err
	}

	created, err := svc.Events.Insert("primary", &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       &gcal.EventDateTime{DateTime: event.Start, TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: event.End, TimeZone: "UTC"},
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.HtmlLink, nil
}
