package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"venuebook/internal/domain"
)

const (
	defaultHTTPAddr  = ":8080"
	defaultBaseURL   = "http://localhost:8080"
	defaultOpenTime  = "09:00"
	defaultCloseTime = "21:30"
	defaultMailPort  = "587"
)

// Config is the process-wide runtime configuration, read from the
// environment with defaults suitable for local development.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	// BaseURL is the externally visible origin used to build admin review and
	// calendar links embedded in emails.
	BaseURL string

	// Bookable hours: submissions must fall inside [OpenTime, CloseTime].
	OpenTime  domain.ClockTime
	CloseTime domain.ClockTime

	// Outbound email. Empty MailServer selects the console mailer.
	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	AdminEmail   string

	// Google Calendar OAuth. Empty client id disables the calendar routes.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", "venuebook.db")
	cfg.BaseURL = strings.TrimRight(getEnv("BASE_URL", defaultBaseURL), "/")

	var err error
	cfg.OpenTime, err = parseClockEnv("BOOKING_OPEN_TIME", defaultOpenTime)
	if err != nil {
		return nil, err
	}
	cfg.CloseTime, err = parseClockEnv("BOOKING_CLOSE_TIME", defaultCloseTime)
	if err != nil {
		return nil, err
	}

	cfg.MailServer = strings.TrimSpace(os.Getenv("MAIL_SERVER"))
	cfg.MailPort, err = parseIntEnv("MAIL_PORT", defaultMailPort)
	if err != nil {
		return nil, err
	}
	cfg.MailUsername = strings.TrimSpace(os.Getenv("MAIL_USERNAME"))
	cfg.MailPassword = os.Getenv("MAIL_PASSWORD")
	cfg.AdminEmail = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))

	cfg.GoogleClientID = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
	cfg.GoogleClientSecret = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET"))
	cfg.GoogleRedirectURI = strings.TrimSpace(os.Getenv("REDIRECT_URI"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.OpenTime >= cfg.CloseTime {
		return fmt.Errorf("BOOKING_OPEN_TIME must be before BOOKING_CLOSE_TIME")
	}
	if cfg.MailServer != "" && cfg.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is required when MAIL_SERVER is set")
	}
	if cfg.GoogleClientID != "" && cfg.GoogleRedirectURI == "" {
		return fmt.Errorf("REDIRECT_URI is required when GOOGLE_CLIENT_ID is set")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseClockEnv(key, def string) (domain.ClockTime, error) {
	raw := getEnv(key, def)
	c, err := domain.ParseClock(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

func parseIntEnv(key, def string) (int, error) {
	raw := getEnv(key, def)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}
