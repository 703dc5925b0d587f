package calendar

import "errors"

var (
	ErrNotFound     = errors.New("booking not found")
	ErrNotApproved  = errors.New("booking is not approved")
	ErrInvalidState = errors.New("invalid or expired oauth state")
)
