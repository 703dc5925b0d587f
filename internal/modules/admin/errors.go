package admin

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrAlreadyProcessed = errors.New("booking already processed")
	ErrInvalidAction    = errors.New("invalid decision action")
)
