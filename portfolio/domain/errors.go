package domain

import "errors"

var (
	ErrMissingFields = errors.New("All fields are required")
	ErrInvalidURL    = errors.New("Invalid URL format")
)
