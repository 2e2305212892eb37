package services

import "errors"

// Service errors
var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidInput      = errors.New("invalid input")
)
