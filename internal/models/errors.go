package models

import "errors"

// Verification errors. They classify negative results and are never
// returned as failures of a validator call.
var (
	ErrIDFormat         = errors.New("id number must be exactly 13 digits")
	ErrIDChecksum       = errors.New("id number failed checksum validation")
	ErrMalformedRequest = errors.New("malformed request body")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidEmail     = errors.New("invalid email address")
)

// Infrastructure errors
var (
	ErrHistoryUnavailable = errors.New("check history is unavailable")
	ErrHistoryBufferFull  = errors.New("check history buffer is full")
)
