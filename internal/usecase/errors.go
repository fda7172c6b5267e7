package usecase

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidState       = errors.New("invalid review state")
	ErrInvalidTransition  = errors.New("review state transition not allowed")
	ErrCompanyExists      = errors.New("company already exists")
	ErrInvalidCredentials = errors.New("invalid company credentials")
)
