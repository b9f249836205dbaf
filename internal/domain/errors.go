package domain

import "errors"

var (
	// ErrQuizNotFound is returned when a quiz id is not in the catalog.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQRCode is returned when scanned text does not name a known quiz.
	ErrInvalidQRCode = errors.New("invalid QR code")
	// ErrInvalidName indicates a display name failed validation.
	ErrInvalidName = errors.New("invalid display name")
	// ErrNameNotSet is returned when an action needs a display name that was never chosen.
	ErrNameNotSet = errors.New("display name not set")
	// ErrBackendUnavailable wraps transport failures talking to the result backend.
	ErrBackendUnavailable = errors.New("result backend unavailable")
	// ErrInvalidCatalog is returned when quiz content violates catalog invariants.
	ErrInvalidCatalog = errors.New("invalid quiz catalog")
)
