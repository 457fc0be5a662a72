package settings

import "errors"

var (
	// ErrInvalidSettings is returned when a document fails Validate
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrDecodeSettings is returned when the persisted document cannot be parsed
	ErrDecodeSettings = errors.New("failed to decode settings document")
)
