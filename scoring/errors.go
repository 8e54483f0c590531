package scoring

import "errors"

var (
	// ErrInvalidEmotionData is returned when an emotion mapping is absent or malformed.
	ErrInvalidEmotionData = errors.New("invalid emotion data")

	// ErrInvalidScalarInput marks a body-language or audio input that is not a number.
	ErrInvalidScalarInput = errors.New("invalid scalar input")
)
