package lsb

import "errors"

// Every failure the codec can report wraps one of these sentinels, so
// callers can classify with errors.Is without parsing messages.
var (
	// ErrCapacityExceeded means the framed payload needs more bits than
	// the carrier can hold. Raised before any pixel is written.
	ErrCapacityExceeded = errors.New("payload exceeds carrier capacity")

	// ErrDelimiterNotFound means a full scan of the carrier finished
	// without the expected end marker. The image is either not a stego
	// image or was produced by a different scheme.
	ErrDelimiterNotFound = errors.New("end delimiter not found")

	// ErrHeaderNotFound means the structural header was absent or
	// malformed within its search window.
	ErrHeaderNotFound = errors.New("payload header not found")
)
