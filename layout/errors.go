package layout

import "errors"

// Sentinel errors returned by Build. Callers match them with errors.Is.
var (
	// ErrUnknownTapeProfile is returned when Options.Tape is not in the tape table.
	ErrUnknownTapeProfile = errors.New("layout: unknown tape profile")
	// ErrInvalidGeometry is returned for negative or non-finite lengths.
	ErrInvalidGeometry = errors.New("layout: invalid geometry")
	// ErrNilCollection is returned by Marshal and WriteFile for a nil collection.
	ErrNilCollection = errors.New("layout: collection is nil")
)
