package scheduler

import "errors"

// ErrInvalidQuality is returned when a review quality is outside the 0-5
// scale. Quality is validated where user input enters the system (the
// Tracker boundary), not inside the pure policy function.
var ErrInvalidQuality = errors.New("review quality must be between 0 and 5")
