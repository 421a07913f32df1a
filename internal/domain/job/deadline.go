package job

import (
	"errors"
	"time"
)

var (
	ErrDeadlineNotFuture = errors.New("deadline must be in the future")
	ErrDeadlinePassed    = errors.New("deadline passed")
)

// CanPostWithDeadline admits a new posting only when the deadline is
// strictly after now. Timestamps compare as absolute instants.
func CanPostWithDeadline(deadline, now time.Time) error {
	if !deadline.After(now) {
		return ErrDeadlineNotFuture
	}
	return nil
}

// CanApply admits a new application only while the posting is open.
func CanApply(p Posting, now time.Time) error {
	if !p.Open(now) {
		return ErrDeadlinePassed
	}
	return nil
}
