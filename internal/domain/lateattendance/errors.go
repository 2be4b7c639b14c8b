package lateattendance

import "errors"

// Late attendance domain errors
var (
	// Submission errors
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrMissingReason     = errors.New("a reason is required for a late check-in")
	ErrAlreadyCheckedIn  = errors.New("a late check-in is already open for this date")

	// Check-out errors
	ErrNoOpenRecord = errors.New("no open late check-in found for this date")

	// Admin decision errors
	ErrRecordNotFound   = errors.New("late check-in record not found")
	ErrAlreadyProcessed = errors.New("late check-in has already been approved or rejected")
)
