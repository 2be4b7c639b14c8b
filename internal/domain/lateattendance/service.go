package lateattendance

import "context"

// LateAttendanceService defines business logic for late check-in operations.
type LateAttendanceService interface {
	// Submit records a new late check-in, pending admin approval. At most one
	// open record may exist per employee and date; a second submission for a
	// date with an open record fails.
	Submit(ctx context.Context, req SubmitRequest) (RecordResponse, error)

	// CheckOut closes the employee's open late check-in for the date, setting
	// the check-out time and computed working hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// Approve marks a pending record approved (admin only, terminal).
	Approve(ctx context.Context, req DecisionRequest) (RecordResponse, error)

	// Reject marks a pending record rejected (admin only, terminal).
	Reject(ctx context.Context, req DecisionRequest) (RecordResponse, error)

	// ListMine returns the employee's records, newest first.
	ListMine(ctx context.Context, employee string) (ListResponse, error)

	// List returns all records, optionally filtered by employee, newest
	// first (admin view).
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// CountApproved counts approved late check-ins for the summary display.
	CountApproved(ctx context.Context, employee string) (SummaryResponse, error)

	// Eligibility reports whether the employee may submit a late check-in
	// for the date: a time-table slot must exist for that weekday and no
	// record may exist for the (employee, date) pair yet.
	Eligibility(ctx context.Context, req EligibilityRequest) (EligibilityResponse, error)
}
