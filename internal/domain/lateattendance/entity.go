package lateattendance

// Status of a late check-in record. Transitions are one-way: pending is the
// only non-terminal state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

// LateCheckInRecord is one late check-in/check-out entry. The whole
// collection is stored as a single JSON array document, so the struct is also
// the persisted shape.
//
// Employee is a display name, not a stable key; ID is the generated identity
// used for admin decisions. Timestamp (RFC3339Nano, UTC) is the sole reliable
// sort key.
type LateCheckInRecord struct {
	ID           string  `json:"id"`
	Employee     string  `json:"employee"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Day          string  `json:"day"`  // weekday name, derived from Date, display only
	CheckInTime  string  `json:"checkInTime"` // canonical HH:MM:SS
	CheckOutTime *string `json:"checkOutTime,omitempty"`
	Reason       string  `json:"reason"`
	Status       Status  `json:"status"`
	WorkingHours *string `json:"workingHours,omitempty"` // "<H>h <M>m", set once at check-out
	Timestamp    string  `json:"timestamp"`
}

// Open reports whether the employee has not checked out of this record yet.
func (r *LateCheckInRecord) Open() bool {
	return r.CheckOutTime == nil
}

// Processed reports whether an admin has already decided this record.
func (r *LateCheckInRecord) Processed() bool {
	return r.Status != StatusPending
}
