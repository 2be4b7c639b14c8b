package lateattendance

import (
	"github.com/fspro/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LATE CHECK-IN DTOs
// ========================================

type SubmitRequest struct {
	Employee    string `json:"-"` // taken from the access token, never the body
	Date        string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	CheckInTime string `json:"check_in_time"`  // raw, normalized by the service
	Reason      string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	// The reason is deliberately not validated here: a missing reason is the
	// domain failure ErrMissingReason, raised by the service.

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Employee     string `json:"-"`
	Date         string `json:"date,omitempty"`           // YYYY-MM-DD, defaults to today
	CheckOutTime string `json:"check_out_time,omitempty"` // raw, defaults to the current time
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecisionRequest identifies the record an admin approves or rejects. Records
// are addressed by their generated id, never by position in the collection: a
// concurrent submission would shift positional indexes under the admin's
// stale view.
type DecisionRequest struct {
	ID string `json:"-"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Employee *string `json:"employee,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EligibilityRequest struct {
	Employee string `json:"-"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *EligibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	Employee     string  `json:"employee"`
	Date         string  `json:"date"`
	Day          string  `json:"day"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Timestamp    string  `json:"timestamp"`
}

type ListResponse struct {
	TotalCount int              `json:"total_count"`
	Records    []RecordResponse `json:"records"`
}

type SummaryResponse struct {
	Employee         string `json:"employee"`
	ApprovedLateDays int    `json:"approved_late_check_ins"`
}

type EligibilityResponse struct {
	Eligible       bool   `json:"eligible"`
	HasScheduleDay bool   `json:"has_schedule_day"`
	HasRecordToday bool   `json:"has_record_today"`
	Date           string `json:"date"`
	Day            string `json:"day"`
}
