package lateattendance

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fspro/attendance-backend-go/internal/domain/lateattendance"
	"github.com/fspro/attendance-backend-go/internal/domain/schedule"
	"github.com/fspro/attendance-backend-go/internal/pkg/sse"
	"github.com/fspro/attendance-backend-go/internal/pkg/timefmt"
	"github.com/fspro/attendance-backend-go/internal/pkg/validator"
)

// LateAttendanceServiceImpl reconciles the late check-in collection. The
// store only offers whole-collection get/set, so every mutation here is a
// read-modify-write cycle: snapshot, edit in memory, write back. Nothing else
// may run between the read and the write — the last writer wins, and a wide
// window is how concurrent admin/employee edits get lost.
type LateAttendanceServiceImpl struct {
	lateattendance.RecordRepository
	schedule.TimeTableRepository
	hub *sse.Hub
}

func NewLateAttendanceService(
	records lateattendance.RecordRepository,
	timeTables schedule.TimeTableRepository,
	hub *sse.Hub,
) lateattendance.LateAttendanceService {
	return &LateAttendanceServiceImpl{
		RecordRepository:    records,
		TimeTableRepository: timeTables,
		hub:                 hub,
	}
}

// Submit implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) Submit(ctx context.Context, req lateattendance.SubmitRequest) (lateattendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return lateattendance.RecordResponse{}, err
	}
	if validator.IsEmpty(req.Reason) {
		return lateattendance.RecordResponse{}, lateattendance.ErrMissingReason
	}

	checkInTime, ok := timefmt.Normalize(req.CheckInTime)
	if !ok {
		return lateattendance.RecordResponse{}, lateattendance.ErrInvalidTimeFormat
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.RecordResponse{}, err
	}

	// At most one open record per (employee, date). The legacy portal only
	// checked this at check-out time; enforcing it here keeps the invariant
	// from being violated in the first place.
	for i := range records {
		if records[i].Employee == req.Employee && records[i].Date == date && records[i].Open() {
			return lateattendance.RecordResponse{}, lateattendance.ErrAlreadyCheckedIn
		}
	}

	record := lateattendance.LateCheckInRecord{
		ID:          uuid.NewString(),
		Employee:    req.Employee,
		Date:        date,
		Day:         weekdayName(date),
		CheckInTime: checkInTime,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      lateattendance.StatusPending,
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
	}

	records = append(records, record)
	if err := s.RecordRepository.WriteAll(ctx, records); err != nil {
		return lateattendance.RecordResponse{}, err
	}

	resp := toResponse(record)
	s.publish("late_checkin.submitted", record.Employee, resp)
	return resp, nil
}

// CheckOut implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) CheckOut(ctx context.Context, req lateattendance.CheckOutRequest) (lateattendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return lateattendance.RecordResponse{}, err
	}

	raw := req.CheckOutTime
	if raw == "" {
		raw = time.Now().Format("15:04:05")
	}
	checkOutTime, ok := timefmt.Normalize(raw)
	if !ok {
		return lateattendance.RecordResponse{}, lateattendance.ErrInvalidTimeFormat
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.RecordResponse{}, err
	}

	// First open match in storage order. With the submit-time invariant there
	// is at most one; legacy data with duplicates still closes exactly one.
	index := -1
	for i := range records {
		if records[i].Employee == req.Employee && records[i].Date == date && records[i].Open() {
			index = i
			break
		}
	}
	if index == -1 {
		return lateattendance.RecordResponse{}, lateattendance.ErrNoOpenRecord
	}

	workingHours := timefmt.Duration(records[index].CheckInTime, checkOutTime)
	records[index].CheckOutTime = &checkOutTime
	records[index].WorkingHours = &workingHours

	if err := s.RecordRepository.WriteAll(ctx, records); err != nil {
		return lateattendance.RecordResponse{}, err
	}

	resp := toResponse(records[index])
	s.publish("late_checkin.checked_out", records[index].Employee, resp)
	return resp, nil
}

// Approve implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) Approve(ctx context.Context, req lateattendance.DecisionRequest) (lateattendance.RecordResponse, error) {
	return s.decide(ctx, req, lateattendance.StatusApproved, "late_checkin.approved")
}

// Reject implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) Reject(ctx context.Context, req lateattendance.DecisionRequest) (lateattendance.RecordResponse, error) {
	return s.decide(ctx, req, lateattendance.StatusRejected, "late_checkin.rejected")
}

// decide applies an admin decision. Records are looked up by id so a stale
// admin snapshot can at worst miss the record, never decide the wrong one.
// pending is the only state a decision may leave.
func (s *LateAttendanceServiceImpl) decide(ctx context.Context, req lateattendance.DecisionRequest, status lateattendance.Status, event string) (lateattendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return lateattendance.RecordResponse{}, err
	}

	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.RecordResponse{}, err
	}

	index := -1
	for i := range records {
		if records[i].ID == req.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return lateattendance.RecordResponse{}, lateattendance.ErrRecordNotFound
	}
	if records[index].Processed() {
		return lateattendance.RecordResponse{}, lateattendance.ErrAlreadyProcessed
	}

	records[index].Status = status
	if err := s.RecordRepository.WriteAll(ctx, records); err != nil {
		return lateattendance.RecordResponse{}, err
	}

	resp := toResponse(records[index])
	s.publish(event, records[index].Employee, resp)
	return resp, nil
}

// ListMine implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) ListMine(ctx context.Context, employee string) (lateattendance.ListResponse, error) {
	return s.List(ctx, lateattendance.ListFilter{Employee: &employee})
}

// List implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) List(ctx context.Context, filter lateattendance.ListFilter) (lateattendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return lateattendance.ListResponse{}, err
	}

	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.ListResponse{}, err
	}

	filtered := make([]lateattendance.LateCheckInRecord, 0, len(records))
	for _, record := range records {
		if filter.Employee != nil && record.Employee != *filter.Employee {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		filtered = append(filtered, record)
	}

	// Newest first; the stable sort keeps storage order on equal timestamps.
	sort.SliceStable(filtered, func(i, j int) bool {
		return parseTimestamp(filtered[i].Timestamp).After(parseTimestamp(filtered[j].Timestamp))
	})

	responses := make([]lateattendance.RecordResponse, 0, len(filtered))
	for _, record := range filtered {
		responses = append(responses, toResponse(record))
	}

	return lateattendance.ListResponse{
		TotalCount: len(responses),
		Records:    responses,
	}, nil
}

// CountApproved implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) CountApproved(ctx context.Context, employee string) (lateattendance.SummaryResponse, error) {
	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.SummaryResponse{}, err
	}

	count := 0
	for i := range records {
		if records[i].Employee == employee && records[i].Status == lateattendance.StatusApproved {
			count++
		}
	}

	return lateattendance.SummaryResponse{
		Employee:         employee,
		ApprovedLateDays: count,
	}, nil
}

// Eligibility implements lateattendance.LateAttendanceService.
func (s *LateAttendanceServiceImpl) Eligibility(ctx context.Context, req lateattendance.EligibilityRequest) (lateattendance.EligibilityResponse, error) {
	if err := req.Validate(); err != nil {
		return lateattendance.EligibilityResponse{}, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day := weekdayName(date)

	records, err := s.RecordRepository.ReadAll(ctx)
	if err != nil {
		return lateattendance.EligibilityResponse{}, err
	}

	hasRecord := false
	for i := range records {
		if records[i].Employee == req.Employee && records[i].Date == date {
			hasRecord = true
			break
		}
	}

	table, err := s.TimeTableRepository.GetByEmployee(ctx, req.Employee)
	if err != nil {
		return lateattendance.EligibilityResponse{}, err
	}
	hasScheduleDay := table != nil && table.HasSlots(strings.ToLower(day))

	return lateattendance.EligibilityResponse{
		Eligible:       hasScheduleDay && !hasRecord,
		HasScheduleDay: hasScheduleDay,
		HasRecordToday: hasRecord,
		Date:           date,
		Day:            day,
	}, nil
}

func (s *LateAttendanceServiceImpl) publish(event string, employee string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(sse.Event{Stream: employee, Name: event, Data: data})
	s.hub.Publish(sse.Event{Stream: sse.AdminStream, Name: event, Data: data})
}

// weekdayName returns the English weekday for a YYYY-MM-DD date. Requests
// reaching this point have already validated the date format.
func weekdayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// parseTimestamp treats unparseable timestamps as the zero time so malformed
// legacy rows sink to the bottom instead of breaking the sort.
func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toResponse(record lateattendance.LateCheckInRecord) lateattendance.RecordResponse {
	return lateattendance.RecordResponse{
		ID:           record.ID,
		Employee:     record.Employee,
		Date:         record.Date,
		Day:          record.Day,
		CheckInTime:  record.CheckInTime,
		CheckOutTime: record.CheckOutTime,
		Reason:       record.Reason,
		Status:       string(record.Status),
		WorkingHours: record.WorkingHours,
		Timestamp:    record.Timestamp,
	}
}
