package schedule

// TimeTable is one employee's weekly schedule as stored in the "timeTables"
// collection: weekday name (lowercase) to that day's slots. A day without an
// entry, or with an empty slot list, is a day off.
type TimeTable struct {
	Employee string                `json:"employee"`
	Days     map[string]DaySchedule `json:"days"`
}

type DaySchedule struct {
	Slots []Slot `json:"slots"`
}

type Slot struct {
	Start string `json:"start"` // HH:MM:SS
	End   string `json:"end"`   // HH:MM:SS
}

// HasSlots reports whether the employee is scheduled to work on the given
// weekday name (case-insensitive handled by the caller, keys are lowercase).
func (t *TimeTable) HasSlots(day string) bool {
	d, ok := t.Days[day]
	return ok && len(d.Slots) > 0
}
