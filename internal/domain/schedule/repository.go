package schedule

import "context"

// TimeTableRepository reads employee schedules from the time-tables
// collection. The collection is small and read in full; the repository picks
// out one employee's table.
type TimeTableRepository interface {
	// GetByEmployee returns the employee's time table, or nil when the
	// employee has no schedule at all.
	GetByEmployee(ctx context.Context, employee string) (*TimeTable, error)
}
