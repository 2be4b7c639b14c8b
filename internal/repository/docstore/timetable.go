package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fspro/attendance-backend-go/internal/domain/schedule"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
)

const timeTableCollection = "timeTables"

type TimeTableRepository struct {
	store docstore.Store
}

func NewTimeTableRepository(store docstore.Store) schedule.TimeTableRepository {
	return &TimeTableRepository{store: store}
}

// GetByEmployee implements schedule.TimeTableRepository.
func (r *TimeTableRepository) GetByEmployee(ctx context.Context, employee string) (*schedule.TimeTable, error) {
	raw, err := r.store.Get(ctx, timeTableCollection)
	if err != nil {
		if errors.Is(err, docstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read time tables: %w", err)
	}

	var tables []schedule.TimeTable
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode time tables: %w", err)
	}

	for i := range tables {
		if tables[i].Employee == employee {
			return &tables[i], nil
		}
	}
	return nil, nil
}
