package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fspro/attendance-backend-go/internal/domain/lateattendance"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
)

// Collection key for late check-in records, carried over from the portal's
// existing database layout.
const lateCheckInCollection = "lateCheckInRecords"

type LateCheckInRepository struct {
	store docstore.Store
}

func NewLateCheckInRepository(store docstore.Store) lateattendance.RecordRepository {
	return &LateCheckInRepository{store: store}
}

// ReadAll implements lateattendance.RecordRepository.
func (r *LateCheckInRepository) ReadAll(ctx context.Context) ([]lateattendance.LateCheckInRecord, error) {
	raw, err := r.store.Get(ctx, lateCheckInCollection)
	if err != nil {
		if errors.Is(err, docstore.ErrKeyNotFound) {
			return []lateattendance.LateCheckInRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read late check-in records: %w", err)
	}

	var records []lateattendance.LateCheckInRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode late check-in records: %w", err)
	}
	if records == nil {
		records = []lateattendance.LateCheckInRecord{}
	}
	return records, nil
}

// WriteAll implements lateattendance.RecordRepository.
func (r *LateCheckInRepository) WriteAll(ctx context.Context, records []lateattendance.LateCheckInRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode late check-in records: %w", err)
	}
	if err := r.store.Set(ctx, lateCheckInCollection, raw); err != nil {
		return fmt.Errorf("failed to save late check-in records: %w", err)
	}
	return nil
}
