package lateattendance

import "context"

// RecordRepository is the whole-collection access contract: the remote store
// holds the full record list as one document, so every edit is a
// read-modify-write of the entire collection. WriteAll replaces the stored
// value; it is not a merge. Two concurrent cycles race and the last write
// wins, so callers keep the window between ReadAll and WriteAll as short as
// possible.
type RecordRepository interface {
	// ReadAll returns a snapshot of the collection, empty when the document
	// has never been written.
	ReadAll(ctx context.Context) ([]LateCheckInRecord, error)

	// WriteAll replaces the remote collection with records.
	WriteAll(ctx context.Context, records []LateCheckInRecord) error
}
