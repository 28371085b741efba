package ctdf

import "fmt"

// IngestionError rejects a whole batch of airport or flight records because of one bad record.
// Row is 1-based, 0 means the batch as a whole could not be read.
type IngestionError struct {
	Row   int
	Field string
	Err   error
}

func (e *IngestionError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("ingestion failed: %v", e.Err)
	}
	if e.Field == "" {
		return fmt.Sprintf("ingestion failed at row %d: %v", e.Row, e.Err)
	}

	return fmt.Sprintf("ingestion failed at row %d (%s): %v", e.Row, e.Field, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
