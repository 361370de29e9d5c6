package reporting

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	RecordTypeDonation = "donation"
	RecordTypeExpense  = "expense"
)

var ErrInvalidRecord = errors.New("invalid record")

// InvalidRecordError describes a single record the engine refused to count.
// It is never fatal: the record is logged and skipped.
type InvalidRecordError struct {
	RecordType string
	RecordID   uuid.UUID
	Reason     string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid %s record %s: %s", e.RecordType, e.RecordID, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}
