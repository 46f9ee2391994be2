package ach

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConfiguration aborts a run before assembly: files cannot be
	// built without the originating/receiving party record.
	ErrNoConfiguration = errors.New("no ACH configuration found")

	// ErrNoOrders means the request matched no payment orders.
	ErrNoOrders = errors.New("no payment orders to process")

	// ErrModifiersExhausted means all 36 file id modifiers (A-Z, 0-9) are
	// taken for the pay date. Reusing a modifier would produce two files
	// the receiving bank cannot tell apart, so the run fails instead.
	ErrModifiersExhausted = errors.New("file id modifiers exhausted for pay date")

	// ErrModifierTaken means the requested file id modifier is already
	// reserved for the pay date. Only reachable when the caller supplies
	// an explicit modifier; auto-allocation holds the sequence lock until
	// its reservation commits.
	ErrModifierTaken = errors.New("file id modifier already reserved for pay date")
)

// FailedRecord describes why one order failed pre-flight validation.
type FailedRecord struct {
	Index  int      `json:"index"`
	CaseId string   `json:"case_id"`
	Errors []string `json:"errors"`
}

// ValidationError carries the structured reasons for an all-or-nothing
// batch rejection. Nothing is written when it is returned.
type ValidationError struct {
	Failed []FailedRecord
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d of the submitted orders", len(e.Failed))
}

// Messages flattens the per-record reasons into human-readable lines.
func (e *ValidationError) Messages() []string {
	var out []string
	for _, f := range e.Failed {
		for _, msg := range f.Errors {
			out = append(out, fmt.Sprintf("Record %d (Case ID: %s): %s", f.Index+1, f.CaseId, msg))
		}
	}
	return out
}
