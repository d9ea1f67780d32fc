package services

import "errors"

var (
	ErrInsufficientFunds = errors.New("INSUFFICIENT_FUNDS")
	ErrNotFound          = errors.New("NOT_FOUND")
	ErrDuplicatePeriod   = errors.New("DUPLICATE_SETTLEMENT_PERIOD")
)

// ValidationError rejects a request before any mutation: out-of-bounds
// stake, missing field, unknown selection.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string { return e.Code }

func NewValidationError(code string) error { return &ValidationError{Code: code} }

// StateConflictError rejects an operation against a record that is not in
// the required state: settling a terminal bet, betting on a locked match,
// paying an unapproved settlement.
type StateConflictError struct {
	Code string
}

func (e *StateConflictError) Error() string { return e.Code }

func NewStateConflict(code string) error { return &StateConflictError{Code: code} }

// ErrCode maps any service error to the reason code surfaced to clients.
func ErrCode(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	var sc *StateConflictError
	if errors.As(err, &sc) {
		return sc.Code
	}
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicatePeriod):
		return "DUPLICATE_SETTLEMENT_PERIOD"
	}
	return "INTERNAL_ERROR"
}
