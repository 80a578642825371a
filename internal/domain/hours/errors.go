package hours

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode classifies ledger failures.
type ErrorCode string

const (
	CodeProjectNotFound   ErrorCode = "PROJECT_NOT_FOUND"
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeInsufficientHours ErrorCode = "INSUFFICIENT_HOURS"
	CodeOverDeallocation  ErrorCode = "OVER_DEALLOCATION"
	CodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	CodeTransientDB       ErrorCode = "TRANSIENT_DB_ERROR"
)

// Sentinels for errors.Is matching against a *LedgerError of the same code.
var (
	ErrProjectNotFound   = &LedgerError{Code: CodeProjectNotFound}
	ErrInvalidState      = &LedgerError{Code: CodeInvalidState}
	ErrInsufficientHours = &LedgerError{Code: CodeInsufficientHours}
	ErrOverDeallocation  = &LedgerError{Code: CodeOverDeallocation}
	ErrInvalidArgument   = &LedgerError{Code: CodeInvalidArgument}
	ErrTransientDB       = &LedgerError{Code: CodeTransientDB}
)

// LedgerError is the structured failure returned by every ledger operation.
type LedgerError struct {
	Code           ErrorCode        `json:"code"`
	Message        string           `json:"error"`
	AvailableHours *decimal.Decimal `json:"available_hours,omitempty"`
	UsedHours      *decimal.Decimal `json:"used_hours,omitempty"`
}

func (e *LedgerError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is matches on the error code only.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsBusiness reports whether the failure is an expected business outcome rather
// than an infrastructure fault.
func (e *LedgerError) IsBusiness() bool {
	return e.Code != CodeTransientDB
}

func NewProjectNotFound(projectID fmt.Stringer) *LedgerError {
	return &LedgerError{
		Code:    CodeProjectNotFound,
		Message: fmt.Sprintf("project %s not found", projectID),
	}
}

func NewInvalidState(status string) *LedgerError {
	return &LedgerError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("cannot allocate hours: project status is '%s', must be Active", status),
	}
}

func NewInsufficientHours(requested, available decimal.Decimal) *LedgerError {
	return &LedgerError{
		Code:           CodeInsufficientHours,
		Message:        fmt.Sprintf("insufficient hours: requested %s, only %s available", requested.String(), available.String()),
		AvailableHours: &available,
	}
}

func NewOverDeallocation(requested, used decimal.Decimal) *LedgerError {
	return &LedgerError{
		Code:      CodeOverDeallocation,
		Message:   fmt.Sprintf("cannot deallocate more than used: requested %s, used %s", requested.String(), used.String()),
		UsedHours: &used,
	}
}

func NewInvalidArgument(msg string) *LedgerError {
	return &LedgerError{Code: CodeInvalidArgument, Message: msg}
}

// NewTransient hides the underlying database error; callers log it separately.
func NewTransient() *LedgerError {
	return &LedgerError{
		Code:    CodeTransientDB,
		Message: "failed to record hour transaction, please try again",
	}
}
