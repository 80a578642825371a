package response

import (
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// LedgerErrorResponse carries the machine-readable code of a hour ledger
// failure together with the balance the client needs to correct the request.
type LedgerErrorResponse struct {
	Error          string           `json:"error"`
	Code           hours.ErrorCode  `json:"code"`
	AvailableHours *decimal.Decimal `json:"available_hours,omitempty"`
	UsedHours      *decimal.Decimal `json:"used_hours,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token    string    `json:"token"`
	UID      uint      `json:"user_id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

// Page wraps a list result with its pagination window.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
