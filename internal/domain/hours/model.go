package hours

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeAllocation   TransactionType = "ALLOCATION"
	TypeDeallocation TransactionType = "DEALLOCATION"
	TypeAdjustment   TransactionType = "ADJUSTMENT"
	TypeExtension    TransactionType = "EXTENSION"
)

// Scale is the number of decimal places the numeric(12,2) columns keep.
const Scale = 2

// HasValidScale reports whether h survives storage without rounding.
func HasValidScale(h decimal.Decimal) bool {
	return h.Equal(h.Round(Scale))
}

// Transaction is an immutable hour ledger entry. Rows are only ever inserted.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_hour_tx_project_created,priority:1" json:"project_id"`
	RequestID       *uuid.UUID      `gorm:"type:uuid;index" json:"request_id,omitempty"`
	TransactionType TransactionType `gorm:"size:20;not null" json:"transaction_type"`
	Hours           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"hours"`
	BalanceBefore   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	PerformedByID   uint            `gorm:"not null" json:"performed_by_id"`
	PerformedByName string          `gorm:"size:100" json:"performed_by_name"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index:idx_hour_tx_project_created,priority:2" json:"created_at"`
}

func (Transaction) TableName() string {
	return "project_hour_transactions"
}

// TransactionView is a ledger entry joined with the title of its request.
type TransactionView struct {
	Transaction
	RequestTitle *string `json:"request_title,omitempty"`
}

// Actor identifies who performed a ledger operation. The ledger trusts it as given.
type Actor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecordInput is the argument of the ledger primitive.
type RecordInput struct {
	ProjectID       uuid.UUID
	RequestID       *uuid.UUID
	TransactionType TransactionType
	Hours           decimal.Decimal
	PerformedBy     Actor
	Notes           string
}

// Result describes a successfully applied ledger entry.
type Result struct {
	Transaction   *Transaction    `json:"transaction,omitempty"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	// NoOp is set when the operation had nothing to record.
	NoOp bool `json:"no_op,omitempty"`
}

// Availability is the outcome of a read-only pre-flight check.
type Availability struct {
	Available        bool            `json:"available"`
	CurrentAvailable decimal.Decimal `json:"current_available"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	UsedHours        decimal.Decimal `json:"used_hours"`
}

// History is one page of a project's ledger, newest first.
type History struct {
	Transactions []TransactionView `json:"transactions"`
	Total        int64             `json:"total"`
	Limit        int               `json:"limit"`
	Offset       int               `json:"offset"`
}

// Summary aggregates a project's budget and ledger by type.
type Summary struct {
	ProjectID      uuid.UUID                           `json:"project_id"`
	TotalHours     decimal.Decimal                     `json:"total_hours"`
	UsedHours      decimal.Decimal                     `json:"used_hours"`
	AvailableHours decimal.Decimal                     `json:"available_hours"`
	ByType         map[TransactionType]decimal.Decimal `json:"by_type"`
}

// TypeTotal is a per-type sum row.
type TypeTotal struct {
	TransactionType TransactionType
	Total           decimal.Decimal
}

// Reconciliation compares a replay of the ledger with the cached balance.
type Reconciliation struct {
	ProjectID     uuid.UUID       `json:"project_id"`
	ProjectCode   string          `json:"project_code"`
	CachedUsed    decimal.Decimal `json:"cached_used_hours"`
	ReplayedUsed  decimal.Decimal `json:"replayed_used_hours"`
	Transactions  int             `json:"transactions"`
	BrokenChainAt *uuid.UUID      `json:"broken_chain_at,omitempty"`
	Consistent    bool            `json:"consistent"`
}

// Replay sums signed hours of non-extension entries oldest-first starting from zero.
// It returns the final balance and the first entry whose BalanceBefore does not match
// the running balance, if any.
func Replay(txs []Transaction) (decimal.Decimal, *uuid.UUID) {
	balance := decimal.Zero
	var broken *uuid.UUID
	for i := range txs {
		tx := txs[i]
		if broken == nil && !tx.BalanceBefore.Equal(balance) {
			id := tx.ID
			broken = &id
		}
		if tx.TransactionType != TypeExtension {
			balance = balance.Add(tx.Hours)
		}
	}
	return balance, broken
}
