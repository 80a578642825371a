package discussion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
	StatusOverride Status = "Override"
)

// Action is a reviewer's decision on a discussion request.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionDeny     Action = "deny"
	ActionOverride Action = "override"
)

// Request asks a manager to revisit the hours estimated for a simulation request.
type Request struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"request_id"`
	RequestedByID  uint             `gorm:"not null" json:"requested_by_id"`
	Reason         string           `gorm:"type:text;not null" json:"reason"`
	SuggestedHours *decimal.Decimal `gorm:"type:numeric(12,2)" json:"suggested_hours,omitempty"`
	Status         Status           `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	ReviewedByID   *uint            `json:"reviewed_by_id,omitempty"`
	ReviewNotes    string           `gorm:"type:text" json:"review_notes"`
	FinalHours     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"final_hours,omitempty"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string {
	return "discussion_requests"
}

// ResultStatus maps a review action to the stored status.
func (a Action) ResultStatus() (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusApproved, true
	case ActionDeny:
		return StatusDenied, true
	case ActionOverride:
		return StatusOverride, true
	}
	return "", false
}
