package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the workflow state of a simulation request.
type Status string

const (
	StatusSubmitted         Status = "Submitted"
	StatusManagerReview     Status = "Manager Review"
	StatusEngineeringReview Status = "Engineering Review"
	StatusDiscussion        Status = "Discussion"
	StatusInProgress        Status = "In Progress"
	StatusReadyForReview    Status = "Ready for Review"
	StatusCompleted         Status = "Completed"
	StatusRevisionRequested Status = "Revision Requested"
	StatusDenied            Status = "Denied"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Request is a simulation request. AllocatedHours mirrors the sum of ledger
// entries tagged to the request.
type Request struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string          `gorm:"size:255;not null" json:"title"`
	Description        string          `gorm:"type:text" json:"description"`
	ProjectID          *uuid.UUID      `gorm:"type:uuid;index" json:"project_id,omitempty"`
	RequesterID        uint            `gorm:"not null;index" json:"requester_id"`
	AssignedEngineerID *uint           `gorm:"index" json:"assigned_engineer_id,omitempty"`
	Status             Status          `gorm:"size:30;not null;default:'Submitted';index" json:"status"`
	Priority           Priority        `gorm:"size:10;not null;default:'Medium'" json:"priority"`
	EstimatedHours     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"estimated_hours"`
	AllocatedHours     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"allocated_hours"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string {
	return "requests"
}

// HasLedgerLink reports whether the request reserves hours on a project.
func (r *Request) HasLedgerLink() bool {
	return r.ProjectID != nil && r.AllocatedHours.IsPositive()
}

// TimeEntry is work actually logged by an engineer against a request.
type TimeEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"request_id"`
	EngineerID  uint            `gorm:"not null;index" json:"engineer_id"`
	Hours       decimal.Decimal `gorm:"type:numeric(8,2);not null;check:chk_time_entries_hours,hours > 0" json:"hours"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
