package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusOnHold    Status = "On Hold"
	StatusSuspended Status = "Suspended"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusExpired   Status = "Expired"
	StatusArchived  Status = "Archived"
)

// Project is an hour budget that requests draw from.
type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string          `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	OwnerID     uint            `gorm:"not null;index" json:"owner_id"`
	TotalHours  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:chk_projects_total_hours,total_hours >= 0" json:"total_hours"`
	UsedHours   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:chk_projects_used_hours,used_hours >= 0 AND used_hours <= total_hours" json:"used_hours"`
	Status      Status          `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// AvailableHours is the budget not yet allocated to requests.
func (p *Project) AvailableHours() decimal.Decimal {
	return p.TotalHours.Sub(p.UsedHours)
}

// CodeCounter holds the last issued project code sequence for a year.
type CodeCounter struct {
	Year      int `gorm:"primaryKey;autoIncrement:false"`
	LastValue int `gorm:"not null;default:0"`
}

func (CodeCounter) TableName() string {
	return "project_code_counters"
}
