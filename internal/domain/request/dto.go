package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRequestDTO struct {
	Title          string          `json:"title" binding:"required,max=255"`
	Description    string          `json:"description"`
	ProjectID      *uuid.UUID      `json:"project_id,omitempty"`
	Priority       *string         `json:"priority,omitempty" binding:"omitempty,oneof=Low Medium High"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type AssignEngineerDTO struct {
	EngineerID     uint            `json:"engineer_id" binding:"required"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
}

type LogTimeDTO struct {
	Hours       decimal.Decimal `json:"hours"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description"`
}

// Filter narrows request listings.
type Filter struct {
	ProjectID   *uuid.UUID
	RequesterID *uint
	EngineerID  *uint
	Status      *Status
	Limit       int
	Offset      int
}
