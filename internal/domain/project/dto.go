package project

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProjectDTO struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description *string         `json:"description,omitempty"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
}

type UpdateProjectDTO struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type UpdateProjectStatusDTO struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type ExtendHoursDTO struct {
	AdditionalHours decimal.Decimal `json:"additional_hours"`
	Notes           string          `json:"notes"`
}

type AdjustHoursDTO struct {
	Hours decimal.Decimal `json:"hours"`
	Notes string          `json:"notes"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status  *Status
	OwnerID *uint
	Search  string
}
