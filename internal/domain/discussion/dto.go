package discussion

import "github.com/shopspring/decimal"

type CreateDiscussionDTO struct {
	Reason         string           `json:"reason" binding:"required"`
	SuggestedHours *decimal.Decimal `json:"suggested_hours,omitempty"`
}

type ReviewDiscussionDTO struct {
	Action        string           `json:"action" binding:"required,oneof=approve deny override"`
	OverrideHours *decimal.Decimal `json:"override_hours,omitempty"`
	Notes         string           `json:"notes"`
}
