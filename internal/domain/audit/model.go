package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded by the services.
const (
	ActionCreate               = "create"
	ActionUpdate               = "update"
	ActionDelete               = "delete"
	ActionStatusChange         = "status_change"
	ActionAllocate             = "allocate"
	ActionDeallocate           = "deallocate"
	ActionAdjust               = "adjust"
	ActionExtend               = "extend"
	ActionAssign               = "assign"
	ActionReview               = "review"
	ActionReconciliationFailed = "hours_reconciliation_failed"
)

type AuditLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	Action       string         `gorm:"size:50;not null;index" json:"action"`
	ResourceType string         `gorm:"size:50;not null;index" json:"resource_type"`
	ResourceID   string         `gorm:"size:64;not null" json:"resource_id"`
	OldData      datatypes.JSON `json:"old_data,omitempty"`
	NewData      datatypes.JSON `json:"new_data,omitempty"`
	IPAddress    string         `gorm:"size:64" json:"ip_address"`
	UserAgent    string         `gorm:"type:text" json:"user_agent"`
	Description  string         `gorm:"type:text" json:"description"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
