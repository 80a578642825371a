package notification

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeStatusChanged     Type = "request_status_changed"
	TypeAssigned          Type = "request_assigned"
	TypeDiscussionOpened  Type = "discussion_opened"
	TypeDiscussionClosed  Type = "discussion_reviewed"
	TypeProjectStatus     Type = "project_status_changed"
	TypeHoursDriftFlagged Type = "hours_drift_flagged"
)

type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Type      Type           `gorm:"size:50;not null" json:"type"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	Read      bool           `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
