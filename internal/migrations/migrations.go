package migrations

import (
	"fmt"

	"github.com/linskybing/simtrack/internal/domain/attachment"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/domain/discussion"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&project.Project{},
		&project.CodeCounter{},
		&request.Request{},
		&hours.Transaction{},
		&request.TimeEntry{},
		&discussion.Request{},
		&attachment.Attachment{},
		&notification.Notification{},
		&audit.AuditLog{},
	}
}

// Constraints that AutoMigrate cannot express through struct tags.
var statements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_discussion_one_pending
		ON discussion_requests (request_id) WHERE status = 'Pending'`,
}

// Run creates or updates the schema. It is safe to call on every start.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
