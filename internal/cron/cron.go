package cron

import (
	"context"
	"log"
	"time"

	"github.com/linskybing/simtrack/internal/application"
)

// StartCleanupTask prunes audit logs older than retentionDays once at start
// and then daily until ctx is cancelled. It never touches ledger tables.
func StartCleanupTask(ctx context.Context, auditService *application.AuditService, retentionDays int) {
	if retentionDays <= 0 {
		log.Println("[Audit] retention disabled, cleanup task not started")
		return
	}

	go func() {
		log.Printf("[Audit] starting background cleanup task (retention: %d days)", retentionDays)
		runCleanup(auditService, retentionDays)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCleanup(auditService, retentionDays)
			}
		}
	}()
}

func runCleanup(auditService *application.AuditService, retentionDays int) {
	n, err := auditService.CleanupOldLogs(retentionDays)
	if err != nil {
		log.Printf("[Audit] failed to cleanup old audit logs: %v", err)
		return
	}
	log.Printf("[Audit] cleanup removed %d entries", n)
}
