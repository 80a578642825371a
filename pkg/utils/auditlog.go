package utils

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/repository"
)

// AuditEntry is one audited change before it is serialized.
type AuditEntry struct {
	UserID       uint
	IP           string
	UserAgent    string
	Action       string
	ResourceType string
	ResourceID   string
	Before       any
	After        any
	Description  string
}

// LogAuditWithConsole records an entry for the caller of c without blocking
// the request. Failures are only logged.
var LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
	// Extract data synchronously; c is recycled once the handler returns.
	entry := AuditEntry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       oldData,
		After:        newData,
		Description:  msg,
	}
	if c != nil {
		entry.UserID, _ = GetUserIDFromContext(c)
		entry.IP = c.ClientIP()
		entry.UserAgent = c.GetHeader("User-Agent")
	}

	go func() {
		if err := LogAudit(entry, repo); err != nil {
			log.Printf("[Audit] error: %v", err)
		}
	}()
}

var LogAudit = func(entry AuditEntry, repo repository.AuditRepo) error {
	var oldData, newData []byte
	var err error

	if entry.Before != nil {
		oldData, err = json.Marshal(entry.Before)
		if err != nil {
			log.Printf("[Audit] marshal oldData error: %v", err)
		}
	}
	if entry.After != nil {
		newData, err = json.Marshal(entry.After)
		if err != nil {
			log.Printf("[Audit] marshal newData error: %v", err)
		}
	}

	return repo.CreateAuditLog(&audit.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    entry.IP,
		UserAgent:    entry.UserAgent,
		Description:  entry.Description,
	})
}
