package application

import (
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	if params.Limit <= 0 || params.Limit > 500 {
		params.Limit = 100
	}
	return s.Repos.Audit.GetAuditLogs(params)
}

// CleanupOldLogs deletes entries older than days and returns how many went.
func (s *AuditService) CleanupOldLogs(days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	return s.Repos.Audit.DeleteOldAuditLogs(days)
}
