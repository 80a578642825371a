package application

import (
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/storage"
)

type Services struct {
	Audit         *AuditService
	Hours         *HourService
	Project       *ProjectService
	Request       *RequestService
	Discussion    *DiscussionService
	User          *UserService
	Attachment    *AttachmentService
	Notification  *NotificationService
	Notifications *NotificationHub
}

// New wires every service. store may be nil when object storage is not configured.
func New(repos *repository.Repos, store storage.ObjectStore) *Services {
	hub := NewNotificationHub()
	notifications := NewNotificationService(repos, hub)
	ledger := NewHourService(repos)

	return &Services{
		Audit:         NewAuditService(repos),
		Hours:         ledger,
		Project:       NewProjectService(repos, ledger, notifications),
		Request:       NewRequestService(repos, ledger, notifications),
		Discussion:    NewDiscussionService(repos, ledger, notifications),
		User:          NewUserService(repos),
		Attachment:    NewAttachmentService(repos, store),
		Notification:  notifications,
		Notifications: hub,
	}
}
