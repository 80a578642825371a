package handlers

import (
	"github.com/linskybing/simtrack/internal/application"
)

type Handlers struct {
	Audit        *AuditHandler
	Project      *ProjectHandler
	Hours        *HoursHandler
	Request      *RequestHandler
	Discussion   *DiscussionHandler
	User         *UserHandler
	Attachment   *AttachmentHandler
	Notification *NotificationHandler
	Stream       *StreamHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Audit:        NewAuditHandler(svc.Audit),
		Project:      NewProjectHandler(svc.Project),
		Hours:        NewHoursHandler(svc.Hours, svc.Request),
		Request:      NewRequestHandler(svc.Request),
		Discussion:   NewDiscussionHandler(svc.Discussion),
		User:         NewUserHandler(svc.User),
		Attachment:   NewAttachmentHandler(svc.Attachment),
		Notification: NewNotificationHandler(svc.Notification),
		Stream:       NewStreamHandler(svc.Notifications),
	}
}
