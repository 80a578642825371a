package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Project      ProjectRepo
	HourLedger   HourLedgerRepo
	Request      RequestRepo
	TimeEntry    TimeEntryRepo
	Discussion   DiscussionRepo
	User         UserRepo
	Audit        AuditRepo
	Attachment   AttachmentRepo
	Notification NotificationRepo

	db   *gorm.DB
	inTx bool
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Project:      NewProjectRepo(db),
		HourLedger:   NewHourLedgerRepo(db),
		Request:      NewRequestRepo(db),
		TimeEntry:    NewTimeEntryRepo(db),
		Discussion:   NewDiscussionRepo(db),
		User:         NewUserRepo(db),
		Audit:        NewAuditRepo(db),
		Attachment:   NewAttachmentRepo(db),
		Notification: NewNotificationRepo(db),
		db:           db,
	}
}

// WithTx binds every repository to an open transaction. The returned Repos
// never begins or commits on its own.
func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Project:      r.Project.WithTx(tx),
		HourLedger:   r.HourLedger.WithTx(tx),
		Request:      r.Request.WithTx(tx),
		TimeEntry:    r.TimeEntry.WithTx(tx),
		Discussion:   r.Discussion.WithTx(tx),
		User:         r.User.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		Attachment:   r.Attachment.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		db:           tx,
		inTx:         true,
	}
}

// InTx reports whether the repositories run inside a caller-owned transaction.
func (r *Repos) InTx() bool {
	return r.inTx
}

// ExecTx runs fn in a database transaction, committing when fn returns nil and
// rolling back otherwise. When r is already bound to a transaction, or has no
// database handle at all, fn runs inline and the caller owns commit/rollback.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	if r.inTx || r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Nested runs fn in its own unit of work. Inside a transaction gorm issues a
// SAVEPOINT, so a failing fn rolls back only its own statements and the
// enclosing transaction stays usable.
func (r *Repos) Nested(ctx context.Context, fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
