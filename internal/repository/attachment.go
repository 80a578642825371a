package repository

import (
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/attachment"
	"gorm.io/gorm"
)

type AttachmentRepo interface {
	CreateAttachment(a *attachment.Attachment) error
	GetAttachmentByID(id uuid.UUID) (attachment.Attachment, error)
	ListByRequest(requestID uuid.UUID) ([]attachment.Attachment, error)
	DeleteAttachment(id uuid.UUID) error
	WithTx(tx *gorm.DB) AttachmentRepo
}

type DBAttachmentRepo struct {
	db *gorm.DB
}

func NewAttachmentRepo(db *gorm.DB) *DBAttachmentRepo {
	return &DBAttachmentRepo{
		db: db,
	}
}

func (r *DBAttachmentRepo) CreateAttachment(a *attachment.Attachment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.db.Create(a).Error
}

func (r *DBAttachmentRepo) GetAttachmentByID(id uuid.UUID) (attachment.Attachment, error) {
	var a attachment.Attachment
	err := r.db.Where("id = ?", id).First(&a).Error
	return a, err
}

func (r *DBAttachmentRepo) ListByRequest(requestID uuid.UUID) ([]attachment.Attachment, error) {
	var as []attachment.Attachment
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC").Find(&as).Error
	return as, err
}

func (r *DBAttachmentRepo) DeleteAttachment(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&attachment.Attachment{}).Error
}

func (r *DBAttachmentRepo) WithTx(tx *gorm.DB) AttachmentRepo {
	if tx == nil {
		return r
	}
	return &DBAttachmentRepo{
		db: tx,
	}
}
