package repository

import (
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/discussion"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscussionRepo interface {
	CreateDiscussion(d *discussion.Request) error
	GetDiscussionByID(id uuid.UUID) (discussion.Request, error)
	LockDiscussion(id uuid.UUID) (discussion.Request, error)
	FindPendingByRequest(requestID uuid.UUID) (*discussion.Request, error)
	ListByRequest(requestID uuid.UUID) ([]discussion.Request, error)
	ListPending() ([]discussion.Request, error)
	SaveDiscussion(d *discussion.Request) error
	WithTx(tx *gorm.DB) DiscussionRepo
}

type DBDiscussionRepo struct {
	db *gorm.DB
}

func NewDiscussionRepo(db *gorm.DB) *DBDiscussionRepo {
	return &DBDiscussionRepo{
		db: db,
	}
}

func (r *DBDiscussionRepo) CreateDiscussion(d *discussion.Request) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.db.Create(d).Error
}

func (r *DBDiscussionRepo) GetDiscussionByID(id uuid.UUID) (discussion.Request, error) {
	var d discussion.Request
	err := r.db.Where("id = ?", id).First(&d).Error
	return d, err
}

func (r *DBDiscussionRepo) LockDiscussion(id uuid.UUID) (discussion.Request, error) {
	var d discussion.Request
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&d).Error
	return d, err
}

// FindPendingByRequest returns nil without error when there is no pending discussion.
func (r *DBDiscussionRepo) FindPendingByRequest(requestID uuid.UUID) (*discussion.Request, error) {
	var ds []discussion.Request
	err := r.db.Where("request_id = ? AND status = ?", requestID, discussion.StatusPending).
		Limit(1).
		Find(&ds).Error
	if err != nil || len(ds) == 0 {
		return nil, err
	}
	return &ds[0], nil
}

func (r *DBDiscussionRepo) ListByRequest(requestID uuid.UUID) ([]discussion.Request, error) {
	var ds []discussion.Request
	err := r.db.Where("request_id = ?", requestID).Order("created_at DESC").Find(&ds).Error
	return ds, err
}

func (r *DBDiscussionRepo) ListPending() ([]discussion.Request, error) {
	var ds []discussion.Request
	err := r.db.Where("status = ?", discussion.StatusPending).Order("created_at ASC").Find(&ds).Error
	return ds, err
}

func (r *DBDiscussionRepo) SaveDiscussion(d *discussion.Request) error {
	return r.db.Save(d).Error
}

func (r *DBDiscussionRepo) WithTx(tx *gorm.DB) DiscussionRepo {
	if tx == nil {
		return r
	}
	return &DBDiscussionRepo{
		db: tx,
	}
}
