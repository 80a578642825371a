package repository

import (
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/request"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepo interface {
	CreateRequest(req *request.Request) error
	GetRequestByID(id uuid.UUID) (request.Request, error)
	LockRequest(id uuid.UUID) (request.Request, error)
	ListRequests(filter request.Filter) ([]request.Request, int64, error)
	SaveRequest(req *request.Request) error
	CountByProject(projectID uuid.UUID) (int64, error)
	WithTx(tx *gorm.DB) RequestRepo
}

type DBRequestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) *DBRequestRepo {
	return &DBRequestRepo{
		db: db,
	}
}

func (r *DBRequestRepo) CreateRequest(req *request.Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	return r.db.Create(req).Error
}

func (r *DBRequestRepo) GetRequestByID(id uuid.UUID) (request.Request, error) {
	var req request.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	return req, err
}

// LockRequest serializes lifecycle changes to a single request so that two
// concurrent transitions cannot both act on the same allocation.
func (r *DBRequestRepo) LockRequest(id uuid.UUID) (request.Request, error) {
	var req request.Request
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&req).Error
	return req, err
}

func (r *DBRequestRepo) ListRequests(filter request.Filter) ([]request.Request, int64, error) {
	var (
		reqs  []request.Request
		total int64
	)
	query := r.db.Model(&request.Request{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.EngineerID != nil {
		query = query.Where("assigned_engineer_id = ?", *filter.EngineerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Find(&reqs).Error
	return reqs, total, err
}

func (r *DBRequestRepo) SaveRequest(req *request.Request) error {
	return r.db.Save(req).Error
}

func (r *DBRequestRepo) CountByProject(projectID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&request.Request{}).Where("project_id = ?", projectID).Count(&total).Error
	return total, err
}

func (r *DBRequestRepo) WithTx(tx *gorm.DB) RequestRepo {
	if tx == nil {
		return r
	}
	return &DBRequestRepo{
		db: tx,
	}
}
