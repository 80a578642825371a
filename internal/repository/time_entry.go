package repository

import (
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TimeEntryRepo interface {
	CreateTimeEntry(entry *request.TimeEntry) error
	ListByRequest(requestID uuid.UUID) ([]request.TimeEntry, error)
	SumHoursByRequest(requestID uuid.UUID) (decimal.Decimal, error)
	WithTx(tx *gorm.DB) TimeEntryRepo
}

type DBTimeEntryRepo struct {
	db *gorm.DB
}

func NewTimeEntryRepo(db *gorm.DB) *DBTimeEntryRepo {
	return &DBTimeEntryRepo{
		db: db,
	}
}

func (r *DBTimeEntryRepo) CreateTimeEntry(entry *request.TimeEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.Create(entry).Error
}

func (r *DBTimeEntryRepo) ListByRequest(requestID uuid.UUID) ([]request.TimeEntry, error) {
	var entries []request.TimeEntry
	err := r.db.Where("request_id = ?", requestID).Order("date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *DBTimeEntryRepo) SumHoursByRequest(requestID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&request.TimeEntry{}).
		Select("COALESCE(SUM(hours), 0)").
		Where("request_id = ?", requestID).
		Row().
		Scan(&total)
	return total, err
}

func (r *DBTimeEntryRepo) WithTx(tx *gorm.DB) TimeEntryRepo {
	if tx == nil {
		return r
	}
	return &DBTimeEntryRepo{
		db: tx,
	}
}
