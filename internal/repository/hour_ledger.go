package repository

import (
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HourLedgerRepo is the only writer of projects.used_hours and
// projects.total_hours, and the only writer of project_hour_transactions.
type HourLedgerRepo interface {
	LockProject(id uuid.UUID) (project.Project, error)
	SetUsedHours(id uuid.UUID, used decimal.Decimal) error
	SetTotalHours(id uuid.UUID, total decimal.Decimal) error
	CreateTransaction(tx *hours.Transaction) error
	ListTransactions(projectID uuid.UUID, limit, offset int) ([]hours.TransactionView, error)
	CountTransactions(projectID uuid.UUID) (int64, error)
	ListAllTransactions(projectID uuid.UUID) ([]hours.Transaction, error)
	SumByRequest(projectID, requestID uuid.UUID) (decimal.Decimal, error)
	SumByType(projectID uuid.UUID) ([]hours.TypeTotal, error)
	WithTx(tx *gorm.DB) HourLedgerRepo
}

type DBHourLedgerRepo struct {
	db *gorm.DB
}

func NewHourLedgerRepo(db *gorm.DB) *DBHourLedgerRepo {
	return &DBHourLedgerRepo{
		db: db,
	}
}

// LockProject reads the project row with SELECT ... FOR UPDATE. It must run
// inside a transaction; the lock is held until that transaction ends.
func (r *DBHourLedgerRepo) LockProject(id uuid.UUID) (project.Project, error) {
	var p project.Project
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error
	return p, err
}

func (r *DBHourLedgerRepo) SetUsedHours(id uuid.UUID, used decimal.Decimal) error {
	return r.updateColumn(id, "used_hours", used)
}

func (r *DBHourLedgerRepo) SetTotalHours(id uuid.UUID, total decimal.Decimal) error {
	return r.updateColumn(id, "total_hours", total)
}

func (r *DBHourLedgerRepo) updateColumn(id uuid.UUID, column string, value decimal.Decimal) error {
	res := r.db.Model(&project.Project{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBHourLedgerRepo) CreateTransaction(tx *hours.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.Create(tx).Error
}

func (r *DBHourLedgerRepo) ListTransactions(projectID uuid.UUID, limit, offset int) ([]hours.TransactionView, error) {
	var rows []hours.TransactionView
	err := r.db.Table("project_hour_transactions t").
		Select("t.*, req.title AS request_title").
		Joins("LEFT JOIN requests req ON req.id = t.request_id").
		Where("t.project_id = ?", projectID).
		Order("t.created_at DESC, t.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func (r *DBHourLedgerRepo) CountTransactions(projectID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&hours.Transaction{}).Where("project_id = ?", projectID).Count(&total).Error
	return total, err
}

func (r *DBHourLedgerRepo) ListAllTransactions(projectID uuid.UUID) ([]hours.Transaction, error) {
	var rows []hours.Transaction
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DBHourLedgerRepo) SumByRequest(projectID, requestID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&hours.Transaction{}).
		Select("COALESCE(SUM(hours), 0)").
		Where("project_id = ? AND request_id = ?", projectID, requestID).
		Row().
		Scan(&total)
	return total, err
}

func (r *DBHourLedgerRepo) SumByType(projectID uuid.UUID) ([]hours.TypeTotal, error) {
	var rows []hours.TypeTotal
	err := r.db.Model(&hours.Transaction{}).
		Select("transaction_type, COALESCE(SUM(hours), 0) AS total").
		Where("project_id = ?", projectID).
		Group("transaction_type").
		Scan(&rows).Error
	return rows, err
}

func (r *DBHourLedgerRepo) WithTx(tx *gorm.DB) HourLedgerRepo {
	if tx == nil {
		return r
	}
	return &DBHourLedgerRepo{
		db: tx,
	}
}
