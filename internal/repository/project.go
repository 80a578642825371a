package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/project"
	"gorm.io/gorm"
)

// ProjectRepo manages project rows. It never writes used_hours or total_hours;
// those columns belong to HourLedgerRepo.
type ProjectRepo interface {
	GetProjectByID(id uuid.UUID) (project.Project, error)
	CreateProject(p *project.Project) error
	UpdateProject(p *project.Project) error
	UpdateProjectStatus(id uuid.UUID, status project.Status) error
	DeleteProject(id uuid.UUID) error
	ListProjects(filter project.ProjectFilter) ([]project.Project, error)
	NextProjectCode(year int) (string, error)
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) GetProjectByID(id uuid.UUID) (project.Project, error) {
	var p project.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	return p, err
}

func (r *DBProjectRepo) CreateProject(p *project.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.Create(p).Error
}

func (r *DBProjectRepo) UpdateProject(p *project.Project) error {
	return r.db.Model(p).
		Select("name", "description", "start_date", "end_date").
		Updates(p).Error
}

func (r *DBProjectRepo) UpdateProjectStatus(id uuid.UUID, status project.Status) error {
	res := r.db.Model(&project.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBProjectRepo) DeleteProject(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&project.Project{}).Error
}

func (r *DBProjectRepo) ListProjects(filter project.ProjectFilter) ([]project.Project, error) {
	var projects []project.Project
	query := r.db.Model(&project.Project{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// NextProjectCode issues the next NNNNNN-YYYY code for year. The upsert is
// atomic, so concurrent creators never receive the same code.
func (r *DBProjectRepo) NextProjectCode(year int) (string, error) {
	var next int
	err := r.db.Raw(`
		INSERT INTO project_code_counters (year, last_value) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = project_code_counters.last_value + 1
		RETURNING last_value`, year).Scan(&next).Error
	if err != nil {
		return "", err
	}
	return FormatProjectCode(next, year), nil
}

// FormatProjectCode renders a sequence number and year as NNNNNN-YYYY.
func FormatProjectCode(seq, year int) string {
	return fmt.Sprintf("%06d-%d", seq, year)
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
