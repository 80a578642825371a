package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidTransition    = errors.New("project status transition not allowed")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrProjectInUse         = errors.New("project has requests or hour history and cannot be deleted")
)

type ProjectService struct {
	Repos         *repository.Repos
	Hours         *HourService
	Notifications *NotificationService
}

func NewProjectService(repos *repository.Repos, hoursSvc *HourService, notifications *NotificationService) *ProjectService {
	return &ProjectService{
		Repos:         repos,
		Hours:         hoursSvc,
		Notifications: notifications,
	}
}

func (s *ProjectService) GetProject(id uuid.UUID) (*project.Project, error) {
	p, err := s.Repos.Project.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) ListProjects(filter project.ProjectFilter) ([]project.Project, error) {
	return s.Repos.Project.ListProjects(filter)
}

// CreateProject issues the next project code for the current year. Projects
// created by managers start Active; everyone else's wait in Pending.
func (s *ProjectService) CreateProject(c *gin.Context, input project.CreateProjectDTO) (*project.Project, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.TotalHours.IsNegative() {
		return nil, ErrNegativeHours
	}
	if !hours.HasValidScale(input.TotalHours) {
		return nil, ErrHoursPrecision
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	p := &project.Project{
		Name:       name,
		OwnerID:    claims.UserID,
		TotalHours: input.TotalHours,
		Status:     project.StatusPending,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if claims.Role.IsManagerOrAdmin() {
		p.Status = project.StatusActive
	}

	err = s.Repos.ExecTx(requestContext(c), func(r *repository.Repos) error {
		code, err := r.Project.NextProjectCode(time.Now().Year())
		if err != nil {
			return fmt.Errorf("issue project code: %w", err)
		}
		p.Code = code
		return r.Project.CreateProject(p)
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionCreate, "project", p.ID.String(), nil, p, "", s.Repos.Audit)
	return p, nil
}

func (s *ProjectService) UpdateProject(c *gin.Context, id uuid.UUID, input project.UpdateProjectDTO) (*project.Project, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	p, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if !claims.Role.IsManagerOrAdmin() && p.OwnerID != claims.UserID {
		return nil, ErrForbidden
	}

	old := *p
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.Repos.Project.UpdateProject(p); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionUpdate, "project", p.ID.String(), old, p, "", s.Repos.Audit)
	return p, nil
}

// UpdateProjectStatus moves the project along its lifecycle. The project row
// is locked so the change serializes with in-flight ledger operations.
func (s *ProjectService) UpdateProjectStatus(c *gin.Context, id uuid.UUID, input project.UpdateProjectStatusDTO) (*project.Project, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !claims.Role.IsManagerOrAdmin() {
		return nil, ErrForbidden
	}
	if !project.IsValidStatus(input.Status) {
		return nil, ErrInvalidProjectStatus
	}
	to := project.Status(input.Status)

	var old, updated project.Project
	err = s.Repos.ExecTx(requestContext(c), func(r *repository.Repos) error {
		p, err := r.HourLedger.LockProject(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !project.CanTransition(p.Status, to) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.Status, to)
		}
		old = p
		if err := r.Project.UpdateProjectStatus(p.ID, to); err != nil {
			return err
		}
		p.Status = to
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionStatusChange, "project", updated.ID.String(), old, updated, input.Reason, s.Repos.Audit)
	if s.Notifications != nil && updated.OwnerID != claims.UserID {
		s.Notifications.Notify([]uint{updated.OwnerID}, notification.TypeProjectStatus,
			fmt.Sprintf("Project %s is now %s", updated.Code, updated.Status),
			gin.H{"project_id": updated.ID, "from": old.Status, "to": updated.Status, "reason": input.Reason})
	}
	return &updated, nil
}

// DeleteProject hard-deletes a project nothing refers to. Admin only.
func (s *ProjectService) DeleteProject(c *gin.Context, id uuid.UUID) error {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return ErrUnauthenticated
	}
	if claims.Role != user.RoleAdmin {
		return ErrForbidden
	}
	p, err := s.GetProject(id)
	if err != nil {
		return err
	}

	requests, err := s.Repos.Request.CountByProject(id)
	if err != nil {
		return err
	}
	entries, err := s.Repos.HourLedger.CountTransactions(id)
	if err != nil {
		return err
	}
	if requests > 0 || entries > 0 {
		return ErrProjectInUse
	}

	if err := s.Repos.Project.DeleteProject(id); err != nil {
		return err
	}
	utils.LogAuditWithConsole(c, audit.ActionDelete, "project", p.ID.String(), p, nil, "", s.Repos.Audit)
	return nil
}

// ExtendHours raises the project's total budget through the ledger.
func (s *ProjectService) ExtendHours(c *gin.Context, id uuid.UUID, input project.ExtendHoursDTO) (*hours.Result, error) {
	actor, err := s.managerActor(c)
	if err != nil {
		return nil, err
	}
	res, err := s.Hours.ExtendProjectHours(requestContext(c), id, input.AdditionalHours, actor, input.Notes)
	if err != nil {
		return nil, err
	}
	utils.LogAuditWithConsole(c, audit.ActionExtend, "project", id.String(), nil, res.Transaction, input.Notes, s.Repos.Audit)
	return res, nil
}

// AdjustHours applies a signed manual correction to the project's used hours.
func (s *ProjectService) AdjustHours(c *gin.Context, id uuid.UUID, input project.AdjustHoursDTO) (*hours.Result, error) {
	actor, err := s.managerActor(c)
	if err != nil {
		return nil, err
	}
	res, err := s.Hours.AdjustProjectHours(requestContext(c), id, input.Hours, actor, input.Notes)
	if err != nil {
		return nil, err
	}
	utils.LogAuditWithConsole(c, audit.ActionAdjust, "project", id.String(), nil, res.Transaction, input.Notes, s.Repos.Audit)
	return res, nil
}

func (s *ProjectService) managerActor(c *gin.Context) (hours.Actor, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return hours.Actor{}, ErrUnauthenticated
	}
	if !claims.Role.IsManagerOrAdmin() {
		return hours.Actor{}, ErrForbidden
	}
	return hours.Actor{ID: claims.UserID, Name: claims.Username}, nil
}
