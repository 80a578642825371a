package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/metrics"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/types"
	"github.com/linskybing/simtrack/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrInvalidRequestStatus = errors.New("invalid request status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrRequestClosed        = errors.New("request is closed")
	ErrInvalidHours         = errors.New("hours must be positive")
	ErrNegativeHours        = errors.New("hours must not be negative")
	ErrHoursPrecision       = errors.New("hours must have at most 2 decimal places")
	ErrEngineerNotFound     = errors.New("engineer not found")
	ErrNotAnEngineer        = errors.New("user cannot be assigned engineering work")
)

// StatusUpdateResult reports a committed status change. HoursWarning is set
// when the status was saved but the hour reconciliation behind it failed.
type StatusUpdateResult struct {
	Request      *request.Request `json:"request"`
	Hours        *hours.Result    `json:"hours,omitempty"`
	HoursWarning string           `json:"hours_warning,omitempty"`
}

type RequestService struct {
	Repos         *repository.Repos
	Hours         *HourService
	Notifications *NotificationService
}

func NewRequestService(repos *repository.Repos, hoursSvc *HourService, notifications *NotificationService) *RequestService {
	return &RequestService{
		Repos:         repos,
		Hours:         hoursSvc,
		Notifications: notifications,
	}
}

func (s *RequestService) CreateRequest(c *gin.Context, input request.CreateRequestDTO) (*request.Request, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if input.EstimatedHours.IsNegative() {
		return nil, ErrNegativeHours
	}
	if !hours.HasValidScale(input.EstimatedHours) {
		return nil, ErrHoursPrecision
	}

	req := &request.Request{
		Title:          input.Title,
		Description:    input.Description,
		ProjectID:      input.ProjectID,
		RequesterID:    claims.UserID,
		Status:         request.StatusSubmitted,
		Priority:       request.PriorityMedium,
		EstimatedHours: input.EstimatedHours,
	}
	if input.Priority != nil {
		if !request.IsValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		req.Priority = request.Priority(*input.Priority)
	}

	if req.ProjectID != nil {
		if _, err := s.Repos.Project.GetProjectByID(*req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
	}

	if err := s.Repos.Request.CreateRequest(req); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionCreate, "request", req.ID.String(), nil, req, "", s.Repos.Audit)
	return req, nil
}

func (s *RequestService) GetRequest(id uuid.UUID) (*request.Request, error) {
	req, err := s.Repos.Request.GetRequestByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests applies filter; requesters only ever see their own requests.
func (s *RequestService) ListRequests(c *gin.Context, filter request.Filter) ([]request.Request, int64, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, 0, ErrUnauthenticated
	}
	if claims.Role == user.RoleRequester {
		uid := claims.UserID
		filter.RequesterID = &uid
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Repos.Request.ListRequests(filter)
}

// UpdateRequestStatus persists a new status. Returning unused hours on Denied
// and settling actual hours on Completed are best-effort: a ledger failure is
// recorded and reported but never blocks the status change.
func (s *RequestService) UpdateRequestStatus(c *gin.Context, id uuid.UUID, input request.UpdateStatusDTO) (*StatusUpdateResult, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !request.IsValidStatus(input.Status) {
		return nil, ErrInvalidRequestStatus
	}
	newStatus := request.Status(input.Status)
	actor := hours.Actor{ID: claims.UserID, Name: claims.Username}
	ctx := requestContext(c)

	var (
		old     request.Request
		updated request.Request
		result  = &StatusUpdateResult{}
		failure *hours.LedgerError
	)
	err = s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		req, err := r.Request.LockRequest(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		old = req
		if !canSetStatus(claims, &req, newStatus) {
			return ErrForbidden
		}
		if req.Status == newStatus {
			updated = req
			return nil
		}

		switch {
		case newStatus == request.StatusDenied && req.HasLedgerLink():
			amount := req.AllocatedHours
			res, lerr := s.reconcileBestEffort(ctx, r, func(ledger *HourService) (*hours.Result, error) {
				return ledger.DeallocateHoursFromRequest(ctx, *req.ProjectID, req.ID, amount, actor,
					"Request denied: returned allocated hours")
			})
			if lerr != nil {
				failure = lerr
			} else {
				result.Hours = res
				req.AllocatedHours = decimal.Zero
			}

		case newStatus == request.StatusCompleted && req.ProjectID != nil:
			actual, serr := r.TimeEntry.SumHoursByRequest(req.ID)
			if serr != nil {
				log.Printf("[Request] failed to sum time entries for %s: %v", req.ID, serr)
				failure = hours.NewTransient()
				break
			}
			if actual.IsZero() {
				actual = req.AllocatedHours
			}
			allocated := req.AllocatedHours
			res, lerr := s.reconcileBestEffort(ctx, r, func(ledger *HourService) (*hours.Result, error) {
				return ledger.FinalizeRequestHours(ctx, *req.ProjectID, req.ID, allocated, actual, actor)
			})
			if lerr != nil {
				failure = lerr
			} else {
				result.Hours = res
				req.AllocatedHours = actual
			}
		}

		if newStatus == request.StatusCompleted {
			now := time.Now()
			req.CompletedAt = &now
		}
		req.Status = newStatus
		if err := r.Request.SaveRequest(&req); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Request = &updated
	if old.Status == updated.Status {
		return result, nil
	}

	if failure != nil {
		result.HoursWarning = failure.Error()
		s.recordReconciliationFailure(c, &updated, old.Status, failure)
	}

	utils.LogAuditWithConsole(c, audit.ActionStatusChange, "request", updated.ID.String(), old, updated, input.Notes, s.Repos.Audit)
	s.notify(recipients(&updated), notification.TypeStatusChanged,
		fmt.Sprintf("Request %q moved from %s to %s", updated.Title, old.Status, updated.Status),
		gin.H{"request_id": updated.ID, "from": old.Status, "to": updated.Status})

	return result, nil
}

// reconcileBestEffort runs a ledger call inside a savepoint of r so that a
// failure leaves the enclosing transaction usable.
func (s *RequestService) reconcileBestEffort(ctx context.Context, r *repository.Repos, op func(*HourService) (*hours.Result, error)) (*hours.Result, *hours.LedgerError) {
	var res *hours.Result
	err := r.Nested(ctx, func(sp *repository.Repos) error {
		var err error
		res, err = op(s.Hours.WithRepos(sp))
		return err
	})
	if err == nil {
		return res, nil
	}

	var le *hours.LedgerError
	if !errors.As(err, &le) {
		log.Printf("[Request] hour reconciliation failed: %v", err)
		le = hours.NewTransient()
	}
	return nil, le
}

func (s *RequestService) recordReconciliationFailure(c *gin.Context, req *request.Request, from request.Status, failure *hours.LedgerError) {
	log.Printf("[Request] request %s moved %s -> %s but hours were not reconciled: %s (%s)",
		req.ID, from, req.Status, failure.Message, failure.Code)
	metrics.ReconciliationFailures.WithLabelValues(string(failure.Code)).Inc()

	detail := gin.H{
		"request_id":      req.ID,
		"project_id":      req.ProjectID,
		"from":            from,
		"to":              req.Status,
		"allocated_hours": req.AllocatedHours,
		"code":            failure.Code,
	}
	utils.LogAuditWithConsole(c, audit.ActionReconciliationFailed, "request", req.ID.String(), nil, detail, failure.Message, s.Repos.Audit)

	if actorID, err := utils.GetUserIDFromContext(c); err == nil {
		s.notify([]uint{actorID}, notification.TypeHoursDriftFlagged,
			fmt.Sprintf("Request %q is %s but its hours could not be reconciled: %s", req.Title, req.Status, failure.Message),
			detail)
	}
}

// AssignEngineer (re)assigns the request and moves its allocation to the new
// estimate by the net difference. Ledger failures abort the whole assignment.
func (s *RequestService) AssignEngineer(c *gin.Context, id uuid.UUID, input request.AssignEngineerDTO) (*request.Request, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !claims.Role.IsManagerOrAdmin() {
		return nil, ErrForbidden
	}
	if input.EstimatedHours.IsNegative() {
		return nil, ErrNegativeHours
	}
	if !hours.HasValidScale(input.EstimatedHours) {
		return nil, ErrHoursPrecision
	}

	engineer, err := s.Repos.User.GetUserByID(input.EngineerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEngineerNotFound
		}
		return nil, err
	}
	if engineer.Role == user.RoleRequester {
		return nil, ErrNotAnEngineer
	}

	actor := hours.Actor{ID: claims.UserID, Name: claims.Username}
	ctx := requestContext(c)

	var old, updated request.Request
	err = s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		req, err := r.Request.LockRequest(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.IsTerminal(req.Status) {
			return ErrRequestClosed
		}
		old = req

		if req.ProjectID != nil {
			ledger := s.Hours.WithRepos(r)
			netDelta := input.EstimatedHours.Sub(req.AllocatedHours)
			note := fmt.Sprintf("Assigned to %s", engineer.DisplayName())

			switch {
			case netDelta.IsPositive():
				if err := ledger.RequireAvailability(ctx, *req.ProjectID, netDelta); err != nil {
					return err
				}
				if _, err := ledger.AllocateHoursToRequest(ctx, *req.ProjectID, req.ID, netDelta, actor, note); err != nil {
					return err
				}
			case netDelta.IsNegative():
				if _, err := ledger.DeallocateHoursFromRequest(ctx, *req.ProjectID, req.ID, netDelta.Abs(), actor, note); err != nil {
					return err
				}
			}
			req.AllocatedHours = input.EstimatedHours
		}

		engineerID := engineer.UID
		req.AssignedEngineerID = &engineerID
		req.EstimatedHours = input.EstimatedHours
		if request.InReview(req.Status) {
			req.Status = request.StatusInProgress
		}
		if err := r.Request.SaveRequest(&req); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionAssign, "request", updated.ID.String(), old, updated, "", s.Repos.Audit)
	s.notify(recipients(&updated), notification.TypeAssigned,
		fmt.Sprintf("Request %q assigned to %s (%s hours)", updated.Title, engineer.DisplayName(), updated.EstimatedHours),
		gin.H{"request_id": updated.ID, "engineer_id": engineer.UID, "estimated_hours": updated.EstimatedHours})

	return &updated, nil
}

// LogTime records hours actually spent. Only the assigned engineer or a
// manager may log time, and never on a closed request.
func (s *RequestService) LogTime(c *gin.Context, id uuid.UUID, input request.LogTimeDTO) (*request.TimeEntry, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !input.Hours.IsPositive() {
		return nil, ErrInvalidHours
	}
	if !hours.HasValidScale(input.Hours) {
		return nil, ErrHoursPrecision
	}

	req, err := s.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if request.IsTerminal(req.Status) {
		return nil, ErrRequestClosed
	}
	if !claims.Role.IsManagerOrAdmin() && !isAssigned(req, claims.UserID) {
		return nil, ErrForbidden
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != nil {
		date = *input.Date
	}
	entry := &request.TimeEntry{
		RequestID:   req.ID,
		EngineerID:  claims.UserID,
		Hours:       input.Hours,
		Date:        date,
		Description: input.Description,
	}
	if err := s.Repos.TimeEntry.CreateTimeEntry(entry); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionCreate, "time_entry", entry.ID.String(), nil, entry, "", s.Repos.Audit)
	return entry, nil
}

func (s *RequestService) ListTimeEntries(id uuid.UUID) ([]request.TimeEntry, error) {
	if _, err := s.GetRequest(id); err != nil {
		return nil, err
	}
	return s.Repos.TimeEntry.ListByRequest(id)
}

func (s *RequestService) notify(to []uint, typ notification.Type, msg string, payload any) {
	if s.Notifications == nil {
		return
	}
	s.Notifications.Notify(to, typ, msg, payload)
}

func canSetStatus(claims *types.Claims, req *request.Request, to request.Status) bool {
	switch {
	case claims.Role.IsManagerOrAdmin():
		return true
	case claims.Role == user.RoleEngineer:
		return isAssigned(req, claims.UserID) && request.EngineerMayEnter(to)
	default:
		return req.RequesterID == claims.UserID &&
			req.Status == request.StatusRevisionRequested &&
			to == request.StatusSubmitted
	}
}

func isAssigned(req *request.Request, uid uint) bool {
	return req.AssignedEngineerID != nil && *req.AssignedEngineerID == uid
}

func recipients(req *request.Request) []uint {
	to := []uint{req.RequesterID}
	if req.AssignedEngineerID != nil {
		to = append(to, *req.AssignedEngineerID)
	}
	return to
}
