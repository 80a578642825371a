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
	"github.com/linskybing/simtrack/internal/domain/discussion"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrDiscussionNotFound    = errors.New("discussion request not found")
	ErrDiscussionPending     = errors.New("request already has a pending discussion")
	ErrDiscussionNotPending  = errors.New("discussion request has already been reviewed")
	ErrInvalidReviewAction   = errors.New("action must be approve, deny or override")
	ErrOverrideHoursRequired = errors.New("override requires non-negative override_hours")
)

type DiscussionService struct {
	Repos         *repository.Repos
	Hours         *HourService
	Notifications *NotificationService
}

func NewDiscussionService(repos *repository.Repos, hoursSvc *HourService, notifications *NotificationService) *DiscussionService {
	return &DiscussionService{
		Repos:         repos,
		Hours:         hoursSvc,
		Notifications: notifications,
	}
}

// CreateDiscussionRequest opens a discussion on the estimated hours of a
// request and parks the request in the Discussion status.
func (s *DiscussionService) CreateDiscussionRequest(c *gin.Context, requestID uuid.UUID, input discussion.CreateDiscussionDTO) (*discussion.Request, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if input.SuggestedHours != nil && input.SuggestedHours.IsNegative() {
		return nil, ErrNegativeHours
	}
	if input.SuggestedHours != nil && !hours.HasValidScale(*input.SuggestedHours) {
		return nil, ErrHoursPrecision
	}

	var d *discussion.Request
	var req request.Request
	err = s.Repos.ExecTx(requestContext(c), func(r *repository.Repos) error {
		var err error
		req, err = r.Request.LockRequest(requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.IsTerminal(req.Status) {
			return ErrRequestClosed
		}
		if !claims.Role.IsManagerOrAdmin() && req.RequesterID != claims.UserID && !isAssigned(&req, claims.UserID) {
			return ErrForbidden
		}

		pending, err := r.Discussion.FindPendingByRequest(req.ID)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrDiscussionPending
		}

		d = &discussion.Request{
			RequestID:      req.ID,
			RequestedByID:  claims.UserID,
			Reason:         input.Reason,
			SuggestedHours: input.SuggestedHours,
			Status:         discussion.StatusPending,
		}
		if err := r.Discussion.CreateDiscussion(d); err != nil {
			return err
		}

		req.Status = request.StatusDiscussion
		return r.Request.SaveRequest(&req)
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionCreate, "discussion", d.ID.String(), nil, d, input.Reason, s.Repos.Audit)
	s.notify(append(recipients(&req), s.managerIDs()...), notification.TypeDiscussionOpened,
		fmt.Sprintf("Discussion opened on request %q", req.Title),
		gin.H{"request_id": req.ID, "discussion_id": d.ID})

	return d, nil
}

// ReviewDiscussionRequest resolves a pending discussion. When the resolved
// hours differ from the request's allocation the ledger is moved by the
// difference; any ledger failure rolls back the entire review.
func (s *DiscussionService) ReviewDiscussionRequest(c *gin.Context, id uuid.UUID, input discussion.ReviewDiscussionDTO) (*discussion.Request, error) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !claims.Role.IsManagerOrAdmin() {
		return nil, ErrForbidden
	}

	action := discussion.Action(input.Action)
	resultStatus, ok := action.ResultStatus()
	if !ok {
		return nil, ErrInvalidReviewAction
	}
	if action == discussion.ActionOverride && (input.OverrideHours == nil || input.OverrideHours.IsNegative()) {
		return nil, ErrOverrideHoursRequired
	}
	if action == discussion.ActionOverride && !hours.HasValidScale(*input.OverrideHours) {
		return nil, ErrHoursPrecision
	}

	actor := hours.Actor{ID: claims.UserID, Name: claims.Username}
	ctx := requestContext(c)

	var reviewed discussion.Request
	var req request.Request
	err = s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		d, err := r.Discussion.LockDiscussion(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDiscussionNotFound
			}
			return err
		}
		if d.Status != discussion.StatusPending {
			return ErrDiscussionNotPending
		}

		req, err = r.Request.LockRequest(d.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		finalHours := resolveFinalHours(action, &d, input.OverrideHours)
		if finalHours != nil {
			if req.ProjectID != nil {
				note := fmt.Sprintf("Discussion %s: hours set to %s", action, finalHours.String())
				if err := s.moveAllocation(ctx, r, &req, *finalHours, actor, note); err != nil {
					return err
				}
				req.AllocatedHours = *finalHours
			}
			req.EstimatedHours = *finalHours
		}

		if req.Status == request.StatusDiscussion {
			req.Status = request.StatusEngineeringReview
			if req.AssignedEngineerID != nil {
				req.Status = request.StatusInProgress
			}
		}
		if err := r.Request.SaveRequest(&req); err != nil {
			return err
		}

		now := time.Now()
		reviewer := claims.UserID
		d.Status = resultStatus
		d.ReviewedByID = &reviewer
		d.ReviewNotes = input.Notes
		d.FinalHours = finalHours
		d.ReviewedAt = &now
		if err := r.Discussion.SaveDiscussion(&d); err != nil {
			return err
		}
		reviewed = d
		return nil
	})
	if err != nil {
		var le *hours.LedgerError
		if errors.As(err, &le) {
			log.Printf("[Discussion] review of %s rolled back: %s", id, le.Message)
		}
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionReview, "discussion", reviewed.ID.String(), nil, reviewed, input.Notes, s.Repos.Audit)
	s.notify(append(recipients(&req), reviewed.RequestedByID), notification.TypeDiscussionClosed,
		fmt.Sprintf("Discussion on request %q was %s", req.Title, reviewed.Status),
		gin.H{"request_id": req.ID, "discussion_id": reviewed.ID, "status": reviewed.Status, "final_hours": reviewed.FinalHours})

	return &reviewed, nil
}

// moveAllocation brings the request's allocation to target inside r's
// transaction. It is strict: availability is checked before allocating.
func (s *DiscussionService) moveAllocation(ctx context.Context, r *repository.Repos, req *request.Request, target decimal.Decimal, actor hours.Actor, note string) error {
	ledger := s.Hours.WithRepos(r)
	delta := target.Sub(req.AllocatedHours)

	switch {
	case delta.IsPositive():
		if err := ledger.RequireAvailability(ctx, *req.ProjectID, delta); err != nil {
			return err
		}
		_, err := ledger.AllocateHoursToRequest(ctx, *req.ProjectID, req.ID, delta, actor, note)
		return err
	case delta.IsNegative():
		_, err := ledger.DeallocateHoursFromRequest(ctx, *req.ProjectID, req.ID, delta.Abs(), actor, note)
		return err
	}
	return nil
}

func (s *DiscussionService) GetDiscussion(id uuid.UUID) (*discussion.Request, error) {
	d, err := s.Repos.Discussion.GetDiscussionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *DiscussionService) ListByRequest(requestID uuid.UUID) ([]discussion.Request, error) {
	return s.Repos.Discussion.ListByRequest(requestID)
}

func (s *DiscussionService) ListPending() ([]discussion.Request, error) {
	return s.Repos.Discussion.ListPending()
}

func (s *DiscussionService) managerIDs() []uint {
	users, err := s.Repos.User.GetAllUsers()
	if err != nil {
		log.Printf("[Discussion] failed to load managers: %v", err)
		return nil
	}
	var ids []uint
	for _, u := range users {
		if u.Role.IsManagerOrAdmin() {
			ids = append(ids, u.UID)
		}
	}
	return ids
}

func (s *DiscussionService) notify(to []uint, typ notification.Type, msg string, payload any) {
	if s.Notifications == nil {
		return
	}
	s.Notifications.Notify(to, typ, msg, payload)
}

// resolveFinalHours returns the hours a review settles on, or nil when the
// allocation stays as it is.
func resolveFinalHours(action discussion.Action, d *discussion.Request, override *decimal.Decimal) *decimal.Decimal {
	switch action {
	case discussion.ActionApprove:
		if d.SuggestedHours == nil {
			return nil
		}
		h := *d.SuggestedHours
		return &h
	case discussion.ActionOverride:
		h := *override
		return &h
	}
	return nil
}
