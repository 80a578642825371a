package application_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/discussion"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDiscussionMocks(t *testing.T) (*application.DiscussionService, *requestMocks) {
	m := newRequestMocks(t)
	hoursSvc := application.NewHourService(m.repos)
	notifySvc := application.NewNotificationService(m.repos, application.NewNotificationHub())
	return application.NewDiscussionService(m.repos, hoursSvc, notifySvc), m
}

func pendingDiscussion(requestID uuid.UUID, suggested *decimal.Decimal) discussion.Request {
	return discussion.Request{
		ID:             uuid.New(),
		RequestID:      requestID,
		RequestedByID:  9,
		Reason:         "mesh is finer than quoted",
		SuggestedHours: suggested,
		Status:         discussion.StatusPending,
	}
}

func ptrDec(v int64) *decimal.Decimal {
	d := dec(v)
	return &d
}

// --------------------- CreateDiscussionRequest ---------------------

func TestCreateDiscussionRequest(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusEngineeringReview)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.discussion.EXPECT().FindPendingByRequest(req.ID).Return(nil, nil)
	m.discussion.EXPECT().CreateDiscussion(gomock.Any()).DoAndReturn(func(d *discussion.Request) error {
		d.ID = uuid.New()
		return nil
	})
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.Equal(t, request.StatusDiscussion, r.Status)
		return nil
	})
	m.user.EXPECT().GetAllUsers().Return([]user.User{
		{UID: 7, Role: user.RoleManager},
		{UID: 9, Role: user.RoleEngineer},
	}, nil)

	c := testContext(3, "req", user.RoleRequester)
	d, err := svc.CreateDiscussionRequest(c, req.ID, discussion.CreateDiscussionDTO{Reason: "too low", SuggestedHours: ptrDec(25)})
	require.NoError(t, err)
	assert.Equal(t, discussion.StatusPending, d.Status)
	assert.Equal(t, uint(3), d.RequestedByID)
	// requester and the manager, deduplicated
	assert.Len(t, m.notified, 2)
}

func TestCreateDiscussionRequest_AlreadyPending(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusDiscussion)
	existing := pendingDiscussion(req.ID, nil)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.discussion.EXPECT().FindPendingByRequest(req.ID).Return(&existing, nil)

	c := testContext(7, "mgr", user.RoleManager)
	_, err := svc.CreateDiscussionRequest(c, req.ID, discussion.CreateDiscussionDTO{Reason: "again"})
	assert.ErrorIs(t, err, application.ErrDiscussionPending)
}

func TestCreateDiscussionRequest_StrangerForbidden(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusSubmitted)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)

	c := testContext(44, "someone", user.RoleRequester)
	_, err := svc.CreateDiscussionRequest(c, req.ID, discussion.CreateDiscussionDTO{Reason: "x"})
	assert.ErrorIs(t, err, application.ErrForbidden)
}

// --------------------- ReviewDiscussionRequest ---------------------

func TestReviewDiscussionRequest_ApproveMovesAllocation(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusDiscussion)
	d := pendingDiscussion(req.ID, ptrDec(25))

	m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.project.EXPECT().GetProjectByID(p.ID).Return(p, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).DoAndReturn(func(tx *hours.Transaction) error {
		assert.True(t, tx.Hours.Equal(dec(15)))
		assert.Equal(t, req.ID, *tx.RequestID)
		return nil
	})
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(25)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.Equal(t, request.StatusEngineeringReview, r.Status)
		assert.True(t, r.AllocatedHours.Equal(dec(25)))
		assert.True(t, r.EstimatedHours.Equal(dec(25)))
		return nil
	})
	m.discussion.EXPECT().SaveDiscussion(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	reviewed, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, discussion.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.FinalHours)
	assert.True(t, reviewed.FinalHours.Equal(dec(25)))
	assert.Equal(t, uint(7), *reviewed.ReviewedByID)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Contains(t, m.notified, notification.TypeDiscussionClosed)
}

func TestReviewDiscussionRequest_OverrideDownReturnsHours(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 40)
	engineer := uint(9)
	req := linkedRequest(p, 20, request.StatusDiscussion)
	req.AssignedEngineerID = &engineer
	d := pendingDiscussion(req.ID, ptrDec(30))

	m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).Return(nil)
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(32)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.Equal(t, request.StatusInProgress, r.Status)
		assert.True(t, r.AllocatedHours.Equal(dec(12)))
		return nil
	})
	m.discussion.EXPECT().SaveDiscussion(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	reviewed, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "override", OverrideHours: ptrDec(12)})
	require.NoError(t, err)
	assert.Equal(t, discussion.StatusOverride, reviewed.Status)
	assert.True(t, reviewed.FinalHours.Equal(dec(12)))
}

func TestReviewDiscussionRequest_DenyKeepsAllocation(t *testing.T) {
	silenceAudit(t)
	svc, m := setupDiscussionMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusDiscussion)
	d := pendingDiscussion(req.ID, ptrDec(25))

	m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.True(t, r.AllocatedHours.Equal(dec(10)))
		return nil
	})
	m.discussion.EXPECT().SaveDiscussion(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	reviewed, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "deny", Notes: "estimate stands"})
	require.NoError(t, err)
	assert.Equal(t, discussion.StatusDenied, reviewed.Status)
	assert.Nil(t, reviewed.FinalHours)
	assert.Equal(t, "estimate stands", reviewed.ReviewNotes)
}

func TestReviewDiscussionRequest_LedgerFailureRollsBack(t *testing.T) {
	silenceAudit(t)

	t.Run("insufficient hours", func(t *testing.T) {
		svc, m := setupDiscussionMocks(t)
		p := activeProject(30, 25)
		req := linkedRequest(p, 10, request.StatusDiscussion)
		d := pendingDiscussion(req.ID, nil)

		m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
		m.project.EXPECT().GetProjectByID(p.ID).Return(p, nil).Times(2)

		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "override", OverrideHours: ptrDec(20)})
		require.ErrorIs(t, err, hours.ErrInsufficientHours)
		assert.Empty(t, m.notified)
	})

	t.Run("database error", func(t *testing.T) {
		svc, m := setupDiscussionMocks(t)
		p := activeProject(100, 10)
		req := linkedRequest(p, 10, request.StatusDiscussion)
		d := pendingDiscussion(req.ID, ptrDec(12))

		m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
		m.project.EXPECT().GetProjectByID(p.ID).Return(p, nil)
		m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
		m.ledger.EXPECT().CreateTransaction(gomock.Any()).Return(errors.New("deadlock detected"))

		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "approve"})
		require.ErrorIs(t, err, hours.ErrTransientDB)
	})
}

func TestReviewDiscussionRequest_Rejections(t *testing.T) {
	silenceAudit(t)

	t.Run("requester", func(t *testing.T) {
		svc, _ := setupDiscussionMocks(t)
		c := testContext(3, "req", user.RoleRequester)
		_, err := svc.ReviewDiscussionRequest(c, uuid.New(), discussion.ReviewDiscussionDTO{Action: "approve"})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("unknown action", func(t *testing.T) {
		svc, _ := setupDiscussionMocks(t)
		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.ReviewDiscussionRequest(c, uuid.New(), discussion.ReviewDiscussionDTO{Action: "maybe"})
		assert.ErrorIs(t, err, application.ErrInvalidReviewAction)
	})

	t.Run("override without hours", func(t *testing.T) {
		svc, _ := setupDiscussionMocks(t)
		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.ReviewDiscussionRequest(c, uuid.New(), discussion.ReviewDiscussionDTO{Action: "override"})
		assert.ErrorIs(t, err, application.ErrOverrideHoursRequired)
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc, m := setupDiscussionMocks(t)
		d := pendingDiscussion(uuid.New(), nil)
		d.Status = discussion.StatusDenied
		m.discussion.EXPECT().LockDiscussion(d.ID).Return(d, nil)

		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.ReviewDiscussionRequest(c, d.ID, discussion.ReviewDiscussionDTO{Action: "deny"})
		assert.ErrorIs(t, err, application.ErrDiscussionNotPending)
	})
}
