package application_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/repository/mock"
	"github.com/linskybing/simtrack/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type requestMocks struct {
	request      *mock.MockRequestRepo
	ledger       *mock.MockHourLedgerRepo
	project      *mock.MockProjectRepo
	timeEntry    *mock.MockTimeEntryRepo
	user         *mock.MockUserRepo
	discussion   *mock.MockDiscussionRepo
	notification *mock.MockNotificationRepo
	repos        *repository.Repos
	notified     []notification.Type
}

func newRequestMocks(t *testing.T) *requestMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := &requestMocks{
		request:      mock.NewMockRequestRepo(ctrl),
		ledger:       mock.NewMockHourLedgerRepo(ctrl),
		project:      mock.NewMockProjectRepo(ctrl),
		timeEntry:    mock.NewMockTimeEntryRepo(ctrl),
		user:         mock.NewMockUserRepo(ctrl),
		discussion:   mock.NewMockDiscussionRepo(ctrl),
		notification: mock.NewMockNotificationRepo(ctrl),
	}
	m.repos = &repository.Repos{
		Request:      m.request,
		HourLedger:   m.ledger,
		Project:      m.project,
		TimeEntry:    m.timeEntry,
		User:         m.user,
		Discussion:   m.discussion,
		Notification: m.notification,
	}
	m.notification.EXPECT().CreateNotification(gomock.Any()).DoAndReturn(func(n *notification.Notification) error {
		m.notified = append(m.notified, n.Type)
		return nil
	}).AnyTimes()
	return m
}

func setupRequestMocks(t *testing.T) (*application.RequestService, *requestMocks) {
	m := newRequestMocks(t)
	hoursSvc := application.NewHourService(m.repos)
	notifySvc := application.NewNotificationService(m.repos, application.NewNotificationHub())
	return application.NewRequestService(m.repos, hoursSvc, notifySvc), m
}

func captureAudit(t *testing.T) *[]string {
	var actions []string
	orig := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
		actions = append(actions, action)
	}
	t.Cleanup(func() { utils.LogAuditWithConsole = orig })
	return &actions
}

func linkedRequest(p project.Project, allocated int64, status request.Status) request.Request {
	pid := p.ID
	return request.Request{
		ID:             uuid.New(),
		Title:          "Side impact run",
		ProjectID:      &pid,
		RequesterID:    3,
		Status:         status,
		Priority:       request.PriorityMedium,
		EstimatedHours: dec(allocated),
		AllocatedHours: dec(allocated),
	}
}

// --------------------- UpdateRequestStatus ---------------------

func TestUpdateRequestStatus_DeniedReturnsHours(t *testing.T) {
	audits := captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 35)
	req := linkedRequest(p, 15, request.StatusManagerReview)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).Return(nil)
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(20)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.Equal(t, request.StatusDenied, r.Status)
		assert.True(t, r.AllocatedHours.IsZero())
		return nil
	})

	c := testContext(7, "mgr", user.RoleManager)
	res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Denied"})
	require.NoError(t, err)
	assert.Empty(t, res.HoursWarning)
	require.NotNil(t, res.Hours)
	assert.True(t, res.Hours.BalanceAfter.Equal(dec(20)))
	assert.Equal(t, []string{audit.ActionStatusChange}, *audits)
	assert.Contains(t, m.notified, notification.TypeStatusChanged)
}

func TestUpdateRequestStatus_DeniedLedgerFailureStillSavesStatus(t *testing.T) {
	audits := captureAudit(t)
	svc, m := setupRequestMocks(t)
	// The project only has 5 used hours, so returning 15 would go negative.
	p := activeProject(100, 5)
	req := linkedRequest(p, 15, request.StatusManagerReview)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.Equal(t, request.StatusDenied, r.Status)
		assert.True(t, r.AllocatedHours.Equal(dec(15)))
		return nil
	})

	c := testContext(7, "mgr", user.RoleManager)
	res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Denied"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusDenied, res.Request.Status)
	assert.Nil(t, res.Hours)
	assert.Contains(t, res.HoursWarning, "cannot deallocate more than used")
	assert.Contains(t, *audits, audit.ActionReconciliationFailed)
	assert.Contains(t, *audits, audit.ActionStatusChange)
	assert.Contains(t, m.notified, notification.TypeHoursDriftFlagged)
}

func TestUpdateRequestStatus_CompletedSettlesActualHours(t *testing.T) {
	captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 20)
	engineer := uint(9)
	req := linkedRequest(p, 20, request.StatusReadyForReview)
	req.AssignedEngineerID = &engineer

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.timeEntry.EXPECT().SumHoursByRequest(req.ID).Return(dec(15), nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).DoAndReturn(func(tx *hours.Transaction) error {
		assert.Equal(t, hours.TypeDeallocation, tx.TransactionType)
		assert.True(t, tx.Hours.Equal(dec(-5)))
		return nil
	})
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(15)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).DoAndReturn(func(r *request.Request) error {
		assert.True(t, r.AllocatedHours.Equal(dec(15)))
		assert.NotNil(t, r.CompletedAt)
		return nil
	})

	c := testContext(7, "mgr", user.RoleManager)
	res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Completed"})
	require.NoError(t, err)
	assert.Empty(t, res.HoursWarning)
	assert.Equal(t, request.StatusCompleted, res.Request.Status)
}

func TestUpdateRequestStatus_CompletedWithoutTimeEntriesIsNoOp(t *testing.T) {
	captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 20)
	req := linkedRequest(p, 20, request.StatusReadyForReview)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.timeEntry.EXPECT().SumHoursByRequest(req.ID).Return(dec(0), nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Completed"})
	require.NoError(t, err)
	require.NotNil(t, res.Hours)
	assert.True(t, res.Hours.NoOp)
}

func TestUpdateRequestStatus_SameStatusDoesNothing(t *testing.T) {
	audits := captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 20)
	req := linkedRequest(p, 20, request.StatusDenied)

	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)

	c := testContext(7, "mgr", user.RoleManager)
	res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Denied"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusDenied, res.Request.Status)
	assert.Empty(t, *audits)
	assert.Empty(t, m.notified)
}

func TestUpdateRequestStatus_Permissions(t *testing.T) {
	captureAudit(t)
	p := activeProject(100, 20)

	t.Run("unassigned engineer", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		req := linkedRequest(p, 20, request.StatusInProgress)
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)

		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Ready for Review"})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("assigned engineer cannot complete", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		engineer := uint(9)
		req := linkedRequest(p, 20, request.StatusReadyForReview)
		req.AssignedEngineerID = &engineer
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)

		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Completed"})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("requester resubmits after revision", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		req := linkedRequest(p, 0, request.StatusRevisionRequested)
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
		m.request.EXPECT().SaveRequest(gomock.Any()).Return(nil)

		c := testContext(3, "req", user.RoleRequester)
		res, err := svc.UpdateRequestStatus(c, req.ID, request.UpdateStatusDTO{Status: "Submitted"})
		require.NoError(t, err)
		assert.Equal(t, request.StatusSubmitted, res.Request.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.UpdateRequestStatus(c, uuid.New(), request.UpdateStatusDTO{Status: "Shipped"})
		assert.ErrorIs(t, err, application.ErrInvalidRequestStatus)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		id := uuid.New()
		m.request.EXPECT().LockRequest(id).Return(request.Request{}, gorm.ErrRecordNotFound)

		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.UpdateRequestStatus(c, id, request.UpdateStatusDTO{Status: "Denied"})
		assert.ErrorIs(t, err, application.ErrRequestNotFound)
	})
}

// --------------------- AssignEngineer ---------------------

func TestAssignEngineer_AllocatesNetDifference(t *testing.T) {
	captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 10)
	req := linkedRequest(p, 10, request.StatusEngineeringReview)

	m.user.EXPECT().GetUserByID(uint(9)).Return(user.User{UID: 9, Username: "eng", Role: user.RoleEngineer}, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.project.EXPECT().GetProjectByID(p.ID).Return(p, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).DoAndReturn(func(tx *hours.Transaction) error {
		assert.True(t, tx.Hours.Equal(dec(15)))
		assert.Equal(t, "Assigned to eng", tx.Notes)
		return nil
	})
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(25)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	updated, err := svc.AssignEngineer(c, req.ID, request.AssignEngineerDTO{EngineerID: 9, EstimatedHours: dec(25)})
	require.NoError(t, err)
	assert.Equal(t, uint(9), *updated.AssignedEngineerID)
	assert.True(t, updated.AllocatedHours.Equal(dec(25)))
	assert.True(t, updated.EstimatedHours.Equal(dec(25)))
	assert.Equal(t, request.StatusInProgress, updated.Status)
	assert.Contains(t, m.notified, notification.TypeAssigned)
}

func TestAssignEngineer_ReleasesHoursOnSmallerEstimate(t *testing.T) {
	captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 30)
	req := linkedRequest(p, 30, request.StatusInProgress)

	m.user.EXPECT().GetUserByID(uint(9)).Return(user.User{UID: 9, Username: "eng", Role: user.RoleEngineer}, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.ledger.EXPECT().LockProject(p.ID).Return(p, nil)
	m.ledger.EXPECT().CreateTransaction(gomock.Any()).Return(nil)
	m.ledger.EXPECT().SetUsedHours(p.ID, decEq(12)).Return(nil)
	m.request.EXPECT().SaveRequest(gomock.Any()).Return(nil)

	c := testContext(7, "mgr", user.RoleManager)
	updated, err := svc.AssignEngineer(c, req.ID, request.AssignEngineerDTO{EngineerID: 9, EstimatedHours: dec(12)})
	require.NoError(t, err)
	assert.True(t, updated.AllocatedHours.Equal(dec(12)))
}

func TestAssignEngineer_InsufficientHoursAbortsAssignment(t *testing.T) {
	audits := captureAudit(t)
	svc, m := setupRequestMocks(t)
	p := activeProject(100, 90)
	req := linkedRequest(p, 0, request.StatusEngineeringReview)

	m.user.EXPECT().GetUserByID(uint(9)).Return(user.User{UID: 9, Username: "eng", Role: user.RoleEngineer}, nil)
	m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
	m.project.EXPECT().GetProjectByID(p.ID).Return(p, nil).Times(2)

	c := testContext(7, "mgr", user.RoleManager)
	_, err := svc.AssignEngineer(c, req.ID, request.AssignEngineerDTO{EngineerID: 9, EstimatedHours: dec(11)})
	require.ErrorIs(t, err, hours.ErrInsufficientHours)
	assert.Empty(t, *audits)
	assert.Empty(t, m.notified)
}

func TestAssignEngineer_Rejections(t *testing.T) {
	captureAudit(t)

	t.Run("engineer role required of caller", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.AssignEngineer(c, uuid.New(), request.AssignEngineerDTO{EngineerID: 9})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("requester cannot be assigned", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		m.user.EXPECT().GetUserByID(uint(3)).Return(user.User{UID: 3, Role: user.RoleRequester}, nil)
		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.AssignEngineer(c, uuid.New(), request.AssignEngineerDTO{EngineerID: 3})
		assert.ErrorIs(t, err, application.ErrNotAnEngineer)
	})

	t.Run("closed request", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		p := activeProject(100, 0)
		req := linkedRequest(p, 0, request.StatusCompleted)
		m.user.EXPECT().GetUserByID(uint(9)).Return(user.User{UID: 9, Role: user.RoleEngineer}, nil)
		m.request.EXPECT().LockRequest(req.ID).Return(req, nil)
		c := testContext(7, "mgr", user.RoleManager)
		_, err := svc.AssignEngineer(c, req.ID, request.AssignEngineerDTO{EngineerID: 9, EstimatedHours: dec(4)})
		assert.ErrorIs(t, err, application.ErrRequestClosed)
	})
}

func TestCreateRequest_Rejections(t *testing.T) {
	captureAudit(t)
	c := testContext(3, "req", user.RoleRequester)

	t.Run("unknown priority", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		prio := "Urgent"
		_, err := svc.CreateRequest(c, request.CreateRequestDTO{Title: "mesh study", Priority: &prio})
		assert.ErrorIs(t, err, application.ErrInvalidPriority)
	})

	t.Run("negative estimate", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		_, err := svc.CreateRequest(c, request.CreateRequestDTO{Title: "mesh study", EstimatedHours: dec(-1)})
		assert.ErrorIs(t, err, application.ErrNegativeHours)
	})

	t.Run("estimate finer than two decimal places", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		_, err := svc.CreateRequest(c, request.CreateRequestDTO{Title: "mesh study", EstimatedHours: decimal.RequireFromString("2.125")})
		assert.ErrorIs(t, err, application.ErrHoursPrecision)
	})
}

// --------------------- LogTime / ListRequests ---------------------

func TestLogTime(t *testing.T) {
	captureAudit(t)
	p := activeProject(100, 0)
	engineer := uint(9)

	t.Run("assigned engineer", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		req := linkedRequest(p, 10, request.StatusInProgress)
		req.AssignedEngineerID = &engineer
		m.request.EXPECT().GetRequestByID(req.ID).Return(req, nil)
		m.timeEntry.EXPECT().CreateTimeEntry(gomock.Any()).DoAndReturn(func(e *request.TimeEntry) error {
			assert.Equal(t, engineer, e.EngineerID)
			assert.True(t, e.Hours.Equal(dec(3)))
			return nil
		})

		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.LogTime(c, req.ID, request.LogTimeDTO{Hours: dec(3)})
		require.NoError(t, err)
	})

	t.Run("other engineer", func(t *testing.T) {
		svc, m := setupRequestMocks(t)
		req := linkedRequest(p, 10, request.StatusInProgress)
		req.AssignedEngineerID = &engineer
		m.request.EXPECT().GetRequestByID(req.ID).Return(req, nil)

		c := testContext(10, "other", user.RoleEngineer)
		_, err := svc.LogTime(c, req.ID, request.LogTimeDTO{Hours: dec(3)})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("non-positive hours", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.LogTime(c, uuid.New(), request.LogTimeDTO{Hours: dec(0)})
		assert.ErrorIs(t, err, application.ErrInvalidHours)
	})

	t.Run("more than two decimal places", func(t *testing.T) {
		svc, _ := setupRequestMocks(t)
		c := testContext(9, "eng", user.RoleEngineer)
		_, err := svc.LogTime(c, uuid.New(), request.LogTimeDTO{Hours: decimal.RequireFromString("0.333")})
		assert.ErrorIs(t, err, application.ErrHoursPrecision)
	})
}

func TestListRequests_RequesterSeesOwnOnly(t *testing.T) {
	svc, m := setupRequestMocks(t)

	m.request.EXPECT().ListRequests(gomock.Any()).DoAndReturn(func(f request.Filter) ([]request.Request, int64, error) {
		require.NotNil(t, f.RequesterID)
		assert.Equal(t, uint(3), *f.RequesterID)
		assert.Equal(t, 50, f.Limit)
		return nil, 0, nil
	})

	other := uint(99)
	c := testContext(3, "req", user.RoleRequester)
	_, _, err := svc.ListRequests(c, request.Filter{RequesterID: &other, Limit: 1000})
	require.NoError(t, err)
}
