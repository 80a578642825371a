package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/repository/mock"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withClaims(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claims", &types.Claims{UserID: 1, Username: "mgr", Role: role})
		c.Next()
	}
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"forbidden", application.ErrForbidden, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("load: %w", application.ErrRequestNotFound), http.StatusNotFound},
		{"conflict", application.ErrDiscussionPending, http.StatusConflict},
		{"ledger insufficient", hours.NewInsufficientHours(decimal.NewFromInt(5), decimal.NewFromInt(2)), http.StatusConflict},
		{"ledger invalid argument", hours.NewInvalidArgument("bad"), http.StatusBadRequest},
		{"ledger transient", hours.NewTransient(), http.StatusInternalServerError},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { respondError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestBindError_FriendlyMessages(t *testing.T) {
	type input struct {
		Title string `json:"title" binding:"required"`
	}
	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		var in input
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func setupProjectRouter(t *testing.T) (*gin.Engine, *mock.MockProjectRepo, *mock.MockHourLedgerRepo) {
	ctrl := gomock.NewController(t)
	mockProject := mock.NewMockProjectRepo(ctrl)
	mockLedger := mock.NewMockHourLedgerRepo(ctrl)
	repos := &repository.Repos{
		Project:      mockProject,
		HourLedger:   mockLedger,
		Request:      mock.NewMockRequestRepo(ctrl),
		Audit:        mock.NewMockAuditRepo(ctrl),
		Notification: mock.NewMockNotificationRepo(ctrl),
	}
	svc := application.New(repos, nil)
	ph := NewProjectHandler(svc.Project)
	hh := NewHoursHandler(svc.Hours, svc.Request)

	r := gin.New()
	r.Use(withClaims(user.RoleManager))
	r.POST("/projects/:id/hours/adjust", ph.AdjustHours)
	r.GET("/projects/:id/hours/history", hh.GetHistory)
	r.GET("/projects/:id/hours/availability", hh.CheckAvailability)
	return r, mockProject, mockLedger
}

func TestAdjustHours_InsufficientReturnsLedgerCode(t *testing.T) {
	r, _, mockLedger := setupProjectRouter(t)
	p := project.Project{
		ID:         uuid.New(),
		Status:     project.StatusActive,
		TotalHours: decimal.NewFromInt(100),
		UsedHours:  decimal.NewFromInt(80),
	}
	mockLedger.EXPECT().LockProject(p.ID).Return(p, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects/"+p.ID.String()+"/hours/adjust", strings.NewReader(`{"hours": 30, "notes": "rerun"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body response.LedgerErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, hours.CodeInsufficientHours, body.Code)
	require.NotNil(t, body.AvailableHours)
	assert.True(t, body.AvailableHours.Equal(decimal.NewFromInt(20)))
}

func TestGetHistory_UnknownProject(t *testing.T) {
	r, mockProject, _ := setupProjectRouter(t)
	id := uuid.New()
	mockProject.EXPECT().GetProjectByID(id).Return(project.Project{}, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/"+id.String()+"/hours/history", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), string(hours.CodeProjectNotFound))
}

func TestCheckAvailability_BadInput(t *testing.T) {
	r, _, _ := setupProjectRouter(t)
	id := uuid.New().String()

	for _, q := range []string{"", "?hours=abc", "?hours=-1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/"+id+"/hours/availability"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid/hours/availability?hours=1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
