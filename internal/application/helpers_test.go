package application_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/repository/mock"
	"github.com/linskybing/simtrack/pkg/types"
	"github.com/linskybing/simtrack/pkg/utils"
	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decEq(v int64) gomock.Matcher {
	return decimalMatcher{want: dec(v)}
}

func testContext(uid uint, username string, role user.Role) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("claims", &types.Claims{UserID: uid, Username: username, Role: role})
	return c
}

func silenceAudit(t *testing.T) {
	orig := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
	}
	t.Cleanup(func() { utils.LogAuditWithConsole = orig })
}

func activeProject(total, used int64) project.Project {
	return project.Project{
		ID:         uuid.New(),
		Code:       "000001-2026",
		Name:       "Crash sim",
		TotalHours: dec(total),
		UsedHours:  dec(used),
		Status:     project.StatusActive,
	}
}

// ledgerState backs the ledger mocks with an in-memory project row so a
// sequence of calls behaves like the real table.
type ledgerState struct {
	project project.Project
	txs     []hours.Transaction
}

func newStatefulMocks(ctrl *gomock.Controller, p project.Project) (*repository.Repos, *ledgerState) {
	st := &ledgerState{project: p}

	ledger := mock.NewMockHourLedgerRepo(ctrl)
	projects := mock.NewMockProjectRepo(ctrl)

	ledger.EXPECT().LockProject(p.ID).DoAndReturn(func(uuid.UUID) (project.Project, error) {
		return st.project, nil
	}).AnyTimes()
	ledger.EXPECT().CreateTransaction(gomock.Any()).DoAndReturn(func(tx *hours.Transaction) error {
		tx.ID = uuid.New()
		st.txs = append(st.txs, *tx)
		return nil
	}).AnyTimes()
	ledger.EXPECT().SetUsedHours(p.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, used decimal.Decimal) error {
		st.project.UsedHours = used
		return nil
	}).AnyTimes()
	ledger.EXPECT().SetTotalHours(p.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, total decimal.Decimal) error {
		st.project.TotalHours = total
		return nil
	}).AnyTimes()
	ledger.EXPECT().ListAllTransactions(p.ID).DoAndReturn(func(uuid.UUID) ([]hours.Transaction, error) {
		return append([]hours.Transaction(nil), st.txs...), nil
	}).AnyTimes()
	projects.EXPECT().GetProjectByID(p.ID).DoAndReturn(func(uuid.UUID) (project.Project, error) {
		return st.project, nil
	}).AnyTimes()

	return &repository.Repos{HourLedger: ledger, Project: projects}, st
}
