package application

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/internal/metrics"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HourService owns every mutation of a project's hour budget. Each call runs
// lock, validate, insert and update inside one database transaction, using
// the project row lock as the only serialization point.
type HourService struct {
	Repos *repository.Repos
}

func NewHourService(repos *repository.Repos) *HourService {
	return &HourService{
		Repos: repos,
	}
}

// WithRepos returns a ledger bound to repos. When repos come from
// Repos.ExecTx or Repos.WithTx the ledger joins that transaction and never
// begins or commits on its own.
func (s *HourService) WithRepos(repos *repository.Repos) *HourService {
	return &HourService{
		Repos: repos,
	}
}

// RecordHourTransaction applies a signed amount to the project's used hours
// and appends the matching ledger entry.
func (s *HourService) RecordHourTransaction(ctx context.Context, in hours.RecordInput) (*hours.Result, error) {
	if in.Hours.IsZero() {
		return nil, s.fail(in.TransactionType, hours.NewInvalidArgument("hours must be non-zero"))
	}
	if !hours.HasValidScale(in.Hours) {
		return nil, s.fail(in.TransactionType, hours.NewInvalidArgument("hours must have at most 2 decimal places"))
	}
	switch in.TransactionType {
	case hours.TypeAllocation, hours.TypeDeallocation, hours.TypeAdjustment:
	default:
		return nil, s.fail(in.TransactionType, hours.NewInvalidArgument("unsupported transaction type: "+string(in.TransactionType)))
	}

	var result *hours.Result
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.HourLedger.LockProject(in.ProjectID)
		if err != nil {
			return notFoundOr(in.ProjectID, err)
		}

		newUsed := p.UsedHours.Add(in.Hours)
		if in.Hours.IsPositive() && !project.IsActive(p.Status) {
			return hours.NewInvalidState(string(p.Status))
		}
		if newUsed.GreaterThan(p.TotalHours) {
			return hours.NewInsufficientHours(in.Hours, p.AvailableHours())
		}
		if newUsed.IsNegative() {
			return hours.NewOverDeallocation(in.Hours.Abs(), p.UsedHours)
		}

		entry := &hours.Transaction{
			ProjectID:       p.ID,
			RequestID:       in.RequestID,
			TransactionType: in.TransactionType,
			Hours:           in.Hours,
			BalanceBefore:   p.UsedHours,
			BalanceAfter:    newUsed,
			PerformedByID:   in.PerformedBy.ID,
			PerformedByName: in.PerformedBy.Name,
			Notes:           in.Notes,
		}
		if err := r.HourLedger.CreateTransaction(entry); err != nil {
			return err
		}
		if err := r.HourLedger.SetUsedHours(p.ID, newUsed); err != nil {
			return err
		}

		result = &hours.Result{
			Transaction:   entry,
			BalanceBefore: p.UsedHours,
			BalanceAfter:  newUsed,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(in.TransactionType, s.classify("record "+string(in.TransactionType), err))
	}

	s.observe(in.TransactionType, in.Hours)
	return result, nil
}

func (s *HourService) AllocateHoursToRequest(ctx context.Context, projectID, requestID uuid.UUID, amount decimal.Decimal, actor hours.Actor, notes string) (*hours.Result, error) {
	if !amount.IsPositive() {
		return nil, s.fail(hours.TypeAllocation, hours.NewInvalidArgument("hours to allocate must be positive"))
	}
	return s.RecordHourTransaction(ctx, hours.RecordInput{
		ProjectID:       projectID,
		RequestID:       &requestID,
		TransactionType: hours.TypeAllocation,
		Hours:           amount,
		PerformedBy:     actor,
		Notes:           notes,
	})
}

func (s *HourService) DeallocateHoursFromRequest(ctx context.Context, projectID, requestID uuid.UUID, amount decimal.Decimal, actor hours.Actor, notes string) (*hours.Result, error) {
	if !amount.IsPositive() {
		return nil, s.fail(hours.TypeDeallocation, hours.NewInvalidArgument("hours to deallocate must be positive"))
	}
	return s.RecordHourTransaction(ctx, hours.RecordInput{
		ProjectID:       projectID,
		RequestID:       &requestID,
		TransactionType: hours.TypeDeallocation,
		Hours:           amount.Neg(),
		PerformedBy:     actor,
		Notes:           notes,
	})
}

// AdjustProjectHours records a manual correction that is not tied to any request.
func (s *HourService) AdjustProjectHours(ctx context.Context, projectID uuid.UUID, delta decimal.Decimal, actor hours.Actor, notes string) (*hours.Result, error) {
	if delta.IsZero() {
		return nil, s.fail(hours.TypeAdjustment, hours.NewInvalidArgument("adjustment must be non-zero"))
	}
	return s.RecordHourTransaction(ctx, hours.RecordInput{
		ProjectID:       projectID,
		TransactionType: hours.TypeAdjustment,
		Hours:           delta,
		PerformedBy:     actor,
		Notes:           notes,
	})
}

// FinalizeRequestHours settles a request's allocation against the hours
// actually spent. Equal amounts touch nothing.
func (s *HourService) FinalizeRequestHours(ctx context.Context, projectID, requestID uuid.UUID, allocated, actual decimal.Decimal, actor hours.Actor) (*hours.Result, error) {
	if allocated.IsNegative() || actual.IsNegative() {
		return nil, hours.NewInvalidArgument("allocated and actual hours must not be negative")
	}
	if !hours.HasValidScale(allocated) || !hours.HasValidScale(actual) {
		return nil, hours.NewInvalidArgument("hours must have at most 2 decimal places")
	}

	switch actual.Cmp(allocated) {
	case 0:
		metrics.LedgerOperations.WithLabelValues("FINALIZE", metrics.OutcomeNoOp).Inc()
		return &hours.Result{NoOp: true}, nil
	case -1:
		diff := allocated.Sub(actual)
		return s.DeallocateHoursFromRequest(ctx, projectID, requestID, diff, actor,
			"Request completed: returned "+diff.String()+" unused hours")
	default:
		diff := actual.Sub(allocated)
		return s.AllocateHoursToRequest(ctx, projectID, requestID, diff, actor,
			"Request completed: charged "+diff.String()+" hours over allocation")
	}
}

// ExtendProjectHours raises the project's total budget and records an
// EXTENSION entry whose balances both equal the unchanged used hours.
func (s *HourService) ExtendProjectHours(ctx context.Context, projectID uuid.UUID, additional decimal.Decimal, actor hours.Actor, notes string) (*hours.Result, error) {
	if !additional.IsPositive() {
		return nil, s.fail(hours.TypeExtension, hours.NewInvalidArgument("additional hours must be positive"))
	}
	if !hours.HasValidScale(additional) {
		return nil, s.fail(hours.TypeExtension, hours.NewInvalidArgument("hours must have at most 2 decimal places"))
	}

	var result *hours.Result
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.HourLedger.LockProject(projectID)
		if err != nil {
			return notFoundOr(projectID, err)
		}
		if err := r.HourLedger.SetTotalHours(p.ID, p.TotalHours.Add(additional)); err != nil {
			return err
		}
		entry := &hours.Transaction{
			ProjectID:       p.ID,
			TransactionType: hours.TypeExtension,
			Hours:           additional,
			BalanceBefore:   p.UsedHours,
			BalanceAfter:    p.UsedHours,
			PerformedByID:   actor.ID,
			PerformedByName: actor.Name,
			Notes:           notes,
		}
		if err := r.HourLedger.CreateTransaction(entry); err != nil {
			return err
		}
		result = &hours.Result{
			Transaction:   entry,
			BalanceBefore: p.UsedHours,
			BalanceAfter:  p.UsedHours,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(hours.TypeExtension, s.classify("extend project hours", err))
	}

	s.observe(hours.TypeExtension, additional)
	return result, nil
}

// ValidateHourAvailability is a read-only pre-flight check. A missing project
// yields a zero Availability and no error.
func (s *HourService) ValidateHourAvailability(ctx context.Context, projectID uuid.UUID, needed decimal.Decimal) (hours.Availability, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hours.Availability{}, nil
	}
	if err != nil {
		return hours.Availability{}, s.classify("validate availability", err)
	}

	available := p.AvailableHours()
	return hours.Availability{
		Available:        needed.LessThanOrEqual(available) && project.IsActive(p.Status),
		CurrentAvailable: available,
		TotalHours:       p.TotalHours,
		UsedHours:        p.UsedHours,
	}, nil
}

// RequireAvailability runs ValidateHourAvailability and turns a negative
// answer into the ledger error the allocation itself would return.
func (s *HourService) RequireAvailability(ctx context.Context, projectID uuid.UUID, needed decimal.Decimal) error {
	av, err := s.ValidateHourAvailability(ctx, projectID, needed)
	if err != nil {
		return err
	}
	if av.Available {
		return nil
	}

	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return notFoundOr(projectID, err)
	}
	if !project.IsActive(p.Status) {
		return hours.NewInvalidState(string(p.Status))
	}
	return hours.NewInsufficientHours(needed, av.CurrentAvailable)
}

func (s *HourService) GetProjectHourHistory(ctx context.Context, projectID uuid.UUID, limit, offset int) (*hours.History, error) {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	if limit > config.MaxHistoryLimit {
		limit = config.MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.Repos.Project.GetProjectByID(projectID); err != nil {
		return nil, s.classify("load history", notFoundOr(projectID, err))
	}
	txs, err := s.Repos.HourLedger.ListTransactions(projectID, limit, offset)
	if err != nil {
		return nil, s.classify("load history", err)
	}
	total, err := s.Repos.HourLedger.CountTransactions(projectID)
	if err != nil {
		return nil, s.classify("count history", err)
	}
	if txs == nil {
		txs = []hours.TransactionView{}
	}

	return &hours.History{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// GetRequestAllocatedHours sums every ledger entry tagged to the request.
func (s *HourService) GetRequestAllocatedHours(ctx context.Context, projectID, requestID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.Repos.HourLedger.SumByRequest(projectID, requestID)
	if err != nil {
		return decimal.Zero, s.classify("sum request hours", err)
	}
	return total, nil
}

func (s *HourService) GetProjectHourSummary(ctx context.Context, projectID uuid.UUID) (*hours.Summary, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return nil, s.classify("load summary", notFoundOr(projectID, err))
	}
	rows, err := s.Repos.HourLedger.SumByType(projectID)
	if err != nil {
		return nil, s.classify("load summary", err)
	}

	byType := map[hours.TransactionType]decimal.Decimal{
		hours.TypeAllocation:   decimal.Zero,
		hours.TypeDeallocation: decimal.Zero,
		hours.TypeAdjustment:   decimal.Zero,
		hours.TypeExtension:    decimal.Zero,
	}
	for _, row := range rows {
		byType[row.TransactionType] = row.Total
	}

	return &hours.Summary{
		ProjectID:      p.ID,
		TotalHours:     p.TotalHours,
		UsedHours:      p.UsedHours,
		AvailableHours: p.AvailableHours(),
		ByType:         byType,
	}, nil
}

// ReconcileProject replays the project's ledger and compares the result with
// the cached used hours.
func (s *HourService) ReconcileProject(ctx context.Context, projectID uuid.UUID) (*hours.Reconciliation, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return nil, s.classify("reconcile", notFoundOr(projectID, err))
	}
	return s.reconcile(p)
}

func (s *HourService) reconcile(p project.Project) (*hours.Reconciliation, error) {
	txs, err := s.Repos.HourLedger.ListAllTransactions(p.ID)
	if err != nil {
		return nil, s.classify("reconcile", err)
	}

	replayed, broken := hours.Replay(txs)
	return &hours.Reconciliation{
		ProjectID:     p.ID,
		ProjectCode:   p.Code,
		CachedUsed:    p.UsedHours,
		ReplayedUsed:  replayed,
		Transactions:  len(txs),
		BrokenChainAt: broken,
		Consistent:    replayed.Equal(p.UsedHours) && broken == nil,
	}, nil
}

// ReconcileAll checks every project and updates the drift gauge.
func (s *HourService) ReconcileAll(ctx context.Context) ([]hours.Reconciliation, error) {
	projects, err := s.Repos.Project.ListProjects(project.ProjectFilter{})
	if err != nil {
		return nil, s.classify("reconcile all", err)
	}

	out := make([]hours.Reconciliation, 0, len(projects))
	drift := 0
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rec, err := s.reconcile(p)
		if err != nil {
			return out, err
		}
		if !rec.Consistent {
			drift++
			log.Printf("[Hours] project %s (%s) out of balance: cached=%s replayed=%s", p.Code, p.ID, rec.CachedUsed, rec.ReplayedUsed)
		}
		out = append(out, *rec)
	}

	metrics.LedgerDrift.Set(float64(drift))
	return out, nil
}

// classify passes ledger errors through and hides everything else behind a
// transient error after logging the cause.
func (s *HourService) classify(op string, err error) error {
	var le *hours.LedgerError
	if errors.As(err, &le) {
		return le
	}
	log.Printf("[Hours] %s failed: %v", op, err)
	return hours.NewTransient()
}

func (s *HourService) fail(t hours.TransactionType, err error) error {
	metrics.LedgerOperations.WithLabelValues(string(t), metrics.OutcomeError).Inc()
	return err
}

func (s *HourService) observe(t hours.TransactionType, amount decimal.Decimal) {
	metrics.LedgerOperations.WithLabelValues(string(t), metrics.OutcomeSuccess).Inc()
	metrics.LedgerHours.WithLabelValues(string(t)).Add(amount.Abs().InexactFloat64())
}

func notFoundOr(projectID uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hours.NewProjectNotFound(projectID)
	}
	return err
}
