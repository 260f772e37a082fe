package service

import (
	"context"
	"time"

	"mfgtrack/internal/config"
	"mfgtrack/internal/model"
	"mfgtrack/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService exposes the analytical reports. The evaluation clock is
// injected so overdue computations are deterministic, and the hourly rate
// comes from configuration — it is a policy knob, never derived.
type ReportService interface {
	OrdersWithCustomers(ctx context.Context) ([]model.OrderListRow, error)
	OrderComposition(ctx context.Context) ([]model.OrderCompositionRow, error)
	RouteDump(ctx context.Context) ([]model.RouteDumpRow, error)
	ExecutionFacts(ctx context.Context) ([]model.ExecutionFactRow, error)
	CurrentSteps(ctx context.Context) ([]model.CurrentStepRow, error)
	OverdueSteps(ctx context.Context) ([]model.OverdueStepRow, error)
	OverdueOrders(ctx context.Context) ([]model.OverdueOrderRow, error)
	WIPByOrder(ctx context.Context) ([]model.OrderWIPRow, error)
	WIPByWorkshop(ctx context.Context) ([]model.WorkshopWIPRow, error)
	EquipmentUtilization(ctx context.Context) ([]model.UtilizationRow, error)
	MeanOperationDurations(ctx context.Context) ([]model.OperationDurationRow, error)
	WorkshopSummary(ctx context.Context) ([]model.WorkshopSummaryRow, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error)
	OrderStats(ctx context.Context) ([]model.OrderStatsDaily, error)
}

type reportService struct {
	repo repository.ReportRepository
	rate decimal.Decimal
	now  func() time.Time
}

func NewReportService(repo repository.ReportRepository, cfg *config.Config, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{repo: repo, rate: cfg.RatePerHour, now: now}
}

func (s *reportService) OrdersWithCustomers(ctx context.Context) ([]model.OrderListRow, error) {
	return s.repo.OrdersWithCustomers(ctx)
}

func (s *reportService) OrderComposition(ctx context.Context) ([]model.OrderCompositionRow, error) {
	return s.repo.OrderComposition(ctx)
}

func (s *reportService) RouteDump(ctx context.Context) ([]model.RouteDumpRow, error) {
	return s.repo.RouteDump(ctx)
}

func (s *reportService) ExecutionFacts(ctx context.Context) ([]model.ExecutionFactRow, error) {
	return s.repo.ExecutionFacts(ctx)
}

func (s *reportService) CurrentSteps(ctx context.Context) ([]model.CurrentStepRow, error) {
	return s.repo.CurrentSteps(ctx)
}

func (s *reportService) OverdueSteps(ctx context.Context) ([]model.OverdueStepRow, error) {
	return s.repo.OverdueSteps(ctx, s.now())
}

func (s *reportService) OverdueOrders(ctx context.Context) ([]model.OverdueOrderRow, error) {
	return s.repo.OverdueOrders(ctx, s.now())
}

// valuation converts remaining minutes into currency: minutes / 60 × rate
func (s *reportService) valuation(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Mul(s.rate)
}

func (s *reportService) WIPByOrder(ctx context.Context) ([]model.OrderWIPRow, error) {
	rows, err := s.repo.WIPByOrder(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Valuation = s.valuation(rows[i].RemainingMinutes)
	}
	return rows, nil
}

func (s *reportService) WIPByWorkshop(ctx context.Context) ([]model.WorkshopWIPRow, error) {
	rows, err := s.repo.WIPByWorkshop(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Valuation = s.valuation(rows[i].RemainingMinutes)
	}
	return rows, nil
}

func (s *reportService) EquipmentUtilization(ctx context.Context) ([]model.UtilizationRow, error) {
	return s.repo.EquipmentUtilization(ctx)
}

func (s *reportService) MeanOperationDurations(ctx context.Context) ([]model.OperationDurationRow, error) {
	return s.repo.MeanOperationDurations(ctx)
}

func (s *reportService) WorkshopSummary(ctx context.Context) ([]model.WorkshopSummaryRow, error) {
	return s.repo.WorkshopSummary(ctx)
}

func (s *reportService) TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopProducts(ctx, limit)
}

func (s *reportService) OrderStats(ctx context.Context) ([]model.OrderStatsDaily, error) {
	return s.repo.OrderStats(ctx)
}
