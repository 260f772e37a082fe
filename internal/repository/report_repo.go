package repository

import (
	"context"
	"math"
	"sort"
	"time"

	"mfgtrack/internal/model"

	"gorm.io/gorm"
)

// ReportRepository is the read-only analytical query layer. Every method
// computes its report from current store state; nothing is cached. Methods
// taking a `now` parameter are deterministic — the caller supplies the
// evaluation instant.
type ReportRepository interface {
	OrdersWithCustomers(ctx context.Context) ([]model.OrderListRow, error)
	OrderComposition(ctx context.Context) ([]model.OrderCompositionRow, error)
	RouteDump(ctx context.Context) ([]model.RouteDumpRow, error)
	ExecutionFacts(ctx context.Context) ([]model.ExecutionFactRow, error)
	CurrentSteps(ctx context.Context) ([]model.CurrentStepRow, error)
	OverdueSteps(ctx context.Context, now time.Time) ([]model.OverdueStepRow, error)
	OverdueOrders(ctx context.Context, now time.Time) ([]model.OverdueOrderRow, error)
	WIPByOrder(ctx context.Context) ([]model.OrderWIPRow, error)
	WIPByWorkshop(ctx context.Context) ([]model.WorkshopWIPRow, error)
	EquipmentUtilization(ctx context.Context) ([]model.UtilizationRow, error)
	MeanOperationDurations(ctx context.Context) ([]model.OperationDurationRow, error)
	WorkshopSummary(ctx context.Context) ([]model.WorkshopSummaryRow, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error)
	OrderStats(ctx context.Context) ([]model.OrderStatsDaily, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) OrdersWithCustomers(ctx context.Context) ([]model.OrderListRow, error) {
	var rows []model.OrderListRow
	err := GetDB(ctx, r.db).Table("orders").
		Select("orders.id as order_id, customers.name as customer_name, orders.status, orders.priority, orders.due_date, orders.created_at").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Order("orders.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) OrderComposition(ctx context.Context) ([]model.OrderCompositionRow, error) {
	var rows []model.OrderCompositionRow
	err := GetDB(ctx, r.db).Table("order_items").
		Select("order_items.order_id as order_id, products.name as product_name, COALESCE(materials.name, '') as material_name, order_items.quantity, order_items.notes").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("LEFT JOIN materials ON materials.id = order_items.material_id").
		Order("order_items.order_id ASC, products.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) RouteDump(ctx context.Context) ([]model.RouteDumpRow, error) {
	var rows []model.RouteDumpRow
	err := GetDB(ctx, r.db).Table("route_steps").
		Select(`order_items.order_id as order_id, order_items.id as order_item_id, products.name as product_name,
			route_steps.step_no, operations.name as operation_name, COALESCE(workshops.name, '') as workshop_name,
			route_steps.status, route_steps.planned_start, route_steps.planned_finish`).
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Joins("LEFT JOIN workshops ON workshops.id = route_steps.workshop_id").
		Order("order_items.order_id ASC, order_items.id ASC, route_steps.step_no ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ExecutionFacts(ctx context.Context) ([]model.ExecutionFactRow, error) {
	var rows []model.ExecutionFactRow
	// created_at then id keeps retry chronology within a step stable
	err := GetDB(ctx, r.db).Table("operation_logs").
		Select(`order_items.order_id as order_id, products.name as product_name, route_steps.step_no,
			operations.name as operation_name, COALESCE(equipment.name, '') as equipment_name,
			COALESCE(users.full_name, '') as operator_name, operation_logs.started_at,
			operation_logs.finished_at, operation_logs.status, operation_logs.result_note`).
		Joins("JOIN route_steps ON route_steps.id = operation_logs.route_step_id").
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Joins("LEFT JOIN equipment ON equipment.id = operation_logs.equipment_id").
		Joins("LEFT JOIN users ON users.id = operation_logs.operator_id").
		Order("order_items.order_id ASC, products.name ASC, route_steps.step_no ASC, operation_logs.created_at ASC, operation_logs.id ASC").
		Scan(&rows).Error
	return rows, err
}

// CurrentSteps returns at most one step per order item: the IN_PROGRESS step
// with the lowest step_no, else the PLANNED step with the lowest step_no.
// Items whose route is fully DONE (or empty) produce no row.
func (r *reportRepository) CurrentSteps(ctx context.Context) ([]model.CurrentStepRow, error) {
	var candidates []model.CurrentStepRow
	err := GetDB(ctx, r.db).Table("route_steps").
		Select(`order_items.order_id as order_id, orders.status as order_status, order_items.id as order_item_id,
			products.name as product_name, route_steps.id as route_step_id, route_steps.step_no,
			route_steps.status as step_status, operations.name as operation_name,
			COALESCE(workshops.name, '') as workshop_name`).
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Joins("LEFT JOIN workshops ON workshops.id = route_steps.workshop_id").
		Where("route_steps.status <> ?", model.StepStatusDone).
		Order("order_items.order_id ASC, order_items.id ASC, CASE WHEN route_steps.status = 'IN_PROGRESS' THEN 0 ELSE 1 END, route_steps.step_no ASC").
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	// First candidate per item wins; IN_PROGRESS outranks PLANNED regardless
	// of step_no because of the CASE rank above.
	rows := make([]model.CurrentStepRow, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.OrderItemID] {
			continue
		}
		seen[c.OrderItemID] = true
		rows = append(rows, c)
	}
	return rows, nil
}

func (r *reportRepository) OverdueSteps(ctx context.Context, now time.Time) ([]model.OverdueStepRow, error) {
	var rows []model.OverdueStepRow
	// planned_finish ascending == most overdue first
	err := GetDB(ctx, r.db).Table("route_steps").
		Select(`order_items.order_id as order_id, order_items.id as order_item_id, products.name as product_name,
			route_steps.step_no, operations.name as operation_name, route_steps.status, route_steps.planned_finish`).
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Where("route_steps.planned_finish IS NOT NULL AND route_steps.planned_finish < ? AND route_steps.status <> ?", now, model.StepStatusDone).
		Order("route_steps.planned_finish ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		hours := now.Sub(rows[i].PlannedFinish).Hours()
		rows[i].HoursOverdue = math.Round(hours*10) / 10
	}
	return rows, nil
}

func (r *reportRepository) OverdueOrders(ctx context.Context, now time.Time) ([]model.OverdueOrderRow, error) {
	var rows []model.OverdueOrderRow
	err := GetDB(ctx, r.db).Table("orders").
		Select("orders.id as order_id, customers.name as customer_name, orders.status, orders.priority, orders.due_date").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.due_date IS NOT NULL AND orders.due_date < ? AND orders.status NOT IN ?", now, []string{model.OrderStatusDone, model.OrderStatusCanceled}).
		Order("orders.due_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Days overdue are whole-day buckets, so two orders due hours apart can
	// tie; the sort has to happen on the truncated value, with ties going to
	// the highest-priority order (priority 1 beats priority 5).
	for i := range rows {
		rows[i].DaysOverdue = int(now.Sub(rows[i].DueDate).Hours() / 24)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DaysOverdue != rows[j].DaysOverdue {
			return rows[i].DaysOverdue > rows[j].DaysOverdue
		}
		return rows[i].Priority < rows[j].Priority
	})
	return rows, nil
}

// WIPByOrder sums the remaining planned minutes of every non-DONE step of
// orders that are PLANNED or IN_PROGRESS. The fallback chain is explicit:
// step planned_minutes, else the operation's default, else zero.
func (r *reportRepository) WIPByOrder(ctx context.Context) ([]model.OrderWIPRow, error) {
	var rows []model.OrderWIPRow
	err := GetDB(ctx, r.db).Table("route_steps").
		Select(`orders.id as order_id, customers.name as customer_name, orders.status,
			COALESCE(SUM(COALESCE(route_steps.planned_minutes, operations.default_minutes, 0)), 0) as remaining_minutes`).
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Where("route_steps.status <> ? AND orders.status IN ?", model.StepStatusDone, []string{model.OrderStatusPlanned, model.OrderStatusInProgress}).
		Group("orders.id, customers.name, orders.status").
		Order("remaining_minutes DESC").
		Scan(&rows).Error
	return rows, err
}

// UnassignedWorkshopBucket labels steps that have no workshop in the
// per-workshop WIP report.
const UnassignedWorkshopBucket = "UNASSIGNED"

func (r *reportRepository) WIPByWorkshop(ctx context.Context) ([]model.WorkshopWIPRow, error) {
	var rows []model.WorkshopWIPRow
	err := GetDB(ctx, r.db).Table("route_steps").
		Select(`COALESCE(workshops.name, '`+UnassignedWorkshopBucket+`') as workshop_name,
			COALESCE(SUM(COALESCE(route_steps.planned_minutes, operations.default_minutes, 0)), 0) as remaining_minutes`).
		Joins("JOIN order_items ON order_items.id = route_steps.order_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Joins("LEFT JOIN workshops ON workshops.id = route_steps.workshop_id").
		Where("route_steps.status <> ? AND orders.status IN ?", model.StepStatusDone, []string{model.OrderStatusPlanned, model.OrderStatusInProgress}).
		Group("workshops.name").
		Order("remaining_minutes DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) EquipmentUtilization(ctx context.Context) ([]model.UtilizationRow, error) {
	var rows []model.UtilizationRow
	err := GetDB(ctx, r.db).Table("equipment").
		Select(`equipment.id as equipment_id, equipment.name,
			COALESCE(SUM(CASE WHEN operation_logs.finished_at IS NULL AND operation_logs.id IS NOT NULL THEN 1 ELSE 0 END), 0) as active_logs,
			COUNT(operation_logs.id) as total_logs`).
		Joins("LEFT JOIN operation_logs ON operation_logs.equipment_id = equipment.id").
		Group("equipment.id, equipment.name").
		Order("active_logs DESC, equipment.name ASC").
		Scan(&rows).Error
	return rows, err
}

// MeanOperationDurations averages (finished_at - started_at) in minutes per
// operation over logs that have both timestamps. Time arithmetic happens
// here rather than in SQL so the report is dialect-independent.
func (r *reportRepository) MeanOperationDurations(ctx context.Context) ([]model.OperationDurationRow, error) {
	var logs []struct {
		OperationName string
		StartedAt     time.Time
		FinishedAt    time.Time
	}
	err := GetDB(ctx, r.db).Table("operation_logs").
		Select("operations.name as operation_name, operation_logs.started_at, operation_logs.finished_at").
		Joins("JOIN route_steps ON route_steps.id = operation_logs.route_step_id").
		Joins("JOIN operations ON operations.id = route_steps.operation_id").
		Where("operation_logs.finished_at IS NOT NULL").
		Scan(&logs).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]struct {
		minutes float64
		count   int
	})
	for _, l := range logs {
		agg := totals[l.OperationName]
		agg.minutes += l.FinishedAt.Sub(l.StartedAt).Minutes()
		agg.count++
		totals[l.OperationName] = agg
	}

	rows := make([]model.OperationDurationRow, 0, len(totals))
	for name, agg := range totals {
		rows = append(rows, model.OperationDurationRow{
			OperationName: name,
			AvgMinutes:    agg.minutes / float64(agg.count),
			Executions:    agg.count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgMinutes != rows[j].AvgMinutes {
			return rows[i].AvgMinutes > rows[j].AvgMinutes
		}
		return rows[i].OperationName < rows[j].OperationName
	})
	return rows, nil
}

func (r *reportRepository) WorkshopSummary(ctx context.Context) ([]model.WorkshopSummaryRow, error) {
	var rows []model.WorkshopSummaryRow
	err := GetDB(ctx, r.db).Table("workshops").
		Select(`workshops.id as workshop_id, workshops.name,
			COALESCE(SUM(CASE WHEN route_steps.status = 'PLANNED' THEN 1 ELSE 0 END), 0) as planned_steps,
			COALESCE(SUM(CASE WHEN route_steps.status = 'IN_PROGRESS' THEN 1 ELSE 0 END), 0) as in_progress_steps,
			COALESCE(SUM(CASE WHEN route_steps.status = 'DONE' THEN 1 ELSE 0 END), 0) as done_steps`).
		Joins("LEFT JOIN route_steps ON route_steps.workshop_id = workshops.id").
		Group("workshops.id, workshops.name").
		Order("workshops.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error) {
	var rows []model.TopProductRow
	err := GetDB(ctx, r.db).Table("order_items").
		Select(`products.id as product_id, products.name as product_name,
			SUM(order_items.quantity) as total_quantity,
			COUNT(DISTINCT order_items.order_id) as order_count`).
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.id, products.name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// OrderStats reads the externally refreshed status-per-day summary table
func (r *reportRepository) OrderStats(ctx context.Context) ([]model.OrderStatsDaily, error) {
	var rows []model.OrderStatsDaily
	err := GetDB(ctx, r.db).Order("day ASC, status ASC").Find(&rows).Error
	return rows, err
}
