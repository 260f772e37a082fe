package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report row types returned by the analytical query layer. These are flat
// scan targets for aggregate queries, not persisted tables.

// CurrentStepRow tells where an order item currently sits in its route:
// the lowest-numbered IN_PROGRESS step, else the lowest-numbered PLANNED one.
type CurrentStepRow struct {
	OrderID       string `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	OrderItemID   string `json:"order_item_id"`
	ProductName   string `json:"product_name"`
	RouteStepID   string `json:"route_step_id"`
	StepNo        int    `json:"step_no"`
	StepStatus    string `json:"step_status"`
	OperationName string `json:"operation_name"`
	WorkshopName  string `json:"workshop_name"`
}

// OverdueStepRow is a route step past its planned finish and not yet DONE
type OverdueStepRow struct {
	OrderID       string    `json:"order_id"`
	OrderItemID   string    `json:"order_item_id"`
	ProductName   string    `json:"product_name"`
	StepNo        int       `json:"step_no"`
	OperationName string    `json:"operation_name"`
	Status        string    `json:"status"`
	PlannedFinish time.Time `json:"planned_finish"`
	HoursOverdue  float64   `json:"hours_overdue"` // rounded to one decimal
}

// OverdueOrderRow is an order past its due date and not DONE/CANCELED
type OverdueOrderRow struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Priority     int       `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	DaysOverdue  int       `json:"days_overdue"`
}

// OrderWIPRow values the remaining planned work of one in-flight order
type OrderWIPRow struct {
	OrderID          string          `json:"order_id"`
	CustomerName     string          `json:"customer_name"`
	Status           string          `json:"status"`
	RemainingMinutes int64           `json:"remaining_minutes"`
	Valuation        decimal.Decimal `json:"valuation"`
}

// WorkshopWIPRow is the same valuation grouped by workshop. Steps without
// a workshop fall into the UNASSIGNED bucket.
type WorkshopWIPRow struct {
	WorkshopName     string          `json:"workshop_name"`
	RemainingMinutes int64           `json:"remaining_minutes"`
	Valuation        decimal.Decimal `json:"valuation"`
}

// UtilizationRow counts running and historical logs per equipment unit
type UtilizationRow struct {
	EquipmentID string `json:"equipment_id"`
	Name        string `json:"name"`
	ActiveLogs  int    `json:"active_logs"`
	TotalLogs   int    `json:"total_logs"`
}

// OperationDurationRow is the mean executed duration of one operation,
// across logs that have both timestamps. Operations never executed
// produce no row.
type OperationDurationRow struct {
	OperationName string  `json:"operation_name"`
	AvgMinutes    float64 `json:"avg_minutes"`
	Executions    int     `json:"executions"`
}

// WorkshopSummaryRow breaks a workshop's steps down by status
type WorkshopSummaryRow struct {
	WorkshopID      string `json:"workshop_id"`
	Name            string `json:"name"`
	PlannedSteps    int    `json:"planned_steps"`
	InProgressSteps int    `json:"in_progress_steps"`
	DoneSteps       int    `json:"done_steps"`
}

// TopProductRow ranks products by total ordered quantity
type TopProductRow struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
	OrderCount    int    `json:"order_count"`
}

// RouteDumpRow is one step of the full route listing
type RouteDumpRow struct {
	OrderID       string     `json:"order_id"`
	OrderItemID   string     `json:"order_item_id"`
	ProductName   string     `json:"product_name"`
	StepNo        int        `json:"step_no"`
	OperationName string     `json:"operation_name"`
	WorkshopName  string     `json:"workshop_name"`
	Status        string     `json:"status"`
	PlannedStart  *time.Time `json:"planned_start"`
	PlannedFinish *time.Time `json:"planned_finish"`
}

// ExecutionFactRow is one operation log joined to its surroundings,
// ordered to preserve retry chronology within a step
type ExecutionFactRow struct {
	OrderID       string     `json:"order_id"`
	ProductName   string     `json:"product_name"`
	StepNo        int        `json:"step_no"`
	OperationName string     `json:"operation_name"`
	EquipmentName string     `json:"equipment_name"`
	OperatorName  string     `json:"operator_name"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	Status        string     `json:"status"`
	ResultNote    string     `json:"result_note"`
}

// OrderListRow is one row of the orders-with-customer listing
type OrderListRow struct {
	OrderID      string     `json:"order_id"`
	CustomerName string     `json:"customer_name"`
	Status       string     `json:"status"`
	Priority     int        `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
}

// OrderCompositionRow is one item line of an order
type OrderCompositionRow struct {
	OrderID      string `json:"order_id"`
	ProductName  string `json:"product_name"`
	MaterialName string `json:"material_name"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
}
