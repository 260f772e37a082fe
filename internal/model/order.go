package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus constants
const (
	OrderStatusNew        = "NEW"
	OrderStatusPlanned    = "PLANNED"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusDone       = "DONE"
	OrderStatusCanceled   = "CANCELED"
)

// RouteStep status constants
const (
	StepStatusPlanned    = "PLANNED"
	StepStatusInProgress = "IN_PROGRESS"
	StepStatusDone       = "DONE"
)

// OperationLog status constants
const (
	LogStatusInProgress = "IN_PROGRESS"
	LogStatusDone       = "DONE"
	LogStatusFailed     = "FAILED"
)

// OrderStatuses enumerates every valid order status, used for
// allow-list validation before any store access.
var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusPlanned,
	OrderStatusInProgress,
	OrderStatusDone,
	OrderStatusCanceled,
}

// StepStatuses enumerates every valid route-step status.
var StepStatuses = []string{StepStatusPlanned, StepStatusInProgress, StepStatusDone}

// Order represents a customer commitment to produce one or more items.
// Status history lives in OrderStatusHistory; every transition updates
// the live Status column and appends a ledger row in one transaction.
type Order struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status     string               `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	Priority   int                  `gorm:"type:int;not null;default:3" json:"priority"` // 1 = highest
	DueDate    *time.Time           `gorm:"index" json:"due_date"`
	Note       string               `gorm:"type:text" json:"note"`
	Items      []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	History    []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// OrderItem is one product line within an Order
type OrderItem struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	MaterialID *uuid.UUID  `gorm:"type:uuid;index" json:"material_id"`
	Material   *Material   `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Quantity   int         `gorm:"type:int;not null" json:"quantity"`
	Notes      string      `gorm:"type:text" json:"notes"`
	Steps      []RouteStep `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

// RouteStep is one manufacturing operation in the chain producing an
// order item. StepNo values are unique per item and strictly increasing;
// they define the manufacturing order.
type RouteStep struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_item_step,priority:1" json:"order_item_id"`
	StepNo         int            `gorm:"type:int;not null;uniqueIndex:idx_item_step,priority:2" json:"step_no"`
	OperationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"operation_id"`
	Operation      *Operation     `gorm:"foreignKey:OperationID" json:"operation,omitempty"`
	WorkshopID     *uuid.UUID     `gorm:"type:uuid;index" json:"workshop_id"`
	Workshop       *Workshop      `gorm:"foreignKey:WorkshopID" json:"workshop,omitempty"`
	Status         string         `gorm:"type:varchar(20);not null;default:'PLANNED';index" json:"status"`
	PlannedMinutes *int           `gorm:"type:int" json:"planned_minutes"` // falls back to Operation.DefaultMinutes
	PlannedStart   *time.Time     `json:"planned_start"`
	PlannedFinish  *time.Time     `gorm:"index" json:"planned_finish"`
	Logs           []OperationLog `gorm:"foreignKey:RouteStepID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// OperationLog records one execution attempt of a route step. A step may
// have several logs (retries). FinishedAt stays null while work is running.
type OperationLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RouteStepID uuid.UUID  `gorm:"type:uuid;not null;index" json:"route_step_id"`
	EquipmentID *uuid.UUID `gorm:"type:uuid;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	OperatorID  *uuid.UUID `gorm:"type:uuid;index" json:"operator_id"`
	Operator    *User      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	Status      string     `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'" json:"status"`
	ResultNote  string     `gorm:"type:text" json:"result_note"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OrderStatusHistory is the append-only status transition ledger.
// Rows are never updated or deleted once written.
type OrderStatusHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    string     `gorm:"type:varchar(20);not null" json:"status"`
	ChangedAt time.Time  `gorm:"not null;index" json:"changed_at"`
	ChangedBy *uuid.UUID `gorm:"type:uuid" json:"changed_by"` // null for the public intake form
	Actor     *User      `gorm:"foreignKey:ChangedBy" json:"actor,omitempty"`
	Comment   string     `gorm:"type:text" json:"comment"`
}

// OrderStatsDaily is a precomputed status-per-day summary. It is refreshed
// by an external job; this service only reads it.
type OrderStatsDaily struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Status string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_stats_status_day,priority:1" json:"status"`
	Day    time.Time `gorm:"not null;uniqueIndex:idx_stats_status_day,priority:2" json:"day"`
	Count  int       `gorm:"type:int;not null" json:"count"`
}

func (OrderStatsDaily) TableName() string { return "order_stats_daily" }

// ID generation happens client-side so the schema stays portable across
// SQL dialects.

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (s *RouteStep) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (l *OperationLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (h *OrderStatusHistory) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

func (s *OrderStatsDaily) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidOrderStatus reports whether s is one of the allowed order statuses
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidStepStatus reports whether s is one of the allowed step statuses
func ValidStepStatus(s string) bool {
	for _, v := range StepStatuses {
		if v == s {
			return true
		}
	}
	return false
}
