package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mfgtrack/internal/model"
	"mfgtrack/internal/repository"
	ws "mfgtrack/internal/websocket"
	"mfgtrack/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type RouteStepRequest struct {
	StepNo         int        `json:"step_no"`
	OperationID    string     `json:"operation_id" binding:"required"`
	WorkshopID     string     `json:"workshop_id"`
	PlannedMinutes *int       `json:"planned_minutes"`
	PlannedStart   *time.Time `json:"planned_start"`
	PlannedFinish  *time.Time `json:"planned_finish"`
}

type OrderItemRequest struct {
	ProductID  string             `json:"product_id" binding:"required"`
	MaterialID string             `json:"material_id"`
	Quantity   int                `json:"quantity" binding:"required,gt=0"`
	Notes      string             `json:"notes"`
	Steps      []RouteStepRequest `json:"steps" binding:"omitempty,dive"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Priority   int                `json:"priority" binding:"omitempty,gte=1,lte=5"`
	DueDate    *time.Time         `json:"due_date"`
	Note       string             `json:"note"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// IntakeRequest is the public order form: customer contact plus items.
// An existing customer is matched by email, otherwise one is created.
type IntakeRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerEmail string             `json:"customer_email" binding:"required,email"`
	CustomerPhone string             `json:"customer_phone"`
	DueDate       *time.Time         `json:"due_date"`
	Note          string             `json:"note"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Priority *int       `json:"priority" binding:"omitempty,gte=1,lte=5"`
	DueDate  *time.Time `json:"due_date"`
	Note     *string    `json:"note"`
}

type ChangeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type StartLogRequest struct {
	EquipmentID string `json:"equipment_id"`
	Note        string `json:"note"`
}

type FinishLogRequest struct {
	Status     string `json:"status" binding:"required,oneof=DONE FAILED"`
	ResultNote string `json:"result_note"`
}

type ListOrdersQuery struct {
	Status   string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// orderSortFields is the allow-list of sortable columns; anything else is
// rejected before the store is touched.
var orderSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"priority":   true,
	"status":     true,
}

type OrderService interface {
	CreateOrder(ctx context.Context, actorID string, req CreateOrderRequest) (*model.Order, error)
	Intake(ctx context.Context, req IntakeRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, q ListOrdersQuery) ([]model.Order, int64, error)
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, orderID, actorID string, req ChangeStatusRequest) error
	History(ctx context.Context, orderID string) ([]model.OrderStatusHistory, error)
	AddStep(ctx context.Context, orderID, itemID string, req RouteStepRequest) (*model.RouteStep, error)
	UpdateStepStatus(ctx context.Context, stepID, status string) error
	StartLog(ctx context.Context, stepID, actorID string, req StartLogRequest) (*model.OperationLog, error)
	FinishLog(ctx context.Context, logID string, req FinishLogRequest) (*model.OperationLog, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	routeRepo    repository.RouteRepository
	historyRepo  repository.HistoryRepository
	customerRepo repository.CustomerRepository
	catalogRepo  repository.CatalogRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
	now          func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	routeRepo repository.RouteRepository,
	historyRepo repository.HistoryRepository,
	customerRepo repository.CustomerRepository,
	catalogRepo repository.CatalogRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
	now func() time.Time,
) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orderRepo:    orderRepo,
		routeRepo:    routeRepo,
		historyRepo:  historyRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		hub:          hub,
		now:          now,
	}
}

// buildItems validates item/step references against the catalog and turns
// request DTOs into models. Steps keep their request order; step_no must be
// strictly increasing within each item.
func (s *orderService) buildItems(ctx context.Context, items []OrderItemRequest) ([]model.OrderItem, error) {
	built := make([]model.OrderItem, 0, len(items))
	for _, ir := range items {
		productID, err := uuid.Parse(ir.ProductID)
		if err != nil {
			return nil, errors.New("invalid product_id")
		}
		if _, err := s.catalogRepo.GetProduct(ctx, ir.ProductID); err != nil {
			return nil, fmt.Errorf("product %s not found", ir.ProductID)
		}

		item := model.OrderItem{
			ProductID: productID,
			Quantity:  ir.Quantity,
			Notes:     ir.Notes,
		}

		if ir.MaterialID != "" {
			materialID, err := uuid.Parse(ir.MaterialID)
			if err != nil {
				return nil, errors.New("invalid material_id")
			}
			if _, err := s.catalogRepo.GetMaterial(ctx, ir.MaterialID); err != nil {
				return nil, fmt.Errorf("material %s not found", ir.MaterialID)
			}
			item.MaterialID = &materialID
		}

		lastNo := 0
		for i, sr := range ir.Steps {
			stepNo := sr.StepNo
			if stepNo == 0 {
				stepNo = lastNo + 1
			}
			if stepNo <= lastNo {
				return nil, fmt.Errorf("step_no must be strictly increasing, got %d after %d", stepNo, lastNo)
			}
			lastNo = stepNo

			step, err := s.buildStep(ctx, sr, stepNo)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			item.Steps = append(item.Steps, *step)
		}

		built = append(built, item)
	}
	return built, nil
}

func (s *orderService) buildStep(ctx context.Context, sr RouteStepRequest, stepNo int) (*model.RouteStep, error) {
	operationID, err := uuid.Parse(sr.OperationID)
	if err != nil {
		return nil, errors.New("invalid operation_id")
	}
	if _, err := s.catalogRepo.GetOperation(ctx, sr.OperationID); err != nil {
		return nil, fmt.Errorf("operation %s not found", sr.OperationID)
	}

	step := &model.RouteStep{
		StepNo:         stepNo,
		OperationID:    operationID,
		Status:         model.StepStatusPlanned,
		PlannedMinutes: sr.PlannedMinutes,
		PlannedStart:   sr.PlannedStart,
		PlannedFinish:  sr.PlannedFinish,
	}

	if sr.WorkshopID != "" {
		workshopID, err := uuid.Parse(sr.WorkshopID)
		if err != nil {
			return nil, errors.New("invalid workshop_id")
		}
		if _, err := s.catalogRepo.GetWorkshop(ctx, sr.WorkshopID); err != nil {
			return nil, fmt.Errorf("workshop %s not found", sr.WorkshopID)
		}
		step.WorkshopID = &workshopID
	}

	return step, nil
}

func (s *orderService) CreateOrder(ctx context.Context, actorID string, req CreateOrderRequest) (*model.Order, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, errors.New("customer not found")
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == 0 {
		priority = 3
	}

	order := &model.Order{
		CustomerID: customerID,
		Status:     model.OrderStatusNew,
		Priority:   priority,
		DueDate:    req.DueDate,
		Note:       req.Note,
		Items:      items,
	}

	actor := parseActor(actorID)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return s.historyRepo.Append(txCtx, &model.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    model.OrderStatusNew,
			ChangedAt: s.now(),
			ChangedBy: actor,
			Comment:   "order created",
		})
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByIDWithDetails(ctx, order.ID)
}

func (s *orderService) Intake(ctx context.Context, req IntakeRequest) (*model.Order, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByEmail(ctx, req.CustomerEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = &model.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerID: customer.ID,
		Status:     model.OrderStatusNew,
		Priority:   3,
		DueDate:    req.DueDate,
		Note:       req.Note,
		Items:      items,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		// Public form: no authenticated actor on the seed entry
		return s.historyRepo.Append(txCtx, &model.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    model.OrderStatusNew,
			ChangedAt: s.now(),
			Comment:   "order received via intake form",
		})
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByIDWithDetails(ctx, order.ID)
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid order id")
	}
	order, err := s.orderRepo.FindByIDWithDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, q ListOrdersQuery) ([]model.Order, int64, error) {
	if q.Status != "" && !model.ValidOrderStatus(q.Status) {
		return nil, 0, fmt.Errorf("invalid status filter %q", q.Status)
	}
	if q.SortBy != "" && !orderSortFields[q.SortBy] {
		return nil, 0, fmt.Errorf("invalid sort field %q", q.SortBy)
	}
	q.Page, q.Limit = pagination.Clamp(q.Page, q.Limit)

	return s.orderRepo.List(ctx, repository.OrderListFilter{
		Status:   q.Status,
		SortBy:   q.SortBy,
		SortDesc: q.SortDesc,
		Page:     q.Page,
		Limit:    q.Limit,
	})
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid order id")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}

	if req.Priority != nil {
		order.Priority = *req.Priority
	}
	if req.DueDate != nil {
		order.DueDate = req.DueDate
	}
	if req.Note != nil {
		order.Note = *req.Note
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByIDWithDetails(ctx, orderID)
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return errors.New("invalid order id")
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("order not found")
		}
		return err
	}
	return nil
}

// ChangeStatus applies a status transition as one all-or-nothing unit: the
// live status column and the ledger append commit together, so the two can
// never diverge.
func (s *orderService) ChangeStatus(ctx context.Context, orderID, actorID string, req ChangeStatusRequest) error {
	if !model.ValidOrderStatus(req.Status) {
		return fmt.Errorf("invalid status %q", req.Status)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return errors.New("invalid order id")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("order not found")
	}
	oldStatus := order.Status

	actor := parseActor(actorID)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.UpdateStatus(txCtx, id, req.Status); err != nil {
			return err
		}
		return s.historyRepo.Append(txCtx, &model.OrderStatusHistory{
			OrderID:   id,
			Status:    req.Status,
			ChangedAt: s.now(),
			ChangedBy: actor,
			Comment:   req.Comment,
		})
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.BroadcastOrderEvent(ws.OrderEvent{
			Event:     "order_status_changed",
			OrderID:   orderID,
			OldStatus: oldStatus,
			NewStatus: req.Status,
		})
	}
	return nil
}

func (s *orderService) History(ctx context.Context, orderID string) ([]model.OrderStatusHistory, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order id")
	}
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return nil, errors.New("order not found")
	}
	return s.historyRepo.ListByOrder(ctx, id)
}

// AddStep appends a step to an item's route. The new step_no must sit
// strictly after the current maximum; routes only ever grow at the end.
func (s *orderService) AddStep(ctx context.Context, orderID, itemID string, req RouteStepRequest) (*model.RouteStep, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order id")
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return nil, errors.New("invalid item id")
	}

	item, err := s.orderRepo.FindItem(ctx, iid)
	if err != nil {
		return nil, errors.New("order item not found")
	}
	if item.OrderID != oid {
		return nil, errors.New("order item not found")
	}

	maxNo, err := s.routeRepo.MaxStepNo(ctx, iid)
	if err != nil {
		return nil, err
	}

	stepNo := req.StepNo
	if stepNo == 0 {
		stepNo = maxNo + 1
	}
	if stepNo <= maxNo {
		return nil, fmt.Errorf("step_no must be greater than %d", maxNo)
	}

	step, err := s.buildStep(ctx, req, stepNo)
	if err != nil {
		return nil, err
	}
	step.OrderItemID = iid

	if err := s.routeRepo.CreateStep(ctx, step); err != nil {
		return nil, err
	}
	return s.routeRepo.GetStep(ctx, step.ID)
}

func (s *orderService) UpdateStepStatus(ctx context.Context, stepID, status string) error {
	if !model.ValidStepStatus(status) {
		return fmt.Errorf("invalid step status %q", status)
	}
	id, err := uuid.Parse(stepID)
	if err != nil {
		return errors.New("invalid step id")
	}
	if err := s.routeRepo.UpdateStepStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("route step not found")
		}
		return err
	}
	return nil
}

// StartLog opens an execution attempt on a step and moves the step to
// IN_PROGRESS in the same transaction.
func (s *orderService) StartLog(ctx context.Context, stepID, actorID string, req StartLogRequest) (*model.OperationLog, error) {
	sid, err := uuid.Parse(stepID)
	if err != nil {
		return nil, errors.New("invalid step id")
	}
	if _, err := s.routeRepo.GetStep(ctx, sid); err != nil {
		return nil, errors.New("route step not found")
	}

	entry := &model.OperationLog{
		RouteStepID: sid,
		OperatorID:  parseActor(actorID),
		StartedAt:   s.now(),
		Status:      model.LogStatusInProgress,
		ResultNote:  req.Note,
	}

	if req.EquipmentID != "" {
		eid, err := uuid.Parse(req.EquipmentID)
		if err != nil {
			return nil, errors.New("invalid equipment_id")
		}
		if _, err := s.catalogRepo.GetEquipment(ctx, req.EquipmentID); err != nil {
			return nil, errors.New("equipment not found")
		}
		entry.EquipmentID = &eid
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.routeRepo.CreateLog(txCtx, entry); err != nil {
			return err
		}
		return s.routeRepo.UpdateStepStatus(txCtx, sid, model.StepStatusInProgress)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FinishLog closes an execution attempt. A DONE outcome also completes the
// owning step.
func (s *orderService) FinishLog(ctx context.Context, logID string, req FinishLogRequest) (*model.OperationLog, error) {
	id, err := uuid.Parse(logID)
	if err != nil {
		return nil, errors.New("invalid log id")
	}

	entry, err := s.routeRepo.GetLog(ctx, id)
	if err != nil {
		return nil, errors.New("operation log not found")
	}
	if entry.FinishedAt != nil {
		return nil, errors.New("operation log already finished")
	}

	finishedAt := s.now()
	entry.FinishedAt = &finishedAt
	entry.Status = req.Status
	if req.ResultNote != "" {
		entry.ResultNote = req.ResultNote
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.routeRepo.UpdateLog(txCtx, entry); err != nil {
			return err
		}
		if req.Status == model.LogStatusDone {
			return s.routeRepo.UpdateStepStatus(txCtx, entry.RouteStepID, model.StepStatusDone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func parseActor(actorID string) *uuid.UUID {
	if actorID == "" {
		return nil
	}
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil
	}
	return &id
}
