package repository

import (
	"context"
	"testing"
	"time"

	"mfgtrack/internal/database"
	"mfgtrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory sqlite is per-connection; keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// reportFixture is a small shop floor frozen at fixture.now:
//
//	Order A (Acme, IN_PROGRESS, priority 1, due 5 days ago)
//	  Widget x5: Cutting DONE -> Welding IN_PROGRESS (36h overdue) -> Painting PLANNED
//	Order B (Beta, PLANNED, priority 3, due in 3 days)
//	  Gadget x2: Cutting PLANNED (12h overdue) -> Welding IN_PROGRESS
//	Order C (Acme, DONE, due 10 days ago)
//	  Widget x7: Cutting DONE
//	Order D (Beta, NEW, priority 2, due 5 days ago)
//	  Widget x1: Cutting PLANNED (100 planned minutes)
type reportFixture struct {
	now time.Time

	acme, beta       model.Customer
	widget, gadget   model.Product
	steel            model.Material
	cutting, welding model.Operation
	painting         model.Operation
	north, south     model.Workshop
	lathe, press     model.Equipment
	operator         model.User

	orderA, orderB, orderC, orderD model.Order
	itemA, itemB, itemC, itemD     model.OrderItem
	stepA2, stepB2                 model.RouteStep
}

func seedReportFixture(t *testing.T, db *gorm.DB) *reportFixture {
	t.Helper()
	f := &reportFixture{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	f.acme = model.Customer{ID: uuid.New(), Name: "Acme", Email: "acme@example.com"}
	f.beta = model.Customer{ID: uuid.New(), Name: "Beta", Email: "beta@example.com"}
	require.NoError(t, db.Create(&f.acme).Error)
	require.NoError(t, db.Create(&f.beta).Error)

	f.widget = model.Product{ID: uuid.New(), SKU: "W-1", Name: "Widget"}
	f.gadget = model.Product{ID: uuid.New(), SKU: "G-1", Name: "Gadget"}
	require.NoError(t, db.Create(&f.widget).Error)
	require.NoError(t, db.Create(&f.gadget).Error)

	f.steel = model.Material{ID: uuid.New(), Name: "Steel"}
	require.NoError(t, db.Create(&f.steel).Error)

	f.cutting = model.Operation{ID: uuid.New(), Name: "Cutting", DefaultMinutes: intPtr(30)}
	f.welding = model.Operation{ID: uuid.New(), Name: "Welding", DefaultMinutes: intPtr(60)}
	f.painting = model.Operation{ID: uuid.New(), Name: "Painting"} // no default estimate
	require.NoError(t, db.Create(&f.cutting).Error)
	require.NoError(t, db.Create(&f.welding).Error)
	require.NoError(t, db.Create(&f.painting).Error)

	f.north = model.Workshop{ID: uuid.New(), Name: "North"}
	f.south = model.Workshop{ID: uuid.New(), Name: "South"}
	require.NoError(t, db.Create(&f.north).Error)
	require.NoError(t, db.Create(&f.south).Error)

	f.lathe = model.Equipment{ID: uuid.New(), Name: "Lathe-1", WorkshopID: &f.north.ID}
	f.press = model.Equipment{ID: uuid.New(), Name: "Press-1", WorkshopID: &f.south.ID}
	require.NoError(t, db.Create(&f.lathe).Error)
	require.NoError(t, db.Create(&f.press).Error)

	f.operator = model.User{ID: uuid.New(), Username: "jo", FullName: "Jo Operator", Password: "x", Role: model.RoleManager}
	require.NoError(t, db.Create(&f.operator).Error)

	// Order A
	f.orderA = model.Order{
		ID: uuid.New(), CustomerID: f.acme.ID, Status: model.OrderStatusInProgress,
		Priority: 1, DueDate: timePtr(f.now.Add(-5 * 24 * time.Hour)),
	}
	require.NoError(t, db.Create(&f.orderA).Error)
	f.itemA = model.OrderItem{ID: uuid.New(), OrderID: f.orderA.ID, ProductID: f.widget.ID, MaterialID: &f.steel.ID, Quantity: 5}
	require.NoError(t, db.Create(&f.itemA).Error)

	stepA1 := model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemA.ID, StepNo: 1, OperationID: f.cutting.ID,
		WorkshopID: &f.north.ID, Status: model.StepStatusDone, PlannedMinutes: intPtr(20),
	}
	f.stepA2 = model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemA.ID, StepNo: 2, OperationID: f.welding.ID,
		WorkshopID: &f.north.ID, Status: model.StepStatusInProgress,
		PlannedFinish: timePtr(f.now.Add(-36 * time.Hour)),
	}
	stepA3 := model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemA.ID, StepNo: 3, OperationID: f.painting.ID,
		Status: model.StepStatusPlanned,
	}
	require.NoError(t, db.Create(&stepA1).Error)
	require.NoError(t, db.Create(&f.stepA2).Error)
	require.NoError(t, db.Create(&stepA3).Error)

	// Order B
	f.orderB = model.Order{
		ID: uuid.New(), CustomerID: f.beta.ID, Status: model.OrderStatusPlanned,
		Priority: 3, DueDate: timePtr(f.now.Add(3 * 24 * time.Hour)),
	}
	require.NoError(t, db.Create(&f.orderB).Error)
	f.itemB = model.OrderItem{ID: uuid.New(), OrderID: f.orderB.ID, ProductID: f.gadget.ID, Quantity: 2}
	require.NoError(t, db.Create(&f.itemB).Error)

	stepB1 := model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemB.ID, StepNo: 1, OperationID: f.cutting.ID,
		WorkshopID: &f.south.ID, Status: model.StepStatusPlanned, PlannedMinutes: intPtr(45),
		PlannedFinish: timePtr(f.now.Add(-12 * time.Hour)),
	}
	f.stepB2 = model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemB.ID, StepNo: 2, OperationID: f.welding.ID,
		WorkshopID: &f.south.ID, Status: model.StepStatusInProgress,
	}
	require.NoError(t, db.Create(&stepB1).Error)
	require.NoError(t, db.Create(&f.stepB2).Error)

	// Order C, fully done
	f.orderC = model.Order{
		ID: uuid.New(), CustomerID: f.acme.ID, Status: model.OrderStatusDone,
		Priority: 3, DueDate: timePtr(f.now.Add(-10 * 24 * time.Hour)),
	}
	require.NoError(t, db.Create(&f.orderC).Error)
	f.itemC = model.OrderItem{ID: uuid.New(), OrderID: f.orderC.ID, ProductID: f.widget.ID, Quantity: 7}
	require.NoError(t, db.Create(&f.itemC).Error)

	stepC1 := model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemC.ID, StepNo: 1, OperationID: f.cutting.ID,
		WorkshopID: &f.north.ID, Status: model.StepStatusDone, PlannedMinutes: intPtr(40),
	}
	require.NoError(t, db.Create(&stepC1).Error)

	// Order D, still NEW
	f.orderD = model.Order{
		ID: uuid.New(), CustomerID: f.beta.ID, Status: model.OrderStatusNew,
		Priority: 2, DueDate: timePtr(f.now.Add(-5 * 24 * time.Hour)),
	}
	require.NoError(t, db.Create(&f.orderD).Error)
	f.itemD = model.OrderItem{ID: uuid.New(), OrderID: f.orderD.ID, ProductID: f.widget.ID, Quantity: 1}
	require.NoError(t, db.Create(&f.itemD).Error)

	stepD1 := model.RouteStep{
		ID: uuid.New(), OrderItemID: f.itemD.ID, StepNo: 1, OperationID: f.cutting.ID,
		Status: model.StepStatusPlanned, PlannedMinutes: intPtr(100),
	}
	require.NoError(t, db.Create(&stepD1).Error)

	// Execution logs: two finished Cutting runs (30 and 50 minutes), one
	// running Welding attempt, one failed 90-minute Welding attempt.
	logs := []model.OperationLog{
		{
			ID: uuid.New(), RouteStepID: stepA1.ID, EquipmentID: &f.lathe.ID, OperatorID: &f.operator.ID,
			StartedAt: f.now.Add(-120 * time.Minute), FinishedAt: timePtr(f.now.Add(-90 * time.Minute)),
			Status: model.LogStatusDone,
		},
		{
			ID: uuid.New(), RouteStepID: f.stepA2.ID, EquipmentID: &f.lathe.ID, OperatorID: &f.operator.ID,
			StartedAt: f.now.Add(-60 * time.Minute), Status: model.LogStatusInProgress,
		},
		{
			ID: uuid.New(), RouteStepID: stepC1.ID, OperatorID: &f.operator.ID,
			StartedAt: f.now.Add(-300 * time.Minute), FinishedAt: timePtr(f.now.Add(-250 * time.Minute)),
			Status: model.LogStatusDone,
		},
		{
			ID: uuid.New(), RouteStepID: f.stepB2.ID,
			StartedAt: f.now.Add(-200 * time.Minute), FinishedAt: timePtr(f.now.Add(-110 * time.Minute)),
			Status: model.LogStatusFailed, ResultNote: "weld cracked",
		},
	}
	for i := range logs {
		require.NoError(t, db.Create(&logs[i]).Error)
	}

	return f
}

func TestCurrentSteps(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.CurrentSteps(context.Background())
	require.NoError(t, err)

	// One row per item with unfinished work; the fully DONE item C drops out
	require.Len(t, rows, 3)

	byItem := make(map[string]model.CurrentStepRow, len(rows))
	for _, r := range rows {
		byItem[r.OrderItemID] = r
	}

	rowA, ok := byItem[f.itemA.ID.String()]
	require.True(t, ok)
	assert.Equal(t, 2, rowA.StepNo)
	assert.Equal(t, model.StepStatusInProgress, rowA.StepStatus)
	assert.Equal(t, "Welding", rowA.OperationName)
	assert.Equal(t, "North", rowA.WorkshopName)

	// IN_PROGRESS outranks PLANNED even when the PLANNED step comes first
	rowB, ok := byItem[f.itemB.ID.String()]
	require.True(t, ok)
	assert.Equal(t, 2, rowB.StepNo)
	assert.Equal(t, model.StepStatusInProgress, rowB.StepStatus)

	rowD, ok := byItem[f.itemD.ID.String()]
	require.True(t, ok)
	assert.Equal(t, 1, rowD.StepNo)
	assert.Equal(t, model.StepStatusPlanned, rowD.StepStatus)

	_, hasC := byItem[f.itemC.ID.String()]
	assert.False(t, hasC)
}

func TestOverdueSteps(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.OverdueSteps(context.Background(), f.now)
	require.NoError(t, err)

	// Steps without a planned finish never show up; most overdue first
	require.Len(t, rows, 2)
	assert.Equal(t, "Welding", rows[0].OperationName)
	assert.InDelta(t, 36.0, rows[0].HoursOverdue, 0.01)
	assert.Equal(t, "Cutting", rows[1].OperationName)
	assert.InDelta(t, 12.0, rows[1].HoursOverdue, 0.01)
	assert.Greater(t, rows[0].HoursOverdue, rows[1].HoursOverdue)
}

func TestOverdueOrders(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.OverdueOrders(context.Background(), f.now)
	require.NoError(t, err)

	// A and D are 5 days overdue; C is older but DONE and must not appear.
	// Equal due dates tie-break on priority, highest (lowest number) first.
	require.Len(t, rows, 2)
	assert.Equal(t, f.orderA.ID.String(), rows[0].OrderID)
	assert.Equal(t, 1, rows[0].Priority)
	assert.Equal(t, 5, rows[0].DaysOverdue)
	assert.Equal(t, f.orderD.ID.String(), rows[1].OrderID)
	assert.Equal(t, 2, rows[1].Priority)
	assert.Equal(t, 5, rows[1].DaysOverdue)
}

func TestOverdueOrdersSameDayBucketOrdersByPriority(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	// Both land in the 8-days-overdue bucket, but the lower-priority order
	// was due first. A raw due-date sort would surface it ahead of the
	// priority-1 order.
	slack := model.Order{
		ID: uuid.New(), CustomerID: f.beta.ID, Status: model.OrderStatusInProgress,
		Priority: 5, DueDate: timePtr(f.now.Add(-(8*24 + 21) * time.Hour)),
	}
	require.NoError(t, db.Create(&slack).Error)
	urgent := model.Order{
		ID: uuid.New(), CustomerID: f.acme.ID, Status: model.OrderStatusInProgress,
		Priority: 1, DueDate: timePtr(f.now.Add(-(8*24 + 2) * time.Hour)),
	}
	require.NoError(t, db.Create(&urgent).Error)

	rows, err := repo.OverdueOrders(context.Background(), f.now)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, urgent.ID.String(), rows[0].OrderID)
	assert.Equal(t, 1, rows[0].Priority)
	assert.Equal(t, 8, rows[0].DaysOverdue)
	assert.Equal(t, slack.ID.String(), rows[1].OrderID)
	assert.Equal(t, 5, rows[1].Priority)
	assert.Equal(t, 8, rows[1].DaysOverdue)
	assert.Equal(t, f.orderA.ID.String(), rows[2].OrderID)
	assert.Equal(t, f.orderD.ID.String(), rows[3].OrderID)
}

func TestWIPByOrder(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.WIPByOrder(context.Background())
	require.NoError(t, err)

	// Only PLANNED and IN_PROGRESS orders count: A and B. Order D is NEW,
	// order C is DONE. Minutes fall back from step to operation default:
	//   A: Welding nil->60, Painting nil->nil->0            = 60
	//   B: Cutting 45, Welding nil->60                      = 105
	require.Len(t, rows, 2)
	assert.Equal(t, f.orderB.ID.String(), rows[0].OrderID)
	assert.Equal(t, int64(105), rows[0].RemainingMinutes)
	assert.Equal(t, f.orderA.ID.String(), rows[1].OrderID)
	assert.Equal(t, int64(60), rows[1].RemainingMinutes)
}

func TestWIPByWorkshop(t *testing.T) {
	db := setupTestDB(t)
	seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.WIPByWorkshop(context.Background())
	require.NoError(t, err)

	byName := make(map[string]int64, len(rows))
	for _, r := range rows {
		byName[r.WorkshopName] = r.RemainingMinutes
	}

	assert.Equal(t, int64(105), byName["South"])
	assert.Equal(t, int64(60), byName["North"])
	// Painting has no workshop assigned; its zero minutes land in the bucket
	assert.Equal(t, int64(0), byName[UnassignedWorkshopBucket])
}

func TestEquipmentUtilization(t *testing.T) {
	db := setupTestDB(t)
	seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.EquipmentUtilization(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Lathe-1", rows[0].Name)
	assert.Equal(t, 1, rows[0].ActiveLogs)
	assert.Equal(t, 2, rows[0].TotalLogs)
	assert.Equal(t, "Press-1", rows[1].Name)
	assert.Equal(t, 0, rows[1].ActiveLogs)
	assert.Equal(t, 0, rows[1].TotalLogs)
}

func TestMeanOperationDurations(t *testing.T) {
	db := setupTestDB(t)
	seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.MeanOperationDurations(context.Background())
	require.NoError(t, err)

	// Cutting ran twice (30m, 50m), Welding's failed attempt took 90m and
	// still counts; the running Welding attempt does not. Painting never ran.
	require.Len(t, rows, 2)
	assert.Equal(t, "Welding", rows[0].OperationName)
	assert.InDelta(t, 90.0, rows[0].AvgMinutes, 0.01)
	assert.Equal(t, 1, rows[0].Executions)
	assert.Equal(t, "Cutting", rows[1].OperationName)
	assert.InDelta(t, 40.0, rows[1].AvgMinutes, 0.01)
	assert.Equal(t, 2, rows[1].Executions)
}

func TestWorkshopSummary(t *testing.T) {
	db := setupTestDB(t)
	seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.WorkshopSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].Name)
	assert.Equal(t, 0, rows[0].PlannedSteps)
	assert.Equal(t, 1, rows[0].InProgressSteps)
	assert.Equal(t, 2, rows[0].DoneSteps)

	assert.Equal(t, "South", rows[1].Name)
	assert.Equal(t, 1, rows[1].PlannedSteps)
	assert.Equal(t, 1, rows[1].InProgressSteps)
	assert.Equal(t, 0, rows[1].DoneSteps)
}

func TestTopProducts(t *testing.T) {
	db := setupTestDB(t)
	seedReportFixture(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.TopProducts(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Widget", rows[0].ProductName)
	assert.Equal(t, 13, rows[0].TotalQuantity)
	assert.Equal(t, 3, rows[0].OrderCount)
	assert.Equal(t, "Gadget", rows[1].ProductName)
	assert.Equal(t, 2, rows[1].TotalQuantity)
	assert.Equal(t, 1, rows[1].OrderCount)

	limited, err := repo.TopProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Widget", limited[0].ProductName)
}

func TestOrdersWithCustomersAndComposition(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	orders, err := repo.OrdersWithCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 4)

	names := make(map[string]string, len(orders))
	for _, r := range orders {
		names[r.OrderID] = r.CustomerName
	}
	assert.Equal(t, "Acme", names[f.orderA.ID.String()])
	assert.Equal(t, "Beta", names[f.orderB.ID.String()])

	comp, err := repo.OrderComposition(context.Background())
	require.NoError(t, err)
	require.Len(t, comp, 4)

	var widgetLine *model.OrderCompositionRow
	for i := range comp {
		if comp[i].OrderID == f.orderA.ID.String() {
			widgetLine = &comp[i]
		}
	}
	require.NotNil(t, widgetLine)
	assert.Equal(t, "Widget", widgetLine.ProductName)
	assert.Equal(t, "Steel", widgetLine.MaterialName)
	assert.Equal(t, 5, widgetLine.Quantity)
}

func TestRouteDumpAndExecutionFacts(t *testing.T) {
	db := setupTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	dump, err := repo.RouteDump(context.Background())
	require.NoError(t, err)
	require.Len(t, dump, 7)

	// Steps of a single item arrive in route order
	var aSteps []model.RouteDumpRow
	for _, r := range dump {
		if r.OrderItemID == f.itemA.ID.String() {
			aSteps = append(aSteps, r)
		}
	}
	require.Len(t, aSteps, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{aSteps[0].StepNo, aSteps[1].StepNo, aSteps[2].StepNo})
	assert.Equal(t, "", aSteps[2].WorkshopName)

	facts, err := repo.ExecutionFacts(context.Background())
	require.NoError(t, err)
	require.Len(t, facts, 4)

	var running *model.ExecutionFactRow
	for i := range facts {
		if facts[i].FinishedAt == nil {
			running = &facts[i]
		}
	}
	require.NotNil(t, running)
	assert.Equal(t, "Welding", running.OperationName)
	assert.Equal(t, "Lathe-1", running.EquipmentName)
	assert.Equal(t, "Jo Operator", running.OperatorName)
	assert.Equal(t, model.LogStatusInProgress, running.Status)
}

func TestOrderStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	stats := []model.OrderStatsDaily{
		{ID: uuid.New(), Status: model.OrderStatusNew, Day: day2, Count: 2},
		{ID: uuid.New(), Status: model.OrderStatusDone, Day: day1, Count: 4},
		{ID: uuid.New(), Status: model.OrderStatusNew, Day: day1, Count: 1},
	}
	for i := range stats {
		require.NoError(t, db.Create(&stats[i]).Error)
	}

	rows, err := repo.OrderStats(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, model.OrderStatusDone, rows[0].Status)
	assert.Equal(t, model.OrderStatusNew, rows[1].Status)
	assert.True(t, rows[1].Day.Before(rows[2].Day))
}
