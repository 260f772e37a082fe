package service

import (
	"context"
	"testing"
	"time"

	"mfgtrack/internal/config"
	"mfgtrack/internal/model"
	"mfgtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWIPValuation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	customer := model.Customer{ID: uuid.New(), Name: "Acme", Email: "acme@example.com"}
	product := model.Product{ID: uuid.New(), SKU: "W-1", Name: "Widget"}
	milling := model.Operation{ID: uuid.New(), Name: "Milling"}
	order := model.Order{ID: uuid.New(), CustomerID: customer.ID, Status: model.OrderStatusPlanned, Priority: 3}
	for _, rec := range []interface{}{&customer, &product, &milling, &order} {
		require.NoError(t, db.Create(rec).Error)
	}

	item := model.OrderItem{ID: uuid.New(), OrderID: order.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	minutes := 90
	step := model.RouteStep{
		ID: uuid.New(), OrderItemID: item.ID, StepNo: 1, OperationID: milling.ID,
		Status: model.StepStatusPlanned, PlannedMinutes: &minutes,
	}
	require.NoError(t, db.Create(&step).Error)

	cfg := &config.Config{RatePerHour: decimal.NewFromInt(1000)}
	svc := NewReportService(repository.NewReportRepository(db), cfg, func() time.Time { return fixedNow })

	rows, err := svc.WIPByOrder(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 90 minutes at 1000/hour values to 1500
	assert.Equal(t, int64(90), rows[0].RemainingMinutes)
	assert.True(t, rows[0].Valuation.Equal(decimal.NewFromInt(1500)),
		"got valuation %s", rows[0].Valuation)

	byWorkshop, err := svc.WIPByWorkshop(ctx)
	require.NoError(t, err)
	require.Len(t, byWorkshop, 1)
	assert.Equal(t, repository.UnassignedWorkshopBucket, byWorkshop[0].WorkshopName)
	assert.True(t, byWorkshop[0].Valuation.Equal(decimal.NewFromInt(1500)))
}
