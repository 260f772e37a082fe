package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mfgtrack/internal/middleware"
	"mfgtrack/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

// stubReportService returns empty reports; these tests only exercise the
// routing and role enforcement around the handler.
type stubReportService struct{}

func (stubReportService) OrdersWithCustomers(context.Context) ([]model.OrderListRow, error) {
	return nil, nil
}
func (stubReportService) OrderComposition(context.Context) ([]model.OrderCompositionRow, error) {
	return nil, nil
}
func (stubReportService) RouteDump(context.Context) ([]model.RouteDumpRow, error) { return nil, nil }
func (stubReportService) ExecutionFacts(context.Context) ([]model.ExecutionFactRow, error) {
	return nil, nil
}
func (stubReportService) CurrentSteps(context.Context) ([]model.CurrentStepRow, error) {
	return nil, nil
}
func (stubReportService) OverdueSteps(context.Context) ([]model.OverdueStepRow, error) {
	return nil, nil
}
func (stubReportService) OverdueOrders(context.Context) ([]model.OverdueOrderRow, error) {
	return nil, nil
}
func (stubReportService) WIPByOrder(context.Context) ([]model.OrderWIPRow, error) { return nil, nil }
func (stubReportService) WIPByWorkshop(context.Context) ([]model.WorkshopWIPRow, error) {
	return nil, nil
}
func (stubReportService) EquipmentUtilization(context.Context) ([]model.UtilizationRow, error) {
	return nil, nil
}
func (stubReportService) MeanOperationDurations(context.Context) ([]model.OperationDurationRow, error) {
	return nil, nil
}
func (stubReportService) WorkshopSummary(context.Context) ([]model.WorkshopSummaryRow, error) {
	return nil, nil
}
func (stubReportService) TopProducts(context.Context, int) ([]model.TopProductRow, error) {
	return nil, nil
}
func (stubReportService) OrderStats(context.Context) ([]model.OrderStatsDaily, error) {
	return nil, nil
}

func setupReportRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReportHandler(stubReportService{}, middleware.NewAuth(testSecret))
	h.RegisterRoutes(router.Group(""))
	return router
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000001",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func getWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReportsRequireAuth(t *testing.T) {
	router := setupReportRouter(t)

	w := getWithToken(router, "/api/reports/current-steps", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = getWithToken(router, "/api/reports/current-steps", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportsStaffAccess(t *testing.T) {
	router := setupReportRouter(t)
	manager := signToken(t, model.RoleManager)
	admin := signToken(t, model.RoleAdmin)

	for _, path := range []string{
		"/api/reports/current-steps",
		"/api/reports/overdue-steps",
		"/api/reports/overdue-orders",
		"/api/reports/utilization",
		"/api/reports/top-products",
	} {
		assert.Equal(t, http.StatusOK, getWithToken(router, path, manager).Code, path)
		assert.Equal(t, http.StatusOK, getWithToken(router, path, admin).Code, path)
	}
}

func TestValuationReportsAdminOnly(t *testing.T) {
	router := setupReportRouter(t)
	manager := signToken(t, model.RoleManager)
	admin := signToken(t, model.RoleAdmin)

	for _, path := range []string{
		"/api/reports/wip/orders",
		"/api/reports/wip/workshops",
		"/api/reports/order-stats",
	} {
		assert.Equal(t, http.StatusForbidden, getWithToken(router, path, manager).Code, path)
		assert.Equal(t, http.StatusOK, getWithToken(router, path, admin).Code, path)
	}
}

func TestReportsRejectForeignRole(t *testing.T) {
	router := setupReportRouter(t)
	outsider := signToken(t, "OPERATOR")

	w := getWithToken(router, "/api/reports/current-steps", outsider)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
