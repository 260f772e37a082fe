package handler

import (
	"net/http"
	"strconv"

	"mfgtrack/internal/middleware"
	"mfgtrack/internal/model"
	"mfgtrack/internal/service"
	"mfgtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	auth          *middleware.Auth
}

func NewReportHandler(reportService service.ReportService, auth *middleware.Auth) *ReportHandler {
	return &ReportHandler{reportService: reportService, auth: auth}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := h.auth.RequireRole(model.RoleAdmin, model.RoleManager)
	adminOnly := h.auth.RequireRole(model.RoleAdmin)

	reports := router.Group("/api/reports")
	{
		reports.GET("/orders", staff, h.OrdersWithCustomers)
		reports.GET("/composition", staff, h.OrderComposition)
		reports.GET("/routes", staff, h.RouteDump)
		reports.GET("/executions", staff, h.ExecutionFacts)
		reports.GET("/current-steps", staff, h.CurrentSteps)
		reports.GET("/overdue-steps", staff, h.OverdueSteps)
		reports.GET("/overdue-orders", staff, h.OverdueOrders)
		reports.GET("/utilization", staff, h.EquipmentUtilization)
		reports.GET("/operation-durations", staff, h.MeanOperationDurations)
		reports.GET("/workshop-summary", staff, h.WorkshopSummary)
		reports.GET("/top-products", staff, h.TopProducts)

		// Valuation and aggregate statistics are restricted to admins
		reports.GET("/wip/orders", adminOnly, h.WIPByOrder)
		reports.GET("/wip/workshops", adminOnly, h.WIPByWorkshop)
		reports.GET("/order-stats", adminOnly, h.OrderStats)
	}
}

func (h *ReportHandler) respond(c *gin.Context, rows interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// OrdersWithCustomers lists every order with its customer
// @Summary      Orders with customer listing
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OrderListRow}
// @Router       /api/reports/orders [get]
func (h *ReportHandler) OrdersWithCustomers(c *gin.Context) {
	rows, err := h.reportService.OrdersWithCustomers(c.Request.Context())
	h.respond(c, rows, err)
}

// OrderComposition lists item lines per order
// @Summary      Order composition (item, product, material, quantity)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OrderCompositionRow}
// @Router       /api/reports/composition [get]
func (h *ReportHandler) OrderComposition(c *gin.Context) {
	rows, err := h.reportService.OrderComposition(c.Request.Context())
	h.respond(c, rows, err)
}

// RouteDump lists every route step grouped by order, item, step_no
// @Summary      Full route dump
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.RouteDumpRow}
// @Router       /api/reports/routes [get]
func (h *ReportHandler) RouteDump(c *gin.Context) {
	rows, err := h.reportService.RouteDump(c.Request.Context())
	h.respond(c, rows, err)
}

// ExecutionFacts lists every operation log with its surroundings
// @Summary      Execution facts
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ExecutionFactRow}
// @Router       /api/reports/executions [get]
func (h *ReportHandler) ExecutionFacts(c *gin.Context) {
	rows, err := h.reportService.ExecutionFacts(c.Request.Context())
	h.respond(c, rows, err)
}

// CurrentSteps shows where each order item sits in its route
// @Summary      Current route position per order item
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.CurrentStepRow}
// @Router       /api/reports/current-steps [get]
func (h *ReportHandler) CurrentSteps(c *gin.Context) {
	rows, err := h.reportService.CurrentSteps(c.Request.Context())
	h.respond(c, rows, err)
}

// OverdueSteps lists unfinished steps past their planned finish
// @Summary      Overdue route steps (most overdue first)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OverdueStepRow}
// @Router       /api/reports/overdue-steps [get]
func (h *ReportHandler) OverdueSteps(c *gin.Context) {
	rows, err := h.reportService.OverdueSteps(c.Request.Context())
	h.respond(c, rows, err)
}

// OverdueOrders lists unfinished orders past their due date
// @Summary      Overdue orders (most overdue first, highest priority first on ties)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OverdueOrderRow}
// @Router       /api/reports/overdue-orders [get]
func (h *ReportHandler) OverdueOrders(c *gin.Context) {
	rows, err := h.reportService.OverdueOrders(c.Request.Context())
	h.respond(c, rows, err)
}

// WIPByOrder values remaining planned work per in-flight order
// @Summary      Work-in-progress valuation per order
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OrderWIPRow}
// @Router       /api/reports/wip/orders [get]
func (h *ReportHandler) WIPByOrder(c *gin.Context) {
	rows, err := h.reportService.WIPByOrder(c.Request.Context())
	h.respond(c, rows, err)
}

// WIPByWorkshop values remaining planned work per workshop
// @Summary      Work-in-progress valuation per workshop
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.WorkshopWIPRow}
// @Router       /api/reports/wip/workshops [get]
func (h *ReportHandler) WIPByWorkshop(c *gin.Context) {
	rows, err := h.reportService.WIPByWorkshop(c.Request.Context())
	h.respond(c, rows, err)
}

// EquipmentUtilization counts running and historical logs per equipment unit
// @Summary      Equipment utilization
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.UtilizationRow}
// @Router       /api/reports/utilization [get]
func (h *ReportHandler) EquipmentUtilization(c *gin.Context) {
	rows, err := h.reportService.EquipmentUtilization(c.Request.Context())
	h.respond(c, rows, err)
}

// MeanOperationDurations averages executed durations per operation
// @Summary      Mean operation durations in minutes
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OperationDurationRow}
// @Router       /api/reports/operation-durations [get]
func (h *ReportHandler) MeanOperationDurations(c *gin.Context) {
	rows, err := h.reportService.MeanOperationDurations(c.Request.Context())
	h.respond(c, rows, err)
}

// WorkshopSummary breaks each workshop's steps down by status
// @Summary      Workshop step status summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.WorkshopSummaryRow}
// @Router       /api/reports/workshop-summary [get]
func (h *ReportHandler) WorkshopSummary(c *gin.Context) {
	rows, err := h.reportService.WorkshopSummary(c.Request.Context())
	h.respond(c, rows, err)
}

// TopProducts ranks products by total ordered quantity
// @Summary      Top products by ordered quantity
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Row limit (default 10)"
// @Success      200  {object}  response.Response{data=[]model.TopProductRow}
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.reportService.TopProducts(c.Request.Context(), limit)
	h.respond(c, rows, err)
}

// OrderStats reads the externally refreshed status-per-day summary
// @Summary      Order statistics (status per day)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.OrderStatsDaily}
// @Router       /api/reports/order-stats [get]
func (h *ReportHandler) OrderStats(c *gin.Context) {
	rows, err := h.reportService.OrderStats(c.Request.Context())
	h.respond(c, rows, err)
}
