package handler

import (
	"net/http"

	"mfgtrack/internal/middleware"
	"mfgtrack/internal/model"
	"mfgtrack/internal/service"
	"mfgtrack/pkg/pagination"
	"mfgtrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
	auth         *middleware.Auth
}

func NewOrderHandler(orderService service.OrderService, auth *middleware.Auth) *OrderHandler {
	return &OrderHandler{orderService: orderService, auth: auth}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public intake form — no authentication
	router.POST("/api/orders/intake", h.Intake)

	staff := h.auth.RequireRole(model.RoleAdmin, model.RoleManager)

	orders := router.Group("/api/orders", staff)
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/status", h.ChangeStatus)
		orders.GET("/:id/history", h.History)
		orders.POST("/:id/items/:itemID/steps", h.AddStep)
	}

	steps := router.Group("/api/steps", staff)
	{
		steps.PATCH("/:id/status", h.UpdateStepStatus)
		steps.POST("/:id/logs", h.StartLog)
	}

	router.PATCH("/api/logs/:id/finish", staff, h.FinishLog)
}

// Intake handles the public order form
// @Summary      Submit an order via the public intake form
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body      service.IntakeRequest  true  "Intake Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/intake [post]
func (h *OrderHandler) Intake(c *gin.Context) {
	var req service.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Intake(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// CreateOrder handles POST /api/orders
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders handles GET /api/orders
// @Summary      List orders
// @Description  Lists orders with optional status filter and allow-listed sorting
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Status filter (NEW, PLANNED, IN_PROGRESS, DONE, CANCELED)"
// @Param        sort    query  string  false  "Sort field (created_at, updated_at, due_date, priority, status)"
// @Param        desc    query  bool    false  "Sort descending"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Limit"
// @Success      200  {object}  response.Response{data=response.ListData}
// @Failure      400  {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), service.ListOrdersQuery{
		Status:   c.Query("status"),
		SortBy:   c.Query("sort"),
		SortDesc: c.Query("desc") == "true",
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.ListData{
		Items: orders,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}))
}

// GetOrder handles GET /api/orders/:id
// @Summary      Get order with items, route steps and logs
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateOrder handles PUT /api/orders/:id
// @Summary      Update order priority, due date or note
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                      true  "Order ID"
// @Param        payload  body  service.UpdateOrderRequest  true  "Update Payload"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder handles DELETE /api/orders/:id
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "order deleted"}))
}

// ChangeStatus handles POST /api/orders/:id/status. The live status column
// and the history ledger are written in one transaction.
// @Summary      Change order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                       true  "Order ID"
// @Param        payload  body  service.ChangeStatusRequest  true  "New Status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/status [post]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req service.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.orderService.ChangeStatus(c.Request.Context(), c.Param("id"), middleware.ActorID(c), req); err != nil {
		if err.Error() == "order not found" {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "status updated"}))
}

// History handles GET /api/orders/:id/history
// @Summary      Get order status history (chronological)
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  response.Response{data=[]model.OrderStatusHistory}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/history [get]
func (h *OrderHandler) History(c *gin.Context) {
	entries, err := h.orderService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// AddStep handles POST /api/orders/:id/items/:itemID/steps
// @Summary      Append a route step to an order item
// @Tags         routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                   true  "Order ID"
// @Param        itemID   path  string                   true  "Order Item ID"
// @Param        payload  body  service.RouteStepRequest true  "Route Step Payload"
// @Success      201  {object}  response.Response{data=model.RouteStep}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id}/items/{itemID}/steps [post]
func (h *OrderHandler) AddStep(c *gin.Context) {
	var req service.RouteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	step, err := h.orderService.AddStep(c.Request.Context(), c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, step))
}

// UpdateStepStatus handles PATCH /api/steps/:id/status
// @Summary      Update route step status
// @Tags         routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "Route Step ID"
// @Param        payload  body  object{status=string}  true  "New Status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/steps/{id}/status [patch]
func (h *OrderHandler) UpdateStepStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.orderService.UpdateStepStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if err.Error() == "route step not found" {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "step status updated"}))
}

// StartLog handles POST /api/steps/:id/logs
// @Summary      Start an execution log on a route step
// @Tags         routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                  true  "Route Step ID"
// @Param        payload  body  service.StartLogRequest true  "Log Payload"
// @Success      201  {object}  response.Response{data=model.OperationLog}
// @Failure      400  {object}  response.Response
// @Router       /api/steps/{id}/logs [post]
func (h *OrderHandler) StartLog(c *gin.Context) {
	var req service.StartLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.orderService.StartLog(c.Request.Context(), c.Param("id"), middleware.ActorID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// FinishLog handles PATCH /api/logs/:id/finish
// @Summary      Finish an execution log
// @Tags         routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                   true  "Operation Log ID"
// @Param        payload  body  service.FinishLogRequest true  "Finish Payload"
// @Success      200  {object}  response.Response{data=model.OperationLog}
// @Failure      400  {object}  response.Response
// @Router       /api/logs/{id}/finish [patch]
func (h *OrderHandler) FinishLog(c *gin.Context) {
	var req service.FinishLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.orderService.FinishLog(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}
