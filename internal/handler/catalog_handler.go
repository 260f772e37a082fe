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

type CatalogHandler struct {
	catalogService service.CatalogService
	auth           *middleware.Auth
}

func NewCatalogHandler(catalogService service.CatalogService, auth *middleware.Auth) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, auth: auth}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := h.auth.RequireRole(model.RoleAdmin, model.RoleManager)

	customers := router.Group("/api/customers", staff)
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	products := router.Group("/api/products", staff)
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	materials := router.Group("/api/materials", staff)
	{
		materials.GET("", h.ListMaterials)
		materials.POST("", h.CreateMaterial)
		materials.DELETE("/:id", h.DeleteMaterial)
	}

	operations := router.Group("/api/operations", staff)
	{
		operations.GET("", h.ListOperations)
		operations.POST("", h.CreateOperation)
		operations.PUT("/:id", h.UpdateOperation)
		operations.DELETE("/:id", h.DeleteOperation)
	}

	workshops := router.Group("/api/workshops", staff)
	{
		workshops.GET("", h.ListWorkshops)
		workshops.POST("", h.CreateWorkshop)
		workshops.DELETE("/:id", h.DeleteWorkshop)
	}

	equipment := router.Group("/api/equipment", staff)
	{
		equipment.GET("", h.ListEquipment)
		equipment.POST("", h.CreateEquipment)
		equipment.DELETE("/:id", h.DeleteEquipment)
	}
}

func (h *CatalogHandler) created(c *gin.Context, data interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, data))
}

func (h *CatalogHandler) updated(c *gin.Context, data interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

func (h *CatalogHandler) deleted(c *gin.Context, err error) {
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ListCustomers returns a paginated customer listing
// @Summary      List customers
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=response.ListData}
// @Router       /api/customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	p := pagination.Parse(c)
	customers, total, err := h.catalogService.ListCustomers(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.ListData{
		Items: customers,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// CreateCustomer registers a new customer
// @Summary      Create customer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.CustomerRequest  true  "Customer payload"
// @Success      201  {object}  response.Response{data=model.Customer}
// @Failure      400  {object}  response.Response
// @Router       /api/customers [post]
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	customer, err := h.catalogService.CreateCustomer(c.Request.Context(), req)
	h.created(c, customer, err)
}

// UpdateCustomer updates an existing customer
// @Summary      Update customer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                   true  "Customer ID"
// @Param        request  body  service.CustomerRequest  true  "Customer payload"
// @Success      200  {object}  response.Response{data=model.Customer}
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [put]
func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	customer, err := h.catalogService.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	h.updated(c, customer, err)
}

// DeleteCustomer soft-deletes a customer
// @Summary      Delete customer
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [delete]
func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteCustomer(c.Request.Context(), c.Param("id")))
}

// ListProducts returns a paginated product listing
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=response.ListData}
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	p := pagination.Parse(c)
	products, total, err := h.catalogService.ListProducts(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.ListData{
		Items: products,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// CreateProduct registers a new product
// @Summary      Create product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.ProductRequest  true  "Product payload"
// @Success      201  {object}  response.Response{data=model.Product}
// @Failure      400  {object}  response.Response
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	h.created(c, product, err)
}

// UpdateProduct updates an existing product
// @Summary      Update product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                  true  "Product ID"
// @Param        request  body  service.ProductRequest  true  "Product payload"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	h.updated(c, product, err)
}

// DeleteProduct soft-deletes a product
// @Summary      Delete product
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")))
}

// ListMaterials returns every material
// @Summary      List materials
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Material}
// @Router       /api/materials [get]
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	materials, err := h.catalogService.ListMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, materials))
}

// CreateMaterial registers a new material
// @Summary      Create material
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.MaterialRequest  true  "Material payload"
// @Success      201  {object}  response.Response{data=model.Material}
// @Failure      400  {object}  response.Response
// @Router       /api/materials [post]
func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	material, err := h.catalogService.CreateMaterial(c.Request.Context(), req)
	h.created(c, material, err)
}

// DeleteMaterial removes a material
// @Summary      Delete material
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Material ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/materials/{id} [delete]
func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteMaterial(c.Request.Context(), c.Param("id")))
}

// ListOperations returns every operation type
// @Summary      List operations
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Operation}
// @Router       /api/operations [get]
func (h *CatalogHandler) ListOperations(c *gin.Context) {
	operations, err := h.catalogService.ListOperations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, operations))
}

// CreateOperation registers a new operation type
// @Summary      Create operation
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.OperationRequest  true  "Operation payload"
// @Success      201  {object}  response.Response{data=model.Operation}
// @Failure      400  {object}  response.Response
// @Router       /api/operations [post]
func (h *CatalogHandler) CreateOperation(c *gin.Context) {
	var req service.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	operation, err := h.catalogService.CreateOperation(c.Request.Context(), req)
	h.created(c, operation, err)
}

// UpdateOperation updates an existing operation type
// @Summary      Update operation
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                    true  "Operation ID"
// @Param        request  body  service.OperationRequest  true  "Operation payload"
// @Success      200  {object}  response.Response{data=model.Operation}
// @Failure      404  {object}  response.Response
// @Router       /api/operations/{id} [put]
func (h *CatalogHandler) UpdateOperation(c *gin.Context) {
	var req service.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	operation, err := h.catalogService.UpdateOperation(c.Request.Context(), c.Param("id"), req)
	h.updated(c, operation, err)
}

// DeleteOperation removes an operation type
// @Summary      Delete operation
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Operation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/operations/{id} [delete]
func (h *CatalogHandler) DeleteOperation(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteOperation(c.Request.Context(), c.Param("id")))
}

// ListWorkshops returns every workshop
// @Summary      List workshops
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Workshop}
// @Router       /api/workshops [get]
func (h *CatalogHandler) ListWorkshops(c *gin.Context) {
	workshops, err := h.catalogService.ListWorkshops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, workshops))
}

// CreateWorkshop registers a new workshop
// @Summary      Create workshop
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.WorkshopRequest  true  "Workshop payload"
// @Success      201  {object}  response.Response{data=model.Workshop}
// @Failure      400  {object}  response.Response
// @Router       /api/workshops [post]
func (h *CatalogHandler) CreateWorkshop(c *gin.Context) {
	var req service.WorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	workshop, err := h.catalogService.CreateWorkshop(c.Request.Context(), req)
	h.created(c, workshop, err)
}

// DeleteWorkshop removes a workshop
// @Summary      Delete workshop
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Workshop ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/workshops/{id} [delete]
func (h *CatalogHandler) DeleteWorkshop(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteWorkshop(c.Request.Context(), c.Param("id")))
}

// ListEquipment returns every equipment unit with its workshop
// @Summary      List equipment
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Equipment}
// @Router       /api/equipment [get]
func (h *CatalogHandler) ListEquipment(c *gin.Context) {
	units, err := h.catalogService.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// CreateEquipment registers a new equipment unit
// @Summary      Create equipment
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  service.EquipmentRequest  true  "Equipment payload"
// @Success      201  {object}  response.Response{data=model.Equipment}
// @Failure      400  {object}  response.Response
// @Router       /api/equipment [post]
func (h *CatalogHandler) CreateEquipment(c *gin.Context) {
	var req service.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	unit, err := h.catalogService.CreateEquipment(c.Request.Context(), req)
	h.created(c, unit, err)
}

// DeleteEquipment removes an equipment unit
// @Summary      Delete equipment
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Equipment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/equipment/{id} [delete]
func (h *CatalogHandler) DeleteEquipment(c *gin.Context) {
	h.deleted(c, h.catalogService.DeleteEquipment(c.Request.Context(), c.Param("id")))
}
