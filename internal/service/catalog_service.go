package service

import (
	"context"
	"errors"

	"mfgtrack/internal/model"
	"mfgtrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog DTOs

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ProductRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type MaterialRequest struct {
	Name string `json:"name" binding:"required"`
}

type OperationRequest struct {
	Name           string `json:"name" binding:"required"`
	DefaultMinutes *int   `json:"default_minutes" binding:"omitempty,gte=0"`
}

type WorkshopRequest struct {
	Name string `json:"name" binding:"required"`
}

type EquipmentRequest struct {
	Name       string `json:"name" binding:"required"`
	WorkshopID string `json:"workshop_id"`
}

// CatalogService covers CRUD for the dictionary entities the routing model
// references: customers, products, materials, operations, workshops,
// equipment.
type CatalogService interface {
	CreateCustomer(ctx context.Context, req CustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int64, error)
	UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, req ProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateMaterial(ctx context.Context, req MaterialRequest) (*model.Material, error)
	ListMaterials(ctx context.Context) ([]model.Material, error)
	DeleteMaterial(ctx context.Context, id string) error

	CreateOperation(ctx context.Context, req OperationRequest) (*model.Operation, error)
	ListOperations(ctx context.Context) ([]model.Operation, error)
	UpdateOperation(ctx context.Context, id string, req OperationRequest) (*model.Operation, error)
	DeleteOperation(ctx context.Context, id string) error

	CreateWorkshop(ctx context.Context, req WorkshopRequest) (*model.Workshop, error)
	ListWorkshops(ctx context.Context) ([]model.Workshop, error)
	DeleteWorkshop(ctx context.Context, id string) error

	CreateEquipment(ctx context.Context, req EquipmentRequest) (*model.Equipment, error)
	ListEquipment(ctx context.Context) ([]model.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type catalogService struct {
	customerRepo repository.CustomerRepository
	catalogRepo  repository.CatalogRepository
}

func NewCatalogService(customerRepo repository.CustomerRepository, catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{customerRepo: customerRepo, catalogRepo: catalogRepo}
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(msg)
	}
	return err
}

// --- Customers ---

func (s *catalogService) CreateCustomer(ctx context.Context, req CustomerRequest) (*model.Customer, error) {
	if req.Email != "" {
		if _, err := s.customerRepo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("customer email already exists")
		}
	}
	customer := &model.Customer{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *catalogService) ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int64, error) {
	return s.customerRepo.List(ctx, page, limit)
}

func (s *catalogService) UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	customer.Name = req.Name
	customer.Phone = req.Phone
	if req.Email != "" {
		customer.Email = req.Email
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id string) error {
	return notFoundOr(s.customerRepo.Delete(ctx, id), "customer not found")
}

// --- Products ---

func (s *catalogService) CreateProduct(ctx context.Context, req ProductRequest) (*model.Product, error) {
	product := &model.Product{SKU: req.SKU, Name: req.Name}
	if err := s.catalogRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	return s.catalogRepo.ListProducts(ctx, page, limit)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*model.Product, error) {
	product, err := s.catalogRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	product.SKU = req.SKU
	product.Name = req.Name
	if err := s.catalogRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	return notFoundOr(s.catalogRepo.DeleteProduct(ctx, id), "product not found")
}

// --- Materials ---

func (s *catalogService) CreateMaterial(ctx context.Context, req MaterialRequest) (*model.Material, error) {
	material := &model.Material{Name: req.Name}
	if err := s.catalogRepo.CreateMaterial(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) ListMaterials(ctx context.Context) ([]model.Material, error) {
	return s.catalogRepo.ListMaterials(ctx)
}

func (s *catalogService) DeleteMaterial(ctx context.Context, id string) error {
	return notFoundOr(s.catalogRepo.DeleteMaterial(ctx, id), "material not found")
}

// --- Operations ---

func (s *catalogService) CreateOperation(ctx context.Context, req OperationRequest) (*model.Operation, error) {
	op := &model.Operation{Name: req.Name, DefaultMinutes: req.DefaultMinutes}
	if err := s.catalogRepo.CreateOperation(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *catalogService) ListOperations(ctx context.Context) ([]model.Operation, error) {
	return s.catalogRepo.ListOperations(ctx)
}

func (s *catalogService) UpdateOperation(ctx context.Context, id string, req OperationRequest) (*model.Operation, error) {
	op, err := s.catalogRepo.GetOperation(ctx, id)
	if err != nil {
		return nil, errors.New("operation not found")
	}
	op.Name = req.Name
	op.DefaultMinutes = req.DefaultMinutes
	if err := s.catalogRepo.UpdateOperation(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *catalogService) DeleteOperation(ctx context.Context, id string) error {
	return notFoundOr(s.catalogRepo.DeleteOperation(ctx, id), "operation not found")
}

// --- Workshops ---

func (s *catalogService) CreateWorkshop(ctx context.Context, req WorkshopRequest) (*model.Workshop, error) {
	workshop := &model.Workshop{Name: req.Name}
	if err := s.catalogRepo.CreateWorkshop(ctx, workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}

func (s *catalogService) ListWorkshops(ctx context.Context) ([]model.Workshop, error) {
	return s.catalogRepo.ListWorkshops(ctx)
}

func (s *catalogService) DeleteWorkshop(ctx context.Context, id string) error {
	return notFoundOr(s.catalogRepo.DeleteWorkshop(ctx, id), "workshop not found")
}

// --- Equipment ---

func (s *catalogService) CreateEquipment(ctx context.Context, req EquipmentRequest) (*model.Equipment, error) {
	equipment := &model.Equipment{Name: req.Name}
	if req.WorkshopID != "" {
		workshopID, err := uuid.Parse(req.WorkshopID)
		if err != nil {
			return nil, errors.New("invalid workshop_id")
		}
		if _, err := s.catalogRepo.GetWorkshop(ctx, req.WorkshopID); err != nil {
			return nil, errors.New("workshop not found")
		}
		equipment.WorkshopID = &workshopID
	}
	if err := s.catalogRepo.CreateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *catalogService) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	return s.catalogRepo.ListEquipment(ctx)
}

func (s *catalogService) DeleteEquipment(ctx context.Context, id string) error {
	return notFoundOr(s.catalogRepo.DeleteEquipment(ctx, id), "equipment not found")
}
