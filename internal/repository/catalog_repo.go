package repository

import (
	"context"

	"mfgtrack/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository covers the small dictionary entities: products,
// materials, operations, workshops and equipment.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	CreateMaterial(ctx context.Context, m *model.Material) error
	GetMaterial(ctx context.Context, id string) (*model.Material, error)
	ListMaterials(ctx context.Context) ([]model.Material, error)
	DeleteMaterial(ctx context.Context, id string) error

	CreateOperation(ctx context.Context, op *model.Operation) error
	GetOperation(ctx context.Context, id string) (*model.Operation, error)
	ListOperations(ctx context.Context) ([]model.Operation, error)
	UpdateOperation(ctx context.Context, op *model.Operation) error
	DeleteOperation(ctx context.Context, id string) error

	CreateWorkshop(ctx context.Context, w *model.Workshop) error
	GetWorkshop(ctx context.Context, id string) (*model.Workshop, error)
	ListWorkshops(ctx context.Context) ([]model.Workshop, error)
	DeleteWorkshop(ctx context.Context, id string) error

	CreateEquipment(ctx context.Context, e *model.Equipment) error
	GetEquipment(ctx context.Context, id string) (*model.Equipment, error)
	ListEquipment(ctx context.Context) ([]model.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Products ---

func (r *catalogRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	return GetDB(ctx, r.db).Save(p).Error
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Product{}, id)
}

// --- Materials ---

func (r *catalogRepository) CreateMaterial(ctx context.Context, m *model.Material) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *catalogRepository) GetMaterial(ctx context.Context, id string) (*model.Material, error) {
	var m model.Material
	if err := GetDB(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *catalogRepository) ListMaterials(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *catalogRepository) DeleteMaterial(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Material{}, id)
}

// --- Operations ---

func (r *catalogRepository) CreateOperation(ctx context.Context, op *model.Operation) error {
	return GetDB(ctx, r.db).Create(op).Error
}

func (r *catalogRepository) GetOperation(ctx context.Context, id string) (*model.Operation, error) {
	var op model.Operation
	if err := GetDB(ctx, r.db).First(&op, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *catalogRepository) ListOperations(ctx context.Context) ([]model.Operation, error) {
	var ops []model.Operation
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *catalogRepository) UpdateOperation(ctx context.Context, op *model.Operation) error {
	return GetDB(ctx, r.db).Save(op).Error
}

func (r *catalogRepository) DeleteOperation(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Operation{}, id)
}

// --- Workshops ---

func (r *catalogRepository) CreateWorkshop(ctx context.Context, w *model.Workshop) error {
	return GetDB(ctx, r.db).Create(w).Error
}

func (r *catalogRepository) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	var w model.Workshop
	if err := GetDB(ctx, r.db).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *catalogRepository) ListWorkshops(ctx context.Context) ([]model.Workshop, error) {
	var workshops []model.Workshop
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&workshops).Error; err != nil {
		return nil, err
	}
	return workshops, nil
}

func (r *catalogRepository) DeleteWorkshop(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Workshop{}, id)
}

// --- Equipment ---

func (r *catalogRepository) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	return GetDB(ctx, r.db).Create(e).Error
}

func (r *catalogRepository) GetEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	if err := GetDB(ctx, r.db).Preload("Workshop").First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *catalogRepository) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	var equipment []model.Equipment
	if err := GetDB(ctx, r.db).Preload("Workshop").Order("name ASC").Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *catalogRepository) DeleteEquipment(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &model.Equipment{}, id)
}

func deleteByID(ctx context.Context, db *gorm.DB, entity interface{}, id string) error {
	result := GetDB(ctx, db).Delete(entity, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
