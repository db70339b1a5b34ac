package repository

import (
	"strings"

	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Update(id uuid.UUID, patch model.Patch) error
	CountLineItems(id uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Omit("Category").Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName matches case-insensitively and prefers the oldest product on ties.
func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(id uuid.UUID, patch model.Patch) error {
	return applyPatch[model.Product](r.db, id, patch)
}

// CountLineItems counts sale and purchase lines that reference the product.
func (r *productRepo) CountLineItems(id uuid.UUID) (int64, error) {
	var sold, bought int64
	if err := r.db.Model(&model.SaleItem{}).Where("product_id = ?", id).Count(&sold).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&model.PurchaseItem{}).Where("product_id = ?", id).Count(&bought).Error; err != nil {
		return 0, err
	}
	return sold + bought, nil
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return deleteByID[model.Product](r.db, id)
}
