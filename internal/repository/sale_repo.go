package repository

import (
	"barber-pos-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository
	CreateHeader(sale *model.Sale) error
	CreateItem(item *model.SaleItem) error
	FindAll() ([]model.Sale, error)
	FindByID(id int64) (*model.Sale, error)
	FindByInvoiceNumber(number string) (*model.Sale, error)
	InvoiceExists(number string) (bool, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) WithTx(tx *gorm.DB) SaleRepository {
	return &saleRepo{tx}
}

// CreateHeader inserts the header row only; items are written one by one.
func (r *saleRepo) CreateHeader(sale *model.Sale) error {
	return r.db.Omit(clause.Associations).Create(sale).Error
}

func (r *saleRepo) CreateItem(item *model.SaleItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

func orderedSaleItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no")
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items", orderedSaleItems).Order("created_at DESC").Order("id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id int64) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items", orderedSaleItems).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByInvoiceNumber(number string) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items", orderedSaleItems).First(&sale, "invoice_number = ?", number).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) InvoiceExists(number string) (bool, error) {
	var n int64
	err := r.db.Model(&model.Sale{}).Where("invoice_number = ?", number).Count(&n).Error
	return n > 0, err
}
