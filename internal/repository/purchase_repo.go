package repository

import (
	"barber-pos-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	WithTx(tx *gorm.DB) PurchaseRepository
	CreateHeader(invoice *model.PurchaseInvoice) error
	CreateItem(item *model.PurchaseItem) error
	FindAll() ([]model.PurchaseInvoice, error)
	FindByID(id int64) (*model.PurchaseInvoice, error)
	InvoiceExists(number string) (bool, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) WithTx(tx *gorm.DB) PurchaseRepository {
	return &purchaseRepo{tx}
}

func (r *purchaseRepo) CreateHeader(invoice *model.PurchaseInvoice) error {
	return r.db.Omit(clause.Associations).Create(invoice).Error
}

func (r *purchaseRepo) CreateItem(item *model.PurchaseItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

func orderedPurchaseItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no")
}

func (r *purchaseRepo) FindAll() ([]model.PurchaseInvoice, error) {
	var invoices []model.PurchaseInvoice
	err := r.db.Preload("Items", orderedPurchaseItems).Order("created_at DESC").Order("id DESC").Find(&invoices).Error
	return invoices, err
}

func (r *purchaseRepo) FindByID(id int64) (*model.PurchaseInvoice, error) {
	var invoice model.PurchaseInvoice
	if err := r.db.Preload("Items", orderedPurchaseItems).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *purchaseRepo) InvoiceExists(number string) (bool, error) {
	var n int64
	err := r.db.Model(&model.PurchaseInvoice{}).Where("invoice_number = ?", number).Count(&n).Error
	return n > 0, err
}
